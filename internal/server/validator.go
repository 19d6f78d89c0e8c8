package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"

	"github.com/abhisek/studyflow/internal/i18n"
)

// requestValidator checks request bodies and reports field errors in the
// session locale. Fields are named by their JSON tags.
type requestValidator struct {
	v     *govalidator.Validate
	trans ut.Translator
}

func newRequestValidator(locale string) (*requestValidator, error) {
	cat, err := i18n.New(locale)
	if err != nil {
		return nil, err
	}
	trans := cat.Translator()

	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	switch locale {
	case "es":
		err = es_translations.RegisterDefaultTranslations(v, trans)
	default:
		err = en_translations.RegisterDefaultTranslations(v, trans)
	}
	if err != nil {
		return nil, fmt.Errorf("register %s validation messages: %w", locale, err)
	}
	return &requestValidator{v: v, trans: trans}, nil
}

// translate turns a decode or validation error into a field map.
func (rv *requestValidator) translate(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(rv.trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// bind decodes the JSON body into dst and validates it. It returns nil on
// success or the field errors.
func (rv *requestValidator) bind(c *gin.Context, dst any) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return rv.translate(err)
	}
	if err := rv.v.Struct(dst); err != nil {
		return rv.translate(err)
	}
	return nil
}
