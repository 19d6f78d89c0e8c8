// Package i18n holds the user-facing message catalog for English and
// Spanish, backed by go-playground's universal translator.
package i18n

import (
	"fmt"
	"time"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
)

// Supported lists the locales with a full catalog.
var Supported = []string{"en", "es"}

// Catalog translates message keys for one locale.
type Catalog struct {
	locale string
	trans  ut.Translator
}

// New builds the catalog for locale ("en" or "es").
func New(locale string) (*Catalog, error) {
	msgs, ok := messages[locale]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}

	uni := ut.New(en.New(), en.New(), es.New())
	trans, found := uni.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("no translator for locale %q", locale)
	}

	for key, text := range msgs {
		if err := trans.Add(string(key), text, false); err != nil {
			return nil, fmt.Errorf("add %s/%s: %w", locale, key, err)
		}
	}

	return &Catalog{locale: locale, trans: trans}, nil
}

// MustNew is New for compile-time-known locales.
func MustNew(locale string) *Catalog {
	c, err := New(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Locale returns the catalog's locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Translator exposes the underlying translator, e.g. for validator
// translations.
func (c *Catalog) Translator() ut.Translator {
	return c.trans
}

// T returns the message for key with {0}, {1}... replaced by params.
// Unknown keys render as the key itself.
func (c *Catalog) T(key Key, params ...string) string {
	s, err := c.trans.T(string(key), params...)
	if err != nil {
		return string(key)
	}
	return s
}

// Percent formats a 0-100 value with no decimals in the catalog's locale.
func (c *Catalog) Percent(v float64) string {
	return c.trans.FmtPercent(v, 0)
}

// Date formats a calendar date in the catalog's locale.
func (c *Catalog) Date(t time.Time) string {
	return c.trans.FmtDateMedium(t)
}
