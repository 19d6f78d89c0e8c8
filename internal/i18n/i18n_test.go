package i18n

import (
	"testing"
	"time"
)

func TestNew_UnsupportedLocale(t *testing.T) {
	if _, err := New("fr"); err == nil {
		t.Fatal("expected error for unsupported locale")
	}
}

func TestCatalogsAreComplete(t *testing.T) {
	for key := range messages["en"] {
		if _, ok := messages["es"][key]; !ok {
			t.Errorf("es catalog missing %s", key)
		}
	}
	for key := range messages["es"] {
		if _, ok := messages["en"][key]; !ok {
			t.Errorf("en catalog missing %s", key)
		}
	}
}

func TestT_Spanish(t *testing.T) {
	c := MustNew("es")

	tests := []struct {
		key    Key
		params []string
		want   string
	}{
		{ValidationPlan, nil, "Por favor, rellena todos los campos de entrada y pega tus apuntes."},
		{TransportQuiz, []string{"timeout"}, "Error al generar el cuestionario: timeout"},
		{TransportChatSend, []string{"boom"}, "Error al enviar mensaje: boom"},
		{ChatGreeting, nil, "¡Hola! ¿En qué puedo ayudarte con tus estudios?"},
		{LabelDay, []string{"3"}, "Día 3"},
	}

	for _, tt := range tests {
		if got := c.T(tt.key, tt.params...); got != tt.want {
			t.Errorf("T(%s) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestT_English(t *testing.T) {
	c := MustNew("en")
	if got := c.T(TransportPlan, "quota exceeded"); got != "Error generating the study plan: quota exceeded" {
		t.Errorf("got %q", got)
	}
	if c.Locale() != "en" {
		t.Errorf("Locale() = %q", c.Locale())
	}
}

func TestT_UnknownKey(t *testing.T) {
	c := MustNew("en")
	if got := c.T("no.such.key"); got != "no.such.key" {
		t.Errorf("got %q", got)
	}
}

func TestFormatting(t *testing.T) {
	c := MustNew("en")
	if got := c.Percent(50); got == "" {
		t.Error("Percent returned empty string")
	}
	d := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	if got := c.Date(d); got == "" {
		t.Error("Date returned empty string")
	}
}
