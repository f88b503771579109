package i18n

import (
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestMessage_Negotiation(t *testing.T) {
	c := New("en")

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "Reservation created successfully."},
		{"english", "en-US,en;q=0.9", "Reservation created successfully."},
		{"spanish", "es", "Reserva creada exitosamente."},
		{"regional spanish", "es-CO,es;q=0.9,en;q=0.5", "Reserva creada exitosamente."},
		{"unsupported", "de-DE", "Reservation created successfully."},
		{"garbage", ";;;", "Reservation created successfully."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Message(tt.header, ReservationCreated); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMessage_DefaultLocale(t *testing.T) {
	c := New("es")
	if got := c.Message("", AccessDenied); got != "Acceso denegado." {
		t.Fatalf("expected spanish fallback, got %q", got)
	}
	if got := c.Message("en", AccessDenied); got != "Access denied." {
		t.Fatalf("explicit english must win over the default, got %q", got)
	}

	if got := New("klingon").Message("", AccessDenied); got != "Access denied." {
		t.Fatalf("unknown default must fall back to english, got %q", got)
	}
}

func TestMessage_EveryKeyTranslated(t *testing.T) {
	en := messages[language.English]
	for tag, msgs := range messages {
		if len(msgs) != len(en) {
			t.Fatalf("%s has %d messages, english has %d", tag, len(msgs), len(en))
		}
		for key := range en {
			if msgs[key] == "" {
				t.Fatalf("%s is missing %q", tag, key)
			}
		}
	}
}

func TestNewBuilder_BundledMessages(t *testing.T) {
	b, err := newBuilder(language.English, messages)
	if err != nil {
		t.Fatalf("bundled messages must load: %v", err)
	}
	p := message.NewPrinter(language.Spanish, message.Catalog(b))
	if got := p.Sprintf(string(AccessDenied)); got != "Acceso denegado." {
		t.Fatalf("expected spanish message from the builder, got %q", got)
	}
}
