// Package i18n renders user-facing API messages in the client's language.
//
// The language is negotiated from the Accept-Language header against the
// bundled locales; unmatched or absent headers fall back to the configured
// default locale.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a message in the catalog.
type Key string

const (
	UserRegistered      Key = "user.registration.success"
	UserUpdated         Key = "user.update.success"
	UserDeleted         Key = "user.delete.success"
	UserNotFound        Key = "user.not.found"
	UserExists          Key = "user.exists"
	ReservationCreated  Key = "reservation.success"
	ReservationUpdated  Key = "reservation.update.success"
	ReservationDeleted  Key = "reservation.deleted"
	ReservationNotFound Key = "reservation.not.found"
	AccessDenied        Key = "error.access.denied"
	Unauthenticated     Key = "error.unauthenticated"
	InvalidCredentials  Key = "error.invalid.credentials"
	TooManyAttempts     Key = "error.too.many.attempts"
	InvalidRole         Key = "error.invalid.role"
	MalformedRequest    Key = "error.malformed"
	ValidationFailed    Key = "error.validation"
	Conflict            Key = "error.conflict"
	InternalError       Key = "error.internal"
)

var messages = map[language.Tag]map[Key]string{
	language.English: {
		UserRegistered:      "User registered successfully.",
		UserUpdated:         "User updated successfully.",
		UserDeleted:         "User deleted successfully.",
		UserNotFound:        "User not found.",
		UserExists:          "A user with that username or cedula already exists.",
		ReservationCreated:  "Reservation created successfully.",
		ReservationUpdated:  "Reservation updated successfully.",
		ReservationDeleted:  "Reservation deleted successfully.",
		ReservationNotFound: "Reservation not found.",
		AccessDenied:        "Access denied.",
		Unauthenticated:     "Authentication required.",
		InvalidCredentials:  "Invalid username or password.",
		TooManyAttempts:     "Too many failed login attempts. Try again later.",
		InvalidRole:         "Invalid role. Use USER or ADMIN.",
		MalformedRequest:    "Malformed request.",
		ValidationFailed:    "Validation failed.",
		Conflict:            "The resource was modified concurrently. Reload and try again.",
		InternalError:       "Internal server error.",
	},
	language.Spanish: {
		UserRegistered:      "Usuario registrado exitosamente.",
		UserUpdated:         "Usuario actualizado exitosamente.",
		UserDeleted:         "Usuario eliminado exitosamente.",
		UserNotFound:        "Usuario no encontrado.",
		UserExists:          "Ya existe un usuario con ese nombre o cédula.",
		ReservationCreated:  "Reserva creada exitosamente.",
		ReservationUpdated:  "Reserva actualizada exitosamente.",
		ReservationDeleted:  "Reserva eliminada exitosamente.",
		ReservationNotFound: "Reserva no encontrada.",
		AccessDenied:        "Acceso denegado.",
		Unauthenticated:     "Se requiere autenticación.",
		InvalidCredentials:  "Usuario o contraseña inválidos.",
		TooManyAttempts:     "Demasiados intentos fallidos. Intente más tarde.",
		InvalidRole:         "Rol inválido. Use USER o ADMIN.",
		MalformedRequest:    "Solicitud mal formada.",
		ValidationFailed:    "La validación falló.",
		Conflict:            "El recurso fue modificado por otra solicitud. Recargue e intente de nuevo.",
		InternalError:       "Error interno del servidor.",
	},
}

// Catalog resolves message keys for a negotiated language.
type Catalog struct {
	supported []language.Tag
	matcher   language.Matcher
	builder   *catalog.Builder
}

// New builds the catalog. defaultLocale selects the fallback language and
// is ignored when it is not bundled.
func New(defaultLocale string) *Catalog {
	fallback := language.English
	if tag, err := language.Parse(defaultLocale); err == nil {
		base, _ := tag.Base()
		for t := range messages {
			if b, _ := t.Base(); b == base {
				fallback = t
			}
		}
	}

	supported := []language.Tag{fallback}
	for t := range messages {
		if t != fallback {
			supported = append(supported, t)
		}
	}

	b, err := newBuilder(fallback, messages)
	if err != nil {
		panic(err)
	}

	return &Catalog{
		supported: supported,
		matcher:   language.NewMatcher(supported),
		builder:   b,
	}
}

func newBuilder(fallback language.Tag, bundle map[language.Tag]map[Key]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for tag, msgs := range bundle {
		for key, msg := range msgs {
			if err := b.SetString(tag, string(key), msg); err != nil {
				return nil, fmt.Errorf("i18n: %s message %q: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

// Negotiate picks the bundled language that best matches an
// Accept-Language header value.
func (c *Catalog) Negotiate(acceptLanguage string) language.Tag {
	_, idx := language.MatchStrings(c.matcher, acceptLanguage)
	return c.supported[idx]
}

// Message returns the text for key in the negotiated language.
func (c *Catalog) Message(acceptLanguage string, key Key) string {
	p := message.NewPrinter(c.Negotiate(acceptLanguage), message.Catalog(c.builder))
	return p.Sprintf(string(key))
}
