package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-minimum-32-characters-long"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour)

	for _, subject := range []string{"alice", "bob", "ñandú", "user with spaces"} {
		token, err := codec.Issue(subject)
		if err != nil {
			t.Fatalf("issue %q: %v", subject, err)
		}
		if got, ok := codec.ExtractSubject(token); !ok || got != subject {
			t.Fatalf("extract: expected %q, got %q (ok=%v)", subject, got, ok)
		}
		if !codec.Validate(token, subject) {
			t.Fatalf("token for %q must validate", subject)
		}
		if codec.Validate(token, subject+"x") {
			t.Fatalf("token for %q must not validate for another subject", subject)
		}
	}
}

func TestJWTCodec_Expiry(t *testing.T) {
	issuedAt := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	issuer := NewJWTCodec(testSecret, time.Hour, WithClock(fixedClock(issuedAt)))

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	before := NewJWTCodec(testSecret, time.Hour, WithClock(fixedClock(issuedAt.Add(59*time.Minute))))
	if !before.Validate(token, "alice") {
		t.Fatalf("token must be valid before expiry")
	}

	after := NewJWTCodec(testSecret, time.Hour, WithClock(fixedClock(issuedAt.Add(time.Hour+time.Second))))
	if after.Validate(token, "alice") {
		t.Fatalf("expired token must not validate")
	}

	if got, ok := before.ExtractSubject(token); !ok || got != "alice" {
		t.Fatalf("expected subject before expiry, got %q (ok=%v)", got, ok)
	}
	if _, ok := after.ExtractSubject(token); ok {
		t.Fatalf("expired token must not yield a subject")
	}
}

func TestJWTCodec_TamperedSignature(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour)
	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[5] == 'A' {
		sig[5] = 'B'
	} else {
		sig[5] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if codec.Validate(tampered, "alice") {
		t.Fatalf("tampered signature must not validate")
	}
	if _, ok := codec.ExtractSubject(tampered); ok {
		t.Fatalf("tampered signature must not yield a subject")
	}
}

func TestJWTCodec_SwappedPayload(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour)
	aliceToken, _ := codec.Issue("alice")
	adminToken, _ := codec.Issue("admin")

	a := strings.Split(aliceToken, ".")
	b := strings.Split(adminToken, ".")
	forged := a[0] + "." + b[1] + "." + a[2]

	if codec.Validate(forged, "admin") {
		t.Fatalf("payload swap must not validate")
	}
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	token, _ := NewJWTCodec("another-secret", time.Hour).Issue("alice")
	codec := NewJWTCodec(testSecret, time.Hour)

	if codec.Validate(token, "alice") {
		t.Fatalf("token signed with another secret must not validate")
	}
	if _, ok := codec.ExtractSubject(token); ok {
		t.Fatalf("token signed with another secret must not yield a subject")
	}
}

func TestJWTCodec_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	codec := NewJWTCodec(testSecret, time.Hour)
	if codec.Validate(token, "alice") {
		t.Fatalf("alg=none must not validate")
	}
	if _, ok := codec.ExtractSubject(token); ok {
		t.Fatalf("alg=none must not yield a subject")
	}
}

func TestJWTCodec_RequiresExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"}).
		SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	codec := NewJWTCodec(testSecret, time.Hour)
	if codec.Validate(token, "alice") {
		t.Fatalf("token without exp must not validate")
	}
	if _, ok := codec.ExtractSubject(token); ok {
		t.Fatalf("token without exp must not yield a subject")
	}
}

func TestJWTCodec_Issuer(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour, WithIssuer("reservations-api"))
	token, _ := codec.Issue("alice")
	if !codec.Validate(token, "alice") {
		t.Fatalf("token with matching issuer must validate")
	}

	other, _ := NewJWTCodec(testSecret, time.Hour, WithIssuer("someone-else")).Issue("alice")
	if codec.Validate(other, "alice") {
		t.Fatalf("token from another issuer must not validate")
	}
}

func TestJWTCodec_Malformed(t *testing.T) {
	codec := NewJWTCodec(testSecret, time.Hour)
	for _, in := range []string{"", "not-a-token", "a.b.c", "....", "Bearer x"} {
		if codec.Validate(in, "alice") {
			t.Fatalf("%q must not validate", in)
		}
		if _, ok := codec.ExtractSubject(in); ok {
			t.Fatalf("%q must not yield a subject", in)
		}
	}
}

func TestJWTCodec_IssueRequiresInputs(t *testing.T) {
	if _, err := NewJWTCodec(testSecret, time.Hour).Issue(""); err == nil {
		t.Fatalf("expected error for empty subject")
	}
	if _, err := NewJWTCodec("", time.Hour).Issue("alice"); err == nil {
		t.Fatalf("expected error for empty secret")
	}

	token, _ := NewJWTCodec(testSecret, time.Hour).Issue("alice")
	if NewJWTCodec(testSecret, time.Hour).Validate(token, "") {
		t.Fatalf("empty expected subject must never validate")
	}
}
