package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/restaurante/reservations-api/internal/api/metrics"
	"github.com/restaurante/reservations-api/internal/core/domain"
)

// stubCodec extracts a subject from "valid:<user>" and "mismatch:<user>";
// only the former validates. Anything else, "expired:<user>" included, yields
// no subject.
type stubCodec struct{}

func (stubCodec) Issue(subject string) (string, error) { return "valid:" + subject, nil }

func (stubCodec) Validate(token, subject string) bool { return token == "valid:"+subject }

func (stubCodec) ExtractSubject(token string) (string, bool) {
	for _, prefix := range []string{"valid:", "mismatch:"} {
		if len(token) > len(prefix) && token[:len(prefix)] == prefix {
			return token[len(prefix):], true
		}
	}
	return "", false
}

type stubResolver struct {
	users map[string]*domain.Principal
	err   error
	calls int
}

func (r *stubResolver) Resolve(_ context.Context, username string) (*domain.Principal, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return p, nil
}

func newResolver() *stubResolver {
	return &stubResolver{users: map[string]*domain.Principal{
		"alice": domain.NewPrincipal("alice", domain.RoleUser),
	}}
}

type gateResult struct {
	err       error
	called    bool
	principal *domain.Principal
}

func runGate(t *testing.T, resolver *stubResolver, m *metrics.Metrics, header string) gateResult {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var res gateResult
	mw := Authenticate(stubCodec{}, resolver, m, zerolog.Nop())
	res.err = mw(func(c echo.Context) error {
		res.called = true
		res.principal = domain.PrincipalFromContext(c.Request().Context())
		return nil
	})(c)
	return res
}

func TestAuthenticate_ValidToken(t *testing.T) {
	m := metrics.New(nil)
	res := runGate(t, newResolver(), m, "Bearer valid:alice")

	if res.err != nil || !res.called {
		t.Fatalf("expected pass-through, got err=%v called=%v", res.err, res.called)
	}
	if res.principal == nil || res.principal.Username() != "alice" {
		t.Fatalf("expected alice's principal, got %+v", res.principal)
	}
	if got := testutil.ToFloat64(m.GateDecisions.WithLabelValues(metrics.GateAuthenticated)); got != 1 {
		t.Fatalf("expected authenticated decision counted, got %v", got)
	}
}

func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	for _, header := range []string{"", "Basic YWxpY2U6cHc=", "Bearer", "Bearer   ", "Bearer garbage", "Bearer expired:alice"} {
		t.Run(header, func(t *testing.T) {
			resolver := newResolver()
			res := runGate(t, resolver, metrics.New(nil), header)

			if res.err != nil || !res.called {
				t.Fatalf("expected anonymous pass-through, got err=%v called=%v", res.err, res.called)
			}
			if res.principal != nil {
				t.Fatalf("no principal may be attached, got %s", res.principal.Username())
			}
			if resolver.calls != 0 {
				t.Fatalf("resolver must not run without a subject")
			}
		})
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"failed validation", "Bearer mismatch:alice"},
		{"deleted user", "Bearer valid:ghost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New(nil)
			res := runGate(t, newResolver(), m, tt.header)

			if !errors.Is(res.err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", res.err)
			}
			if res.called {
				t.Fatalf("handler must not run after rejection")
			}
			if got := testutil.ToFloat64(m.GateDecisions.WithLabelValues(metrics.GateRejected)); got != 1 {
				t.Fatalf("expected rejected decision counted, got %v", got)
			}
		})
	}
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	resolver := newResolver()
	resolver.err = errors.New("mongo down")
	res := runGate(t, resolver, metrics.New(nil), "Bearer valid:alice")

	if res.err == nil || errors.Is(res.err, domain.ErrUnauthenticated) {
		t.Fatalf("store failure must surface as an internal error, got %v", res.err)
	}
	if res.called {
		t.Fatalf("handler must not run on store failure")
	}
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	res := runGate(t, newResolver(), metrics.New(nil), "bearer valid:alice")
	if res.principal == nil {
		t.Fatalf("lower-case scheme must authenticate")
	}
}
