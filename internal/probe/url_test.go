package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sharedErrors "github.com/khanhnv2901/r2s-cli/internal/shared/errors"
)

func TestValidateURLWellFormed(t *testing.T) {
	if err := ValidateURL("https://example.com/app"); err != nil {
		t.Errorf("ValidateURL(example.com) unexpected error: %v", err)
	}
}

func TestValidateURLInvalidFormat(t *testing.T) {
	for _, raw := range []string{"not-a-url", "", "/relative/path", "http://"} {
		if err := ValidateURL(raw); !errors.Is(err, sharedErrors.ErrInvalidURL) {
			t.Errorf("ValidateURL(%q) = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestValidateURLLocalhostBlocked(t *testing.T) {
	for _, raw := range []string{
		"http://localhost:3000",
		"http://127.0.0.1/admin",
		"http://[::1]:8080",
	} {
		if err := ValidateURL(raw); !errors.Is(err, sharedErrors.ErrLocalhostBlocked) {
			t.Errorf("ValidateURL(%q) = %v, want ErrLocalhostBlocked", raw, err)
		}
	}
}

func TestCheckDetectsReactInBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div id="root"></div><script>window.React = {}</script>`))
	}))
	defer srv.Close()

	p := New(nil, Options{AllowPrivate: true})
	if !p.Check(context.Background(), srv.URL) {
		t.Error("expected React indicators in body to be detected")
	}
}

func TestCheckDetectsReactInServerHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "react-server")
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	p := New(nil, Options{AllowPrivate: true})
	if !p.Check(context.Background(), srv.URL) {
		t.Error("expected React indicator in Server header to be detected")
	}
}

func TestCheckNoIndicators(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>plain site</body></html>"))
	}))
	defer srv.Close()

	p := New(nil, Options{AllowPrivate: true})
	if p.Check(context.Background(), srv.URL) {
		t.Error("expected no React indicators")
	}
}

func TestCheckUnreachableTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := New(nil, Options{AllowPrivate: true})
	if p.Check(context.Background(), url) {
		t.Error("unreachable target must report false, not error")
	}
}

func TestCheckBlocksLoopbackWithoutOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("react"))
	}))
	defer srv.Close()

	p := New(nil, Options{})
	if p.Check(context.Background(), srv.URL) {
		t.Error("loopback probe must be blocked by default")
	}
}
