package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trend-goat/trend-goat/internal/server"
	"github.com/trend-goat/trend-goat/tests/testutil"
)

func TestDashboard_RequiresToken(t *testing.T) {
	s := testutil.SetupTestStore(t)
	srv := server.New(s, 0, "")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without token, got %d", w.Code)
	}
}

func TestDashboard_TokenSetsCookieAndRedirects(t *testing.T) {
	s := testutil.SetupTestStore(t)
	srv := server.New(s, 0, "")

	req := httptest.NewRequest(http.MethodGet, "/dashboard?token="+srv.Token(), nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect 302, got %d", w.Code)
	}

	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "tg_token" && c.Value == srv.Token() {
			found = true
		}
	}
	if !found {
		t.Error("expected tg_token cookie to be set")
	}
}

func TestDashboard_ValidCookieServesPage(t *testing.T) {
	s := testutil.SetupTestStore(t)
	srv := server.New(s, 0, "")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "tg_token", Value: srv.Token()})
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "trend-goat") {
		t.Error("expected dashboard page content")
	}
}

func TestDashboard_InvalidTokenRejected(t *testing.T) {
	s := testutil.SetupTestStore(t)
	srv := server.New(s, 0, "")

	req := httptest.NewRequest(http.MethodGet, "/dashboard?token=wrong", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for bad token, got %d", w.Code)
	}
}
