package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

var testSecret = []byte("test-secret")

// mintToken issues the kind of HS256 token the real auth API hands out.
func mintToken(t *testing.T, username string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString(testSecret)
	require.NoError(t, err)
	return s
}

// bearerSubject validates the Authorization header and returns the token subject.
func bearerSubject(r *http.Request) (string, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", false
	}
	tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return testSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", false
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", false
	}
	return sub, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newServer starts an httptest server whose routes are set up by routes.
func newServer(t *testing.T, routes func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newAuthClient(srv *httptest.Server) *HTTPAuthClient {
	return NewHTTPAuthClient(srv.URL+"/api", srv.Client(), logging.Discard())
}

func newVMClient(srv *httptest.Server) *HTTPVMClient {
	return NewHTTPVMClient(srv.URL, srv.Client(), logging.Discard())
}
