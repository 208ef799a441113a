package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantExposed string
	}{
		{
			name:        "configured origin sees request id",
			allowed:     []string{" https://scout.example.com "},
			method:      http.MethodGet,
			origin:      "https://scout.example.com",
			wantStatus:  http.StatusOK,
			wantOrigin:  "https://scout.example.com",
			wantExposed: requestIDHeader,
		},
		{
			name:       "wildcard preflight",
			allowed:    []string{"*"},
			method:     http.MethodOptions,
			origin:     "https://club.example.org",
			wantStatus: http.StatusNoContent,
			wantOrigin: "*",
		},
		{
			name:       "unknown origin passes through without headers",
			allowed:    []string{"https://scout.example.com"},
			method:     http.MethodGet,
			origin:     "https://elsewhere.example.net",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/predictions", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantExposed != "" {
				assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers")), strings.ToLower(tt.wantExposed))
			}
		})
	}
}
