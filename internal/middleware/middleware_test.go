package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	tokens map[string]*models.User
	calls  int
}

func (s *stubResolver) Resolve(token string) (*models.User, error) {
	s.calls++
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUnauthorized
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func setupSessionRouter(resolver SessionResolver) *gin.Engine {
	r := gin.New()
	r.Use(Session(resolver, "sid"))
	r.GET("/whoami", func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil, "token": SessionToken(c)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.Username, "token": SessionToken(c)})
	})
	return r
}

func TestSession(t *testing.T) {
	alice := &models.User{Username: "alice"}
	resolver := &stubResolver{tokens: map[string]*models.User{"good": alice}}
	r := setupSessionRouter(resolver)

	tests := []struct {
		name      string
		cookie    string
		header    string
		wantUser  interface{}
		wantToken string
	}{
		{"anonymous", "", "", nil, ""},
		{"cookie", "good", "", "alice", "good"},
		{"bearer_header", "", "Bearer good", "alice", "good"},
		{"lowercase_bearer", "", "bearer good", "alice", "good"},
		{"cookie_wins", "good", "Bearer bad", "alice", "good"},
		{"stale_cookie_falls_back_to_bearer", "stale", "Bearer good", "alice", "good"},
		{"both_invalid_keeps_cookie_token", "stale", "Bearer bad", nil, "stale"},
		{"invalid_token_stays_anonymous", "bad", "", nil, "bad"},
		{"malformed_header", "", "Token good", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sid", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := parseBody(t, rec)
			if body["user"] != tt.wantUser {
				t.Errorf("user = %v, want %v", body["user"], tt.wantUser)
			}
			if body["token"] != tt.wantToken {
				t.Errorf("token = %v, want %q", body["token"], tt.wantToken)
			}
		})
	}

	t.Run("same_token_in_both_places_resolves_once", func(t *testing.T) {
		before := resolver.calls
		req := httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "bad"})
		req.Header.Set("Authorization", "Bearer bad")
		r.ServeHTTP(httptest.NewRecorder(), req)
		if got := resolver.calls - before; got != 1 {
			t.Errorf("resolver called %d times, want 1", got)
		}
	})

	t.Run("no_token_skips_resolver", func(t *testing.T) {
		before := resolver.calls
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody))
		if resolver.calls != before {
			t.Error("resolver should not be called without a token")
		}
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrTransactionNotFound)
	})
	r.GET("/wrapped", func(c *gin.Context) {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInternal, errors.New("pq: connection refused")))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("ignored"))
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
	})

	tests := []struct {
		path       string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"/app", http.StatusNotFound, "NOT_FOUND", "Transaction not found"},
		{"/wrapped", http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred"},
		{"/plain", http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
			if !ok {
				t.Fatal("expected error object")
			}
			if errObj["code"] != tt.wantCode || errObj["message"] != tt.wantMsg {
				t.Errorf("unexpected error body %v", errObj)
			}
		})
	}

	t.Run("written_response_is_kept", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/written", http.NoBody))
		if rec.Code != http.StatusTeapot {
			t.Errorf("expected 418, got %d", rec.Code)
		}
	})
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	t.Run("generates_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))

		id := rec.Header().Get("X-Request-ID")
		if id == "" || id != rec.Body.String() {
			t.Errorf("expected request id in header and context, got %q / %q", id, rec.Body.String())
		}
	})

	t.Run("reuses_valid_incoming_id", func(t *testing.T) {
		const incoming = "0190f2a4-8b7c-7def-8123-456789abcdef"
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		req.Header.Set("X-Request-ID", incoming)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != incoming {
			t.Errorf("expected %s, got %s", incoming, got)
		}
	})

	t.Run("replaces_invalid_incoming_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		req.Header.Set("X-Request-ID", "<script>")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got == "<script>" {
			t.Error("invalid request id should be replaced")
		}
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:3000"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"allowed origin", http.MethodGet, "http://localhost:3000", http.StatusOK, "http://localhost:3000"},
		{"foreign origin", http.MethodGet, "http://evil.example", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "http://localhost:3000", http.StatusNoContent, "http://localhost:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/ping", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
			if tt.wantAllow != "" && rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("expected credentials to be allowed")
			}
		})
	}
}
