package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kwekamelia/web-grp-lab/internal/auth/domain"
)

type fakeResolver map[string]string

func (f fakeResolver) Resolve(_ context.Context, token string) (*domain.Session, error) {
	if token == "sess_boom" {
		return nil, errors.New("redis down")
	}
	u, ok := f[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &domain.Session{Token: token, Username: u, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireSession(fakeResolver{"sess_ok": "alice"}), func(c *gin.Context) {
		c.String(http.StatusOK, Username(c))
	})

	cases := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"valid", "Bearer sess_ok", http.StatusOK, "alice"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic sess_ok", http.StatusUnauthorized, ""},
		{"unknown", "Bearer sess_nope", http.StatusUnauthorized, ""},
		{"store fault", "Bearer sess_boom", http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, tc.code, rr.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rr.Body.String())
			}
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(60, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"))
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "buckets are per client")
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Now()
	l.now = func() time.Time { return now }
	l.lastSweep = now

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
	assert.Equal(t, 2, l.Len())

	// 10.0.0.2 stays active, 10.0.0.1 goes idle
	now = now.Add(DefaultLimiterIdleTTL / 2)
	l.Allow("10.0.0.2")
	now = now.Add(DefaultLimiterIdleTTL / 2)
	l.Allow("10.0.0.3")

	assert.Equal(t, 2, l.Len(), "idle client dropped")
	assert.True(t, l.Allow("10.0.0.1"), "a returning client starts with a full bucket")
}
