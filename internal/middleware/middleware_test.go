package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/yatube/backend/internal/auth"
)

type staticUsers map[int]string

func (u staticUsers) Principal(_ context.Context, id int) (*auth.Principal, error) {
	name, ok := u[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &auth.Principal{ID: id, Username: name}, nil
}

func newAuthRouter(tokens *auth.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(tokens, staticUsers{1: "alice"}))
	r.GET("/whoami", func(c *gin.Context) {
		p := Principal(c)
		if p == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": p.Username})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewIssuer("secret", time.Minute, time.Hour)
	r := newAuthRouter(tokens)

	alice, err := tokens.Issue(auth.Principal{ID: 1, Username: "alice"}, auth.AccessToken)
	require.NoError(t, err)
	ghost, err := tokens.Issue(auth.Principal{ID: 2, Username: "ghost"}, auth.AccessToken)
	require.NoError(t, err)
	refresh, err := tokens.Issue(auth.Principal{ID: 1, Username: "alice"}, auth.RefreshToken)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, `{"user":null}`},
		{"other scheme is anonymous", "Basic Zm9vOmJhcg==", http.StatusOK, `{"user":null}`},
		{"valid token", "Bearer " + alice, http.StatusOK, `{"user":"alice"}`},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, ""},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized, ""},
		{"unknown user", "Bearer " + ghost, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
			if tt.status == http.StatusUnauthorized {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RequestID(), Logger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "abc-123", hook.LastEntry().Data["request_id"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
