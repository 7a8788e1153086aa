package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flickr-embed/domain/dto"
	"flickr-embed/infrastructure/utils"
	"flickr-embed/interfaces/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newRouter(secretKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", middleware.Auth(secretKey), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("subject"))
	})
	return r
}

func do(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	token, err := utils.IssueToken("wiki-bot", time.Hour, secret)
	require.NoError(t, err)

	w := do(newRouter(secret), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "wiki-bot", w.Body.String())
}

func TestAuth_Rejects(t *testing.T) {
	expired, err := utils.IssueToken("wiki-bot", -time.Hour, secret)
	require.NoError(t, err)
	wrongKey, err := utils.IssueToken("wiki-bot", time.Hour, "other")
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		message       string
	}{
		{name: "missing header", authorization: "", message: "Unauthorized"},
		{name: "not bearer", authorization: "Basic abc", message: "Unauthorized"},
		{name: "malformed", authorization: "Bearer not.a.jwt", message: "That's not even a token"},
		{name: "expired", authorization: "Bearer " + expired, message: "Timing is everything"},
		{name: "wrong key", authorization: "Bearer " + wrongKey, message: "Couldn't handle this token:signature is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(secret), tt.authorization)
			require.Equal(t, http.StatusUnauthorized, w.Code)

			var res dto.Res
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, "401", res.ResponseCode)
			assert.Equal(t, tt.message, res.ResponseMessage)
		})
	}
}

func TestAuth_EmptySecretRejectsAll(t *testing.T) {
	token, err := utils.IssueToken("x", time.Hour, "x")
	require.NoError(t, err)

	w := do(newRouter(""), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
