package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier accepts "good-<user>" tokens and reports "expired" as expired.
type stubVerifier struct{}

func (stubVerifier) VerifyAccess(token string) (string, error) {
	switch {
	case token == "expired":
		return "", services.ErrTokenExpired
	case strings.HasPrefix(token, "good-"):
		return strings.TrimPrefix(token, "good-"), nil
	default:
		return "", services.ErrTokenInvalid
	}
}

func protectedRouter() *gin.Engine {
	router := gin.New()
	router.Use(AuthRequired(stubVerifier{}))
	router.GET("/protected", func(c *gin.Context) {
		id, ok := IdentityFrom(c.Request.Context())
		if !ok {
			c.String(http.StatusInternalServerError, "no identity")
			return
		}
		c.String(http.StatusOK, id.UserID+"|"+GetUserID(c))
	})
	return router
}

func TestAuthRequired_NoHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	protectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidFormat(t *testing.T) {
	router := protectedRouter()

	testCases := []string{
		"InvalidToken",
		"Basic token123",
		"Bearer",
		"Bearer ",
		"bearer good-alice",
	}

	for _, authHeader := range testCases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", authHeader)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected status %d, got %d", authHeader, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAuthRequired_RejectedTokens(t *testing.T) {
	router := protectedRouter()

	for _, token := range []string{"garbage", "expired"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: expected status %d, got %d", token, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-alice")
	protectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Body.String() != "alice|alice" {
		t.Errorf("identity = %q, expected %q", w.Body.String(), "alice|alice")
	}
}

func TestGetUserID_Anonymous(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/", nil)

	if id := GetUserID(c); id != "" {
		t.Errorf("GetUserID() = %q, expected empty", id)
	}
}
