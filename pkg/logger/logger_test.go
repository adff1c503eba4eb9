package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.DebugLevel)
	t.Cleanup(func() { Init("info") })
	return &buf
}

func TestGinLogger_LogsRequest(t *testing.T) {
	buf := captureLogs(t)

	router := gin.New()
	router.Use(GinLogger())
	router.GET("/posts", func(c *gin.Context) {
		c.Set(ContextUserID, "user-1")
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?user=abc", nil)
	router.ServeHTTP(w, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}

	if entry["level"] != "warn" {
		t.Errorf("level = %v, expected warn for 4xx", entry["level"])
	}
	if entry["path"] != "/posts" {
		t.Errorf("path = %v, expected /posts", entry["path"])
	}
	if entry["query"] != "user=abc" {
		t.Errorf("query = %v, expected user=abc", entry["query"])
	}
	if entry["user_id"] != "user-1" {
		t.Errorf("user_id = %v, expected user-1", entry["user_id"])
	}
}

func TestGinRecovery(t *testing.T) {
	buf := captureLogs(t)

	router := gin.New()
	router.Use(GinRecovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/boom", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if !strings.Contains(w.Body.String(), "internal server error") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Errorf("panic was not logged: %q", buf.String())
	}
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	Init("verbose")
	defer Init("info")

	if got := Get().GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("level = %v, expected %v", got, zerolog.InfoLevel)
	}
}
