package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/models"
	"github.com/postboard/api/pkg/logger"
)

const (
	maxAuditBody = 2000
	// maxAuditRead bounds how much of a request body is buffered for masking.
	maxAuditRead = 4 * maxAuditBody
)

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry *models.AuditLog) error
}

// AuditLog records write operations (POST/PUT/DELETE) with their masked
// request body.
func AuditLog(recorder AuditRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodDelete {
			c.Next()
			return
		}

		var body string
		if c.Request.Body != nil {
			body = peekBody(c.Request)
		}

		c.Next()

		entry := &models.AuditLog{
			UserID:    GetUserID(c),
			Method:    method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Body:      body,
		}
		if err := recorder.Record(context.WithoutCancel(c.Request.Context()), entry); err != nil {
			logger.Warn().Err(err).Str("path", entry.Path).Msg("failed to record audit entry")
		}
	}
}

// peekBody reads at most maxAuditRead bytes and puts them back in front of
// the unread remainder, so the handler still sees the whole body.
func peekBody(req *http.Request) string {
	raw, _ := io.ReadAll(io.LimitReader(req.Body, maxAuditRead+1))
	req.Body = &prefixedBody{
		Reader: io.MultiReader(bytes.NewReader(raw), req.Body),
		Closer: req.Body,
	}

	if len(raw) > maxAuditRead {
		return "[body too large]"
	}
	body := maskSensitiveFields(raw)
	if len(body) > maxAuditBody {
		body = body[:maxAuditBody] + "...[truncated]"
	}
	return body
}

type prefixedBody struct {
	io.Reader
	io.Closer
}

var sensitiveKeys = []string{"password", "secret", "token"}

// maskSensitiveFields replaces the values of sensitive keys in a JSON body
// with "***". Bodies that are not JSON objects are dropped entirely.
func maskSensitiveFields(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "[unparsable body]"
	}
	maskValue(doc)

	masked, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(masked)
}

func maskValue(v interface{}) {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if isSensitiveKey(k) {
				val[k] = "***"
				continue
			}
			maskValue(inner)
		}
	case []interface{}:
		for _, inner := range val {
			maskValue(inner)
		}
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
