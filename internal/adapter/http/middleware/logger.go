package middleware

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const redacted = "REDACTED"

// AccessLog is gin's request logger with the access_token query value
// replaced before the line is written.
func AccessLog() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(p gin.LogFormatterParams) string {
			return fmt.Sprintf("[GIN] %v | %3d | %13v | %15s | %-7s %#v\n%s",
				p.TimeStamp.Format("2006/01/02 - 15:04:05"),
				p.StatusCode,
				p.Latency.Truncate(time.Microsecond),
				p.ClientIP,
				p.Method,
				RedactPath(p.Path),
				p.ErrorMessage,
			)
		},
	})
}

// RedactPath masks the access_token value in a logged path with query.
func RedactPath(path string) string {
	base, rawQuery, ok := strings.Cut(path, "?")
	if !ok || !strings.Contains(rawQuery, AccessTokenParam) {
		return path
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return base + "?" + redacted
	}
	if _, found := q[AccessTokenParam]; !found {
		return path
	}
	q.Set(AccessTokenParam, redacted)
	return base + "?" + q.Encode()
}
