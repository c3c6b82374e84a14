package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// Logger writes one access log line per request. Paths listed in quiet are
// only logged when they fail.
func Logger(log logger.Interface, quiet ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if _, ok := skip[c.Request.URL.Path]; ok && status < 400 {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []any{
			"method", c.Request.Method,
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		}
		if rid := c.GetString(constants.ContextKeyRequestID); rid != "" {
			fields = append(fields, "request_id", rid)
		}
		if uid, ok := c.Get(constants.ContextKeyUserID); ok {
			fields = append(fields, "user_id", uid, "role", c.GetString(constants.ContextKeyUserRole))
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}
