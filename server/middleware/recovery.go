package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin/render"

	apperrors "github.com/kbukum/fetchkit/errors"
	"github.com/kbukum/fetchkit/logger"
)

// Recovery turns a handler panic into a logged stack trace and a 500
// INTERNAL_ERROR body.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				err := apperrors.Internal(fmt.Errorf("panic: %v", rec))
				log.Error("Panic recovered", map[string]interface{}{
					"error":  err.Cause.Error(),
					"stack":  string(debug.Stack()),
					"path":   r.URL.Path,
					"method": r.Method,
				})
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(err.HTTPStatus)
				_ = render.WriteJSON(w, err.ToResponse())
			}()
			next.ServeHTTP(w, r)
		})
	}
}
