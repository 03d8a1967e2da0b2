package api

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/config"
)

// RecoverMiddleware turns a handler panic into a 500 envelope
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			HTTPPanicsTotal.Inc()
			zap.S().Errorw("recovered from handler panic",
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()))
			config.ErrorStatus("Server error", http.StatusInternalServerError, w, nil)
		}()
		next.ServeHTTP(w, r)
	})
}
