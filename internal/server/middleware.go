package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/toppers/mocktest/internal/llm"
	"github.com/toppers/mocktest/internal/logging"
)

// accessLog logs one line per request and puts a request-scoped entry and
// the chi request ID into the request context. It must run after
// middleware.RequestID.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := middleware.GetReqID(r.Context())

		entry := s.log.WithField("request_id", reqID)
		ctx := logging.WithEntry(r.Context(), entry)
		ctx = llm.WithRequestID(ctx, reqID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		entry.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
			"remote":      r.RemoteAddr,
		}).Info("http request")
	})
}
