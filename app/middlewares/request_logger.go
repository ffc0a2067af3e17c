package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags every request with an id and logs its outcome.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			ctx := context.WithValue(r.Context(), helpers.ContextKeyRequestID, requestID)
			next.ServeHTTP(rec, r.WithContext(ctx))

			entry := log.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"duration":   time.Since(start).String(),
			})
			switch {
			case rec.status >= http.StatusInternalServerError:
				entry.Error("request failed")
			case rec.status >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request handled")
			}
		})
	}
}
