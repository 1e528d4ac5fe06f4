package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ant0nk/Trimly-BookingService/pkg/metrics"
)

// statusRecorder перехватывает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware снимает метрики с каждого HTTP запроса
// В label path попадает шаблон маршрута ({appointmentId} вместо конкретного ID),
// иначе кардинальность метрик растёт с каждым новым идентификатором
func MetricsMiddleware(m *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			m.ObserveHTTPRequest(serviceName, r.Method, path, recorder.status, time.Since(start))
		})
	}
}
