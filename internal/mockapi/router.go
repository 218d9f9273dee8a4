package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.observe)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	todos := r.PathPrefix("/todos").Subrouter()
	todos.Use(s.requireAuth)
	todos.HandleFunc("", s.handleList).Methods(http.MethodGet)
	todos.HandleFunc("", s.handleCreate).Methods(http.MethodPost)
	todos.HandleFunc("/{id}", s.handleUpdate).Methods(http.MethodPut)
	todos.HandleFunc("/{id}", s.handleDelete).Methods(http.MethodDelete)
	return r
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todoodoo_mock",
			Name:      "http_requests_total",
			Help:      "Requests served, by route template, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "todoodoo_mock",
			Name:      "http_request_duration_seconds",
			Help:      "Request latency by route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observe logs and counts every routed request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		took := time.Since(start)

		s.metrics.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(took.Seconds())
		s.opts.Logger.Debug().
			Str("request_id", r.Header.Get("X-Request-ID")).
			Str("method", r.Method).
			Str("route", route).
			Int("status", rec.status).
			Dur("took", took).
			Msg("mock request")
	})
}
