package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sneaker-fulfillment/internal/domain"
)

// NewRouter exposes the webhook over plain HTTP. gatherer may be nil, in
// which case /metrics is not served.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/webhook", h.ServeWebhook).Methods(http.MethodPost)
	r.HandleFunc("/healthz", serveHealth).Methods(http.MethodGet)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return r
}

func (h *Handler) ServeWebhook(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(map[string]string{correlationHeader: r.Header.Get(correlationHeader)})

	var out domain.WebhookResponse
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log.WarnContext(r.Context(), "unreadable webhook request", "correlation_id", corrID, "err", err)
		out = malformedReply(err)
	} else {
		out = h.fulfill(r.Context(), corrID, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(correlationHeader, corrID)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write fulfillment response", "correlation_id", corrID, "err", err)
	}
}

func serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
