package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"inventory-service/internal/app"
)

// Handler wires the ApplicationService to the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
// allowedOrigins is the comma-separated ALLOWED_ORIGINS value.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/health", h.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/items", h.createItem)
			r.Get("/items", h.listItems)
			r.Get("/items/{id}", h.getItem)
			r.Put("/items/{id}", h.updateItem)
			r.Get("/items/{id}/transactions", h.listItemTransactions)
			r.Post("/transactions", h.createTransaction)
			r.Get("/low-stock", h.listLowStock)
			r.Get("/stock-value", h.stockValue)
			r.Get("/metrics", h.metrics)
		})

		r.Route("/warehouses", func(r chi.Router) {
			r.Post("/", h.createWarehouse)
			r.Get("/", h.listWarehouses)
			r.Get("/{id}", h.getWarehouse)
			r.Put("/{id}", h.updateWarehouse)
		})
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	writeJSON(w, http.StatusOK, response{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// idParam parses the {id} URL parameter; a false return means the
// error response has already been written.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// pagination parses skip/limit query parameters with the bounds the
// engine trusts: skip >= 0, 1 <= limit <= 100 (default 100).
func pagination(w http.ResponseWriter, r *http.Request) (skip, limit int, ok bool) {
	skip, limit = 0, 100

	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, "skip must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
			return 0, 0, false
		}
		skip = n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, "limit must be between 1 and 100", "BAD_REQUEST", http.StatusBadRequest)
			return 0, 0, false
		}
		limit = n
	}
	return skip, limit, true
}
