package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"ordercrm/internal/mw"
	"ordercrm/internal/service"
)

const sessionName = "crm-session"

type Handler struct {
	orders       *service.OrderService
	access       *service.Access
	templates    *TemplateCache
	sessionStore *sessions.CookieStore
}

func New(orders *service.OrderService, access *service.Access, secretKey []byte) (*Handler, error) {
	tc, err := NewTemplateCache()
	if err != nil {
		return nil, err
	}

	return &Handler{
		orders:       orders,
		access:       access,
		templates:    tc,
		sessionStore: sessions.NewCookieStore(secretKey),
	}, nil
}

// Routes builds the web surface. Identity resolution runs on every
// route: the uid query parameter is the caller's whole identity, per
// the chat client's deep-link contract.
func (h *Handler) Routes(dir *service.Directory) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.Identity(dir))

	r.Get("/", h.Menu)
	r.Get("/new_order", h.NewOrderForm)
	r.Post("/new_order", h.SubmitOrder)
	r.Get("/orders/{status}", h.ListOrders)
	r.Get("/update_status/{orderID}/{status}", h.UpdateStatus)

	return r
}

// serveError maps service errors to the client-visible taxonomy:
// Forbidden → 403, NotFound → 404, anything crossing the store
// boundary → 502.
func serveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, service.ErrOrderNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	default:
		slog.Error("order store request failed", "error", err)
		http.Error(w, "order store unavailable", http.StatusBadGateway)
	}
}

func (h *Handler) addFlash(w http.ResponseWriter, r *http.Request, msg string) {
	session, _ := h.sessionStore.Get(r, sessionName)
	session.AddFlash(msg)
	if err := session.Save(r, w); err != nil {
		slog.Warn("failed to save session", "error", err)
	}
}

func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := h.sessionStore.Get(r, sessionName)
	raw := session.Flashes()
	if err := session.Save(r, w); err != nil {
		slog.Warn("failed to save session", "error", err)
	}

	flashes := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			flashes = append(flashes, s)
		}
	}
	return flashes
}
