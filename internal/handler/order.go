package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"ordercrm/internal/model"
	"ordercrm/internal/mw"
	"ordercrm/internal/service"
)

// allStatuses in workflow order; used for menu links and for the
// admin's unrestricted transition controls.
var allStatuses = []string{
	model.StatusPlaced,
	model.StatusAwaitingSupply,
	model.StatusAssembly,
	model.StatusDelivery,
	model.StatusCompleted,
}

// blank item blocks rendered on the order form
var itemSlots = []int{0, 1, 2, 3, 4}

type statusLink struct {
	Label string
	URL   string
}

type orderView struct {
	model.Order
	Transitions []statusLink
}

func listURL(status, uid string) string {
	return fmt.Sprintf("/orders/%s?uid=%s", url.PathEscape(status), url.QueryEscape(uid))
}

func transitionURL(orderID, target, uid string) string {
	return fmt.Sprintf("/update_status/%s/%s?uid=%s",
		url.PathEscape(orderID), url.PathEscape(target), url.QueryEscape(uid))
}

// Menu renders the role-aware landing page.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	uid := mw.UID(r)
	role := mw.Role(r)

	listings := make([]statusLink, 0, len(allStatuses)+1)
	for _, st := range allStatuses {
		listings = append(listings, statusLink{Label: st, URL: listURL(st, uid)})
	}
	listings = append(listings, statusLink{Label: "all", URL: listURL(model.StatusAll, uid)})

	h.templates.Render(w, "index.html", map[string]any{
		"UID":       uid,
		"Role":      role,
		"CanCreate": h.access.CanCreate(role),
		"Listings":  listings,
	})
}

// NewOrderForm renders the order form for manager and admin.
func (h *Handler) NewOrderForm(w http.ResponseWriter, r *http.Request) {
	role := mw.Role(r)
	if !h.access.CanCreate(role) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	h.templates.Render(w, "new_order.html", map[string]any{
		"UID":       mw.UID(r),
		"Role":      role,
		"Channels":  salesChannels,
		"Logistics": logisticsCarriers,
		"Suppliers": suppliers,
		"ItemSlots": itemSlots,
		"CSRFField": csrf.TemplateField(r),
	})
}

// SubmitOrder accepts the order form, shapes it through the repository
// and redirects to the listing of freshly placed orders.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	uid := mw.UID(r)
	role := mw.Role(r)
	if !h.access.CanCreate(role) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	order := model.Order{
		ID:           r.PostForm.Get("order_id"),
		Status:       r.PostForm.Get("status"),
		Date:         r.PostForm.Get("date"),
		Channel:      r.PostForm.Get("channel"),
		CustomerName: r.PostForm.Get("customer_name"),
		Phone:        r.PostForm.Get("phone"),
		Messenger:    r.PostForm.Get("messenger"),
		Address:      r.PostForm.Get("address"),
		Logistics:    r.PostForm.Get("logistics"),
	}
	items := service.ParseItems(r.PostForm)

	created, err := h.orders.Create(r.Context(), role, order, items)
	if err != nil {
		serveError(w, err)
		return
	}

	h.addFlash(w, r, fmt.Sprintf("Order %s placed", created.ID))
	http.Redirect(w, r, listURL(model.StatusPlaced, uid), http.StatusSeeOther)
}

// ListOrders shows orders for a status; "all" lists everything.
// Viewing is open to every role, including unassigned identities.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	uid := mw.UID(r)
	role := mw.Role(r)
	status := chi.URLParam(r, "status")

	orders, err := h.orders.List(r.Context(), status)
	if err != nil {
		serveError(w, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView{
			Order:       o,
			Transitions: h.transitionLinks(role, o, uid),
		})
	}

	h.templates.Render(w, "orders.html", map[string]any{
		"UID":     uid,
		"Role":    role,
		"Status":  status,
		"Orders":  views,
		"Flashes": h.popFlashes(w, r),
	})
}

// transitionLinks returns the status-change controls the role gets for
// an order: the single next step for picker and courier, every other
// status for admin, nothing for everyone else.
func (h *Handler) transitionLinks(role model.Role, o model.Order, uid string) []statusLink {
	if role == model.RoleAdmin {
		links := make([]statusLink, 0, len(allStatuses)-1)
		for _, st := range allStatuses {
			if st == o.Status {
				continue
			}
			links = append(links, statusLink{Label: st, URL: transitionURL(o.ID, st, uid)})
		}
		return links
	}

	next, ok := h.access.NextStatus(role, o.Status)
	if !ok {
		return nil
	}
	return []statusLink{{Label: next, URL: transitionURL(o.ID, next, uid)}}
}

// UpdateStatus applies the transition policy and redirects to the
// listing that now contains the order.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	uid := mw.UID(r)
	role := mw.Role(r)
	orderID := chi.URLParam(r, "orderID")
	target := chi.URLParam(r, "status")

	if err := h.orders.ChangeStatus(r.Context(), role, orderID, target); err != nil {
		serveError(w, err)
		return
	}

	http.Redirect(w, r, listURL(target, uid), http.StatusSeeOther)
}
