package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordercrm/internal/handler"
	"ordercrm/internal/model"
	"ordercrm/internal/service"
)

// aggStore is an in-memory service.Store holding already-aggregated
// orders, standing in for the sheet. A non-nil err makes every call
// fail the way an unreachable backend would.
type aggStore struct {
	orders  []model.Order
	appends []model.Order
	err     error
}

func (s *aggStore) Append(_ context.Context, order model.Order, items []model.Item) error {
	if s.err != nil {
		return s.err
	}
	order.Items = items
	s.appends = append(s.appends, order)
	s.orders = append(s.orders, order)
	return nil
}

func (s *aggStore) ReadAll(_ context.Context, statusFilter string) ([]model.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	if statusFilter == "" {
		return s.orders, nil
	}
	var out []model.Order
	for _, o := range s.orders {
		if o.Status == statusFilter {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *aggStore) UpdateStatus(_ context.Context, orderID, newStatus string) error {
	if s.err != nil {
		return s.err
	}
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = newStatus
		}
	}
	return nil
}

var testRoles = map[string]model.Role{
	"1": model.RoleAdmin,
	"2": model.RolePicker,
	"3": model.RoleCourier,
	"4": model.RoleManager,
}

func newTestServer(t *testing.T, store *aggStore) *httptest.Server {
	t.Helper()

	access := service.NewAccess()
	h, err := handler.New(service.NewOrderService(store, access), access, []byte("test-secret-key-32-bytes-long!!!"))
	require.NoError(t, err)

	srv := httptest.NewServer(h.Routes(service.NewDirectory(testRoles)))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()

	client := srv.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := client.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestViewingIsOpenWithoutRole(t *testing.T) {
	store := &aggStore{orders: []model.Order{{ID: "100", Status: model.StatusPlaced}}}
	srv := newTestServer(t, store)

	resp := get(t, srv, "/orders/all")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, srv, "/orders/all?uid=unknown-user")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMenuRendersForEveryone(t *testing.T) {
	srv := newTestServer(t, &aggStore{})

	for _, uid := range []string{"", "1", "4", "nobody"} {
		resp := get(t, srv, "/?uid="+uid)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "uid %q", uid)
	}
}

func TestNewOrderFormRequiresManagerOrAdmin(t *testing.T) {
	srv := newTestServer(t, &aggStore{})

	assert.Equal(t, http.StatusOK, get(t, srv, "/new_order?uid=4").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, srv, "/new_order?uid=1").StatusCode)
	assert.Equal(t, http.StatusForbidden, get(t, srv, "/new_order?uid=2").StatusCode)
	assert.Equal(t, http.StatusForbidden, get(t, srv, "/new_order?uid=3").StatusCode)
	assert.Equal(t, http.StatusForbidden, get(t, srv, "/new_order").StatusCode)
}

func postForm(t *testing.T, srv *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()

	client := srv.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSubmitOrder(t *testing.T) {
	store := &aggStore{}
	srv := newTestServer(t, store)

	form := url.Values{}
	form.Set("customer_name", "Иванов")
	form.Set("channel", "Телеграм")
	form.Set("item_0_sku", "A-1")
	form.Set("item_0_quantity", "2")
	form.Set("item_2_sku", "C-3") // gap at item_1: must be dropped

	resp := postForm(t, srv, "/new_order?uid=4", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/orders/placed?uid=4", resp.Header.Get("Location"))

	require.Len(t, store.appends, 1)
	created := store.appends[0]
	assert.Equal(t, model.StatusPlaced, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Date)
	require.Len(t, created.Items, 1, "item list must stop at the first missing SKU")
	assert.Equal(t, "A-1", created.Items[0].SKU)
}

func TestSubmitOrderForbidden(t *testing.T) {
	store := &aggStore{}
	srv := newTestServer(t, store)

	form := url.Values{}
	form.Set("item_0_sku", "A-1")

	for _, uid := range []string{"2", "3", ""} {
		resp := postForm(t, srv, "/new_order?uid="+uid, form)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "uid %q", uid)
	}
	assert.Empty(t, store.appends)
}

func TestPickerTransitionScenario(t *testing.T) {
	store := &aggStore{orders: []model.Order{{ID: "500", Status: model.StatusPlaced}}}
	srv := newTestServer(t, store)

	// placed -> awaiting supply is the picker's legal step
	resp := get(t, srv, "/update_status/500/awaiting%20supply?uid=2")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/orders/awaiting%20supply?uid=2", resp.Header.Get("Location"))
	assert.Equal(t, model.StatusAwaitingSupply, store.orders[0].Status)

	// jumping straight to assembly from a fresh order is not
	store.orders[0].Status = model.StatusPlaced
	resp = get(t, srv, "/update_status/500/assembly?uid=2")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, model.StatusPlaced, store.orders[0].Status)
}

func TestTransitionUnknownOrder(t *testing.T) {
	srv := newTestServer(t, &aggStore{})

	resp := get(t, srv, "/update_status/999/awaiting%20supply?uid=2")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransitionForbiddenRoles(t *testing.T) {
	store := &aggStore{orders: []model.Order{{ID: "500", Status: model.StatusPlaced}}}
	srv := newTestServer(t, store)

	for _, uid := range []string{"4", "", "nobody"} {
		resp := get(t, srv, "/update_status/500/awaiting%20supply?uid="+uid)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "uid %q", uid)
	}
}

func TestAdminTransitionsAnywhere(t *testing.T) {
	store := &aggStore{orders: []model.Order{{ID: "500", Status: model.StatusPlaced}}}
	srv := newTestServer(t, store)

	resp := get(t, srv, "/update_status/500/completed?uid=1")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, model.StatusCompleted, store.orders[0].Status)

	// even on an order that does not exist: the admin path skips the
	// existence check and the update is a quiet no-op
	resp = get(t, srv, "/update_status/does-not-exist/placed?uid=1")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestListShowsOrders(t *testing.T) {
	store := &aggStore{orders: []model.Order{
		{ID: "100", Status: model.StatusPlaced, CustomerName: "Иванов", Items: []model.Item{{SKU: "A-1", OrderSum: "100"}}},
		{ID: "200", Status: model.StatusDelivery, Items: []model.Item{{SKU: "B-2"}}},
	}}
	srv := newTestServer(t, store)

	resp := get(t, srv, "/orders/placed?uid=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "100")
	assert.Contains(t, page, "Иванов")
	assert.NotContains(t, page, "B-2", "filtered status must not leak other orders")
}

func TestStoreFailureSurfacesAs502(t *testing.T) {
	store := &aggStore{err: errors.New("sheets backend unreachable")}
	srv := newTestServer(t, store)

	resp := get(t, srv, "/orders/all?uid=2")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// the picker path reads the order before transitioning, so the
	// store failure surfaces there too
	resp = get(t, srv, "/update_status/500/awaiting%20supply?uid=2")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	form := url.Values{}
	form.Set("item_0_sku", "A-1")
	resp = postForm(t, srv, "/new_order?uid=4", form)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

// newProtectedServer stands up the routes behind the same CSRF layer
// cmd/server uses, with Secure off as it is for a plain-HTTP base URL.
func newProtectedServer(t *testing.T, store *aggStore) (*httptest.Server, *http.Client) {
	t.Helper()

	access := service.NewAccess()
	h, err := handler.New(service.NewOrderService(store, access), access, []byte("test-secret-key-32-bytes-long!!!"))
	require.NoError(t, err)

	protect := csrf.Protect([]byte("test-secret-key-32-bytes-long!!!"), csrf.Secure(false))
	srv := httptest.NewServer(protect(h.Routes(service.NewDirectory(testRoles))))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

var csrfTokenRe = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

func TestSubmitOrderThroughCSRFLayer(t *testing.T) {
	store := &aggStore{}
	srv, client := newProtectedServer(t, store)

	// the form page issues the cookie and embeds the matching token
	resp, err := client.Get(srv.URL + "/new_order?uid=4")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	match := csrfTokenRe.FindSubmatch(body)
	require.NotNil(t, match, "rendered form must embed the CSRF token field")

	form := url.Values{}
	form.Set("gorilla.csrf.Token", string(match[1]))
	form.Set("customer_name", "Иванов")
	form.Set("item_0_sku", "A-1")

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/new_order?uid=4", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode,
		"a manager with a valid token must get through the CSRF layer")
	assert.Equal(t, "/orders/placed?uid=4", resp.Header.Get("Location"))
	require.Len(t, store.appends, 1)
}

func TestSubmitOrderWithoutTokenRejectedByCSRFLayer(t *testing.T) {
	store := &aggStore{}
	srv, client := newProtectedServer(t, store)

	form := url.Values{}
	form.Set("item_0_sku", "A-1")

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/new_order?uid=4", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, store.appends)
}
