package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ordercrm/internal/model"
)

// DateLayout is the creation-date format stored in the sheet.
const DateLayout = "2006-01-02 15:04"

// Store is the row-store surface the repository needs; implemented by
// sheet.Store in production and by fakes in tests.
type Store interface {
	Append(ctx context.Context, order model.Order, items []model.Item) error
	ReadAll(ctx context.Context, statusFilter string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID, newStatus string) error
}

type OrderService struct {
	store  Store
	access *Access
	now    func() time.Time
}

func NewOrderService(store Store, access *Access) *OrderService {
	return &OrderService{
		store:  store,
		access: access,
		now:    time.Now,
	}
}

// Create shapes and persists a new order. A missing ID defaults to the
// current unix timestamp, a missing date to the current local time, and
// the status is forced to "placed" regardless of input. Financial
// fields start empty; the back office fills them in later.
func (s *OrderService) Create(ctx context.Context, role model.Role, order model.Order, items []model.Item) (model.Order, error) {
	if !s.access.CanCreate(role) {
		return model.Order{}, ErrForbidden
	}

	if order.ID == "" {
		order.ID = strconv.FormatInt(s.now().Unix(), 10)
	}
	if order.Date == "" {
		order.Date = s.now().Format(DateLayout)
	}
	order.Status = model.StatusPlaced
	order.Percent = ""
	order.ExtraCosts = ""
	order.Profit = ""
	order.Accruals = ""

	if err := s.store.Append(ctx, order, items); err != nil {
		return model.Order{}, fmt.Errorf("append order: %w", err)
	}
	return order, nil
}

// List returns aggregated orders, optionally filtered by status.
// "all" (and the empty string) mean unfiltered.
func (s *OrderService) List(ctx context.Context, status string) ([]model.Order, error) {
	filter := status
	if filter == model.StatusAll {
		filter = ""
	}

	orders, err := s.store.ReadAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	for i := range orders {
		orders[i].TotalSum = totalSum(orders[i].Items)
	}
	return orders, nil
}

// Get returns the order with the given id, or nil if no row carries it.
func (s *OrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	orders, err := s.store.ReadAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].TotalSum = totalSum(orders[i].Items)
			return &orders[i], nil
		}
	}
	return nil, nil
}

// ChangeStatus applies the transition policy and persists the new
// status on every row of the order. Roles outside the policy are
// rejected before any lookup; admin skips the existence check entirely,
// so an admin update of an unknown id is a successful no-op.
func (s *OrderService) ChangeStatus(ctx context.Context, role model.Role, orderID, target string) error {
	if !s.access.CanChangeStatus(role) {
		return ErrForbidden
	}

	if role != model.RoleAdmin {
		order, err := s.Get(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !s.access.AllowedTransition(role, order.Status, target) {
			return ErrForbidden
		}
	}

	if err := s.store.UpdateStatus(ctx, orderID, target); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// ParseItems collects indexed item fields (item_0_sku, item_0_quantity,
// item_1_sku, …) from a submitted form. Scanning stops at the first
// index whose SKU field is absent or empty, so a gap in the sequence
// truncates the list: item_0 present, item_1 missing, item_2 present
// yields only item_0. This is the documented contract for the legacy
// indexed-field form encoding.
func ParseItems(form url.Values) []model.Item {
	var items []model.Item
	for i := 0; ; i++ {
		prefix := fmt.Sprintf("item_%d_", i)
		sku := form.Get(prefix + "sku")
		if sku == "" {
			break
		}
		items = append(items, model.Item{
			SKU:         sku,
			Supplier:    form.Get(prefix + "supplier"),
			Photo:       form.Get(prefix + "photo"),
			Quantity:    form.Get(prefix + "quantity"),
			OrderSum:    form.Get(prefix + "order_sum"),
			PurchaseSum: form.Get(prefix + "purchase_sum"),
			Comment:     form.Get(prefix + "comment"),
		})
	}
	return items
}

// totalSum adds up the item order sums. Sheet cells are free-form, so
// unparsable values are skipped rather than failing the listing.
func totalSum(items []model.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		raw := strings.ReplaceAll(strings.TrimSpace(it.OrderSum), ",", ".")
		v, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		total = total.Add(v)
	}
	return total
}
