package sheet

import (
	"context"
	"fmt"

	"ordercrm/internal/model"
)

const (
	idColumnRange = "Orders!A:A"
	fullRange     = "Orders!A:T"
)

// ValuesAPI is the slice of the spreadsheet values API the store needs.
// The production implementation talks to Google Sheets; tests use an
// in-memory grid.
type ValuesAPI interface {
	Get(ctx context.Context, readRange string) ([][]string, error)
	Update(ctx context.Context, writeRange string, values [][]string) error
}

// Store persists orders as flat rows in a remote sheet. Reads and
// writes are not transactional: concurrent mutations of the same order
// can race, and the store offers no ordering guarantee across them.
type Store struct {
	api ValuesAPI
}

func NewStore(api ValuesAPI) *Store {
	return &Store{api: api}
}

// Append writes one row per item, all sharing the order's fields, into
// one contiguous range starting at the first free row of column A.
func (s *Store) Append(ctx context.Context, order model.Order, items []model.Item) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, rowFromItem(order, it))
	}
	if len(rows) == 0 {
		return nil
	}

	existing, err := s.api.Get(ctx, idColumnRange)
	if err != nil {
		return fmt.Errorf("read id column: %w", err)
	}
	next := len(existing) + 1

	writeRange := fmt.Sprintf("Orders!A%d:T%d", next, next+len(rows)-1)
	if err := s.api.Update(ctx, writeRange, rows); err != nil {
		return fmt.Errorf("append rows: %w", err)
	}
	return nil
}

// ReadAll aggregates item rows into orders, grouped by the id column in
// first-seen order. The first row seen for an id is authoritative for
// the order's shared fields and status: the status filter is applied to
// it alone, and every later row of an included order contributes an
// item even if its own status cell disagrees. An empty statusFilter
// returns all orders.
func (s *Store) ReadAll(ctx context.Context, statusFilter string) ([]model.Order, error) {
	rows, err := s.api.Get(ctx, fullRange)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var orders []model.Order
	index := make(map[string]int) // order id -> position in orders, -1 if filtered out
	for _, row := range rows {
		if len(row) < 2 || row[colID] == "" {
			continue
		}
		id := row[colID]
		pos, seen := index[id]
		if !seen {
			o := orderFromRow(row)
			if statusFilter != "" && o.Status != statusFilter {
				index[id] = -1
				continue
			}
			orders = append(orders, o)
			pos = len(orders) - 1
			index[id] = pos
		}
		if pos < 0 {
			continue
		}
		orders[pos].Items = append(orders[pos].Items, itemFromRow(row))
	}
	return orders, nil
}

// UpdateStatus rewrites the status cell of every row whose id column
// matches orderID, one range update per row. Matching zero rows is not
// an error. The per-row writes keep the rest of each row untouched but
// are not atomic as a group.
func (s *Store) UpdateStatus(ctx context.Context, orderID, newStatus string) error {
	rows, err := s.api.Get(ctx, fullRange)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	for i, row := range rows {
		if len(row) == 0 || row[colID] != orderID {
			continue
		}
		updated := make([]string, len(row))
		copy(updated, row)
		for len(updated) < 2 {
			updated = append(updated, "")
		}
		updated[colStatus] = newStatus

		rowRange := fmt.Sprintf("Orders!A%d:T%d", i+1, i+1)
		if err := s.api.Update(ctx, rowRange, [][]string{updated}); err != nil {
			return fmt.Errorf("update row %d: %w", i+1, err)
		}
	}
	return nil
}
