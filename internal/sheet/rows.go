package sheet

import "ordercrm/internal/model"

// The sheet is a fixed 20-column layout, one row per order item. Shared
// order fields are duplicated on every row of the order.
const numColumns = 20

const (
	colID = iota
	colStatus
	colDate
	colSKU
	colChannel
	colSupplier
	colPhoto
	colQuantity
	colOrderSum
	colPurchaseSum
	colPercent
	colExtraCosts
	colProfit
	colAccruals
	colCustomerName
	colPhone
	colMessenger
	colAddress
	colLogistics
	colComment
)

func rowFromItem(o model.Order, it model.Item) []string {
	row := make([]string, numColumns)
	row[colID] = o.ID
	row[colStatus] = o.Status
	row[colDate] = o.Date
	row[colSKU] = it.SKU
	row[colChannel] = o.Channel
	row[colSupplier] = it.Supplier
	row[colPhoto] = it.Photo
	row[colQuantity] = it.Quantity
	row[colOrderSum] = it.OrderSum
	row[colPurchaseSum] = it.PurchaseSum
	row[colPercent] = o.Percent
	row[colExtraCosts] = o.ExtraCosts
	row[colProfit] = o.Profit
	row[colAccruals] = o.Accruals
	row[colCustomerName] = o.CustomerName
	row[colPhone] = o.Phone
	row[colMessenger] = o.Messenger
	row[colAddress] = o.Address
	row[colLogistics] = o.Logistics
	row[colComment] = it.Comment
	return row
}

// cell reads a column defensively: rows shorter than the full layout
// yield empty strings for the missing cells.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func orderFromRow(row []string) model.Order {
	return model.Order{
		ID:           cell(row, colID),
		Status:       cell(row, colStatus),
		Date:         cell(row, colDate),
		Channel:      cell(row, colChannel),
		Percent:      cell(row, colPercent),
		ExtraCosts:   cell(row, colExtraCosts),
		Profit:       cell(row, colProfit),
		Accruals:     cell(row, colAccruals),
		CustomerName: cell(row, colCustomerName),
		Phone:        cell(row, colPhone),
		Messenger:    cell(row, colMessenger),
		Address:      cell(row, colAddress),
		Logistics:    cell(row, colLogistics),
	}
}

func itemFromRow(row []string) model.Item {
	return model.Item{
		SKU:         cell(row, colSKU),
		Supplier:    cell(row, colSupplier),
		Photo:       cell(row, colPhoto),
		Quantity:    cell(row, colQuantity),
		OrderSum:    cell(row, colOrderSum),
		PurchaseSum: cell(row, colPurchaseSum),
		Comment:     cell(row, colComment),
	}
}
