package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrdersTable = "Orders"

const OrderStatusDraft = "DRAFT"

var OrderColumns = []string{
	"fk_customer_id", "order_number", "order_date", "status", "subtotal", "tax_total",
	"total_amount", "currency", "notes", "tags", "created_at", "updated_at",
}

type Order struct {
	CustomerID  int64
	OrderNumber *string
	OrderDate   *string
	Status      string
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	TotalAmount decimal.Decimal
	Currency    string
	Notes       *string
	Tags        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o Order) Values() []any {
	return []any{
		o.CustomerID, o.OrderNumber, o.OrderDate, o.Status, o.Subtotal, o.TaxTotal,
		o.TotalAmount, o.Currency, o.Notes, o.Tags, o.CreatedAt, o.UpdatedAt,
	}
}
