package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const InvoicesTable = "Invoices"

const InvoiceStatusDraft = "DRAFT"

// InvoiceColumns spells the tax column "taxtotal", unlike Orders.tax_total.
var InvoiceColumns = []string{
	"fk_customer_id", "invoice_number", "invoice_date", "due_date", "status", "subtotal",
	"taxtotal", "total_amount", "currency", "notes", "terms", "tags", "created_at",
	"updated_at",
}

// Invoice is created alongside an Order from the same source row and shares its number.
type Invoice struct {
	CustomerID    int64
	InvoiceNumber *string
	InvoiceDate   *string
	DueDate       *string
	Status        string
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	TotalAmount   decimal.Decimal
	Currency      string
	Notes         *string
	Terms         string
	Tags          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (i Invoice) Values() []any {
	return []any{
		i.CustomerID, i.InvoiceNumber, i.InvoiceDate, i.DueDate, i.Status, i.Subtotal,
		i.TaxTotal, i.TotalAmount, i.Currency, i.Notes, i.Terms, i.Tags, i.CreatedAt,
		i.UpdatedAt,
	}
}
