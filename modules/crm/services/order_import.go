package services

import (
	"context"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/modules/crm/domain/entities"
	"github.com/iota-uz/crm-import/pkg/datasource"
)

const (
	orderNumber          = 0
	orderDate            = 1
	orderDueDate         = 5
	orderInvoiceDate     = 6
	orderCustomerName    = 10
	orderCustomerNotes   = 14
	orderProductionNotes = 15
	orderSalesTax        = 17
	orderAmountPaid      = 19
	orderTotal           = 25
	orderTags            = 31
)

// OrderImporter creates one Order and one Invoice per resolved source row.
type OrderImporter struct {
	base
	lookup customerLookup
}

func NewOrderImporter(writer domain.BulkInserter, resolver domain.CustomerResolver, opts Options) *OrderImporter {
	return &OrderImporter{
		base:   newBase(writer, opts),
		lookup: newCustomerLookup(resolver, opts),
	}
}

func (i *OrderImporter) Name() string { return "orders" }

type orderRow struct {
	number          *string
	date            *string
	dueDate         *string
	invoiceDate     *string
	customerNotes   *string
	productionNotes *string
	salesTax        decimal.Decimal
	amountPaid      decimal.Decimal
	total           decimal.Decimal
	tags            string
}

func (i *OrderImporter) Import(ctx context.Context, records []datasource.Record) (Summary, error) {
	summary := Summary{Importer: i.Name(), Records: len(records), DryRun: i.opts.DryRun}

	orders := make([]entities.Order, 0, len(records))
	invoices := make([]entities.Invoice, 0, len(records))
	grandTotal := decimal.Zero
	for idx, rec := range records {
		row, err := i.parse(rec)
		if err != nil {
			return summary, err
		}
		candidate, err := i.lookup.candidate(rec, func(r datasource.Record) (string, error) {
			return fieldText(r, orderCustomerName)
		})
		if err != nil {
			return summary, err
		}
		if candidate == "" {
			summary.Unresolved++
			continue
		}
		customerID, found, err := i.lookup.resolve(ctx, candidate, idx, len(records))
		if err != nil {
			return summary, err
		}
		if !found {
			summary.Unresolved++
			continue
		}

		orders = append(orders, i.order(customerID, row))
		invoices = append(invoices, i.invoice(customerID, row))
		grandTotal = grandTotal.Add(row.total)
	}
	summary.TotalAmount = money.New(grandTotal.Shift(2).Round(0).IntPart(), money.USD).Display()

	if err := i.write(ctx, &summary, entities.OrdersTable, entities.OrderColumns, entities.Rows(orders)); err != nil {
		return summary, err
	}
	err := i.write(ctx, &summary, entities.InvoicesTable, entities.InvoiceColumns, entities.Rows(invoices))
	return summary, err
}

func (i *OrderImporter) parse(rec datasource.Record) (orderRow, error) {
	var row orderRow
	texts := []struct {
		pos int
		dst **string
	}{
		{orderNumber, &row.number},
		{orderDate, &row.date},
		{orderDueDate, &row.dueDate},
		{orderInvoiceDate, &row.invoiceDate},
		{orderCustomerNotes, &row.customerNotes},
		{orderProductionNotes, &row.productionNotes},
	}
	for _, t := range texts {
		v, err := fieldNullable(rec, t.pos)
		if err != nil {
			return row, err
		}
		*t.dst = v
	}

	amounts := []struct {
		pos int
		dst *decimal.Decimal
	}{
		{orderSalesTax, &row.salesTax},
		{orderAmountPaid, &row.amountPaid},
		{orderTotal, &row.total},
	}
	for _, a := range amounts {
		v, err := field(rec, a.pos)
		if err != nil {
			return row, err
		}
		*a.dst = amountOrZero(v, i.opts.ParseAmounts)
	}

	tags, err := field(rec, orderTags)
	if err != nil {
		return row, err
	}
	row.tags = tagsObject(tags)
	return row, nil
}

func (i *OrderImporter) order(customerID int64, row orderRow) entities.Order {
	now := i.now()
	return entities.Order{
		CustomerID:  customerID,
		OrderNumber: row.number,
		OrderDate:   row.date,
		Status:      entities.OrderStatusDraft,
		Subtotal:    row.amountPaid,
		TaxTotal:    row.salesTax,
		TotalAmount: row.total,
		Currency:    money.USD,
		Notes:       row.customerNotes,
		Tags:        row.tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (i *OrderImporter) invoice(customerID int64, row orderRow) entities.Invoice {
	now := i.now()
	return entities.Invoice{
		CustomerID:    customerID,
		InvoiceNumber: row.number,
		InvoiceDate:   row.invoiceDate,
		DueDate:       row.dueDate,
		Status:        entities.InvoiceStatusDraft,
		Subtotal:      row.amountPaid,
		TaxTotal:      row.salesTax,
		TotalAmount:   row.total,
		Currency:      money.USD,
		Notes:         row.productionNotes,
		Terms:         "",
		Tags:          row.tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
