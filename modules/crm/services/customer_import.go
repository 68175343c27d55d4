package services

import (
	"context"
	"strings"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/modules/crm/domain/entities"
	"github.com/iota-uz/crm-import/pkg/datasource"
)

// Source positions in the customer export.
const (
	customerFirstName   = 1
	customerLastName    = 2
	customerEmail       = 4
	customerPhone       = 5
	customerVATNumber   = 22
	customerConvertedAt = 23
	customerSource      = 24
	customerNotes       = 25
	customerNotesExtra  = 26
)

type CustomerImporter struct {
	base
}

func NewCustomerImporter(writer domain.BulkInserter, opts Options) *CustomerImporter {
	return &CustomerImporter{base: newBase(writer, opts)}
}

func (i *CustomerImporter) Name() string { return "customers" }

func (i *CustomerImporter) Import(ctx context.Context, records []datasource.Record) (Summary, error) {
	summary := Summary{Importer: i.Name(), Records: len(records), DryRun: i.opts.DryRun}

	customers := make([]entities.Customer, 0, len(records))
	for _, rec := range records {
		c, err := i.normalize(rec)
		if err != nil {
			return summary, err
		}
		customers = append(customers, c)
	}

	err := i.write(ctx, &summary, entities.CustomersTable, entities.CustomerColumns, entities.Rows(customers))
	return summary, err
}

func (i *CustomerImporter) normalize(rec datasource.Record) (entities.Customer, error) {
	var (
		c   entities.Customer
		err error
	)
	first, err := fieldText(rec, customerFirstName)
	if err != nil {
		return c, err
	}
	last, err := fieldText(rec, customerLastName)
	if err != nil {
		return c, err
	}
	notes, err := fieldText(rec, customerNotes)
	if err != nil {
		return c, err
	}
	notesExtra, err := fieldText(rec, customerNotesExtra)
	if err != nil {
		return c, err
	}
	if c.Email, err = fieldNullable(rec, customerEmail); err != nil {
		return c, err
	}
	if c.PhoneNumber, err = fieldNullable(rec, customerPhone); err != nil {
		return c, err
	}
	if c.Source, err = fieldNullable(rec, customerSource); err != nil {
		return c, err
	}
	if c.ConvertedAt, err = fieldNullable(rec, customerConvertedAt); err != nil {
		return c, err
	}
	if c.VATNumber, err = fieldNullable(rec, customerVATNumber); err != nil {
		return c, err
	}

	now := i.now()
	c.OrganizationID = entities.DefaultOrganizationID
	c.Name = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
	c.MobileNumber = entities.PlaceholderMobileNumber
	c.WebsiteURL = entities.PlaceholderText
	c.Industry = entities.PlaceholderText
	c.CustomerType = entities.CustomerTypeLead
	c.Status = entities.CustomerStatusActive
	c.Notes = notes + "\n" + notesExtra
	c.TaxID = ""
	c.Tags = "[]"
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}
