package services

import (
	"context"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/modules/crm/domain/entities"
	"github.com/iota-uz/crm-import/pkg/datasource"
)

const (
	addressFirstName = 1
	addressLastName  = 2
	addressBilling   = 7
	addressCity      = 10
	addressState     = 11
	addressShipping  = 14
	addressPostal    = 19
	addressCountry   = 20
)

type AddressImporter struct {
	base
	lookup customerLookup
}

func NewAddressImporter(writer domain.BulkInserter, resolver domain.CustomerResolver, opts Options) *AddressImporter {
	return &AddressImporter{
		base:   newBase(writer, opts),
		lookup: newCustomerLookup(resolver, opts),
	}
}

func (i *AddressImporter) Name() string { return "addresses" }

func (i *AddressImporter) Import(ctx context.Context, records []datasource.Record) (Summary, error) {
	summary := Summary{Importer: i.Name(), Records: len(records), DryRun: i.opts.DryRun}

	addresses := make([]entities.Address, 0, len(records))
	for idx, rec := range records {
		candidate, err := i.lookup.candidate(rec, addressCustomerName)
		if err != nil {
			return summary, err
		}
		customerID, found, err := i.lookup.resolve(ctx, candidate, idx, len(records))
		if err != nil {
			return summary, err
		}
		if !found {
			summary.Unresolved++
			continue
		}

		a, err := i.normalize(rec, customerID)
		if err != nil {
			return summary, err
		}
		addresses = append(addresses, a)
	}

	err := i.write(ctx, &summary, entities.AddressesTable, entities.AddressColumns, entities.Rows(addresses))
	return summary, err
}

func addressCustomerName(rec datasource.Record) (string, error) {
	first, err := fieldText(rec, addressFirstName)
	if err != nil {
		return "", err
	}
	last, err := fieldText(rec, addressLastName)
	if err != nil {
		return "", err
	}
	return first + " " + last, nil
}

func (i *AddressImporter) normalize(rec datasource.Record, customerID int64) (entities.Address, error) {
	a := entities.Address{CustomerID: customerID}
	targets := []struct {
		pos int
		dst **string
	}{
		{addressBilling, &a.BillingAddress},
		{addressShipping, &a.ShippingAddress},
		{addressCity, &a.City},
		{addressState, &a.State},
		{addressPostal, &a.PostalCode},
		{addressCountry, &a.Country},
	}
	for _, t := range targets {
		v, err := fieldNullable(rec, t.pos)
		if err != nil {
			return a, err
		}
		*t.dst = v
	}

	now := i.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}
