package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/modules/crm/domain/entities"
	"github.com/iota-uz/crm-import/pkg/datasource"
)

type OrganizationImporter struct {
	base
}

func NewOrganizationImporter(writer domain.BulkInserter, opts Options) *OrganizationImporter {
	return &OrganizationImporter{base: newBase(writer, opts)}
}

func (i *OrganizationImporter) Name() string { return "organizations" }

func (i *OrganizationImporter) Import(ctx context.Context, records []datasource.Record) (Summary, error) {
	summary := Summary{Importer: i.Name(), Records: len(records), DryRun: i.opts.DryRun}

	orgs := make([]entities.Organization, 0, len(records))
	for _, rec := range records {
		org, err := i.normalize(rec)
		if err != nil {
			return summary, err
		}
		orgs = append(orgs, org)
	}

	err := i.write(ctx, &summary, entities.OrganizationsTable, entities.OrganizationColumns, entities.Rows(orgs))
	return summary, err
}

func (i *OrganizationImporter) normalize(rec datasource.Record) (entities.Organization, error) {
	if !rec.IsObject() {
		return entities.Organization{}, errors.Errorf("record %d: organizations need keyed objects", rec.Line)
	}
	get := func(key string) *string {
		v, _ := rec.Get(key)
		return nullableText(v)
	}

	now := i.now()
	return entities.Organization{
		Name:            get("name"),
		Industry:        get("industry"),
		WebsiteURL:      get("website_url"),
		Email:           get("email"),
		PhoneNumber:     get("phone_number"),
		BillingAddress:  get("billing_address"),
		ShippingAddress: get("shipping_address"),
		City:            get("city"),
		State:           get("state"),
		PostalCode:      get("postal_code"),
		Country:         get("country"),
		Notes:           get("notes"),
		Tags:            get("tags"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
