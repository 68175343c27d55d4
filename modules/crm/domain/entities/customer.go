package entities

import "time"

const CustomersTable = "Customers"

const (
	DefaultOrganizationID   int64 = 1
	PlaceholderMobileNumber int64 = -1
	PlaceholderText               = "None"

	CustomerTypeLead     = "LEAD"
	CustomerStatusActive = "ACTIVE"
)

var CustomerColumns = []string{
	"fk_organization_id", "name", "email", "phone_number", "mobile_number", "website_url",
	"industry", "customer_type", "status", "source", "converted_at", "notes", "vat_number",
	"tax_id", "tags", "created_at", "updated_at",
}

type Customer struct {
	OrganizationID int64
	Name           string
	Email          *string
	PhoneNumber    *string
	MobileNumber   int64
	WebsiteURL     string
	Industry       string
	CustomerType   string
	Status         string
	Source         *string
	ConvertedAt    *string
	Notes          string
	VATNumber      *string
	TaxID          string
	Tags           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c Customer) Values() []any {
	return []any{
		c.OrganizationID, c.Name, c.Email, c.PhoneNumber, c.MobileNumber, c.WebsiteURL,
		c.Industry, c.CustomerType, c.Status, c.Source, c.ConvertedAt, c.Notes, c.VATNumber,
		c.TaxID, c.Tags, c.CreatedAt, c.UpdatedAt,
	}
}
