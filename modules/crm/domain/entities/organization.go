package entities

import "time"

const OrganizationsTable = "Organizations"

var OrganizationColumns = []string{
	"name", "industry", "website_url", "email", "phone_number",
	"billing_address", "shipping_address", "city", "state", "postal_code", "country",
	"notes", "tags", "created_at", "updated_at",
}

// Organization fields are nil when the source object lacks the key.
type Organization struct {
	Name            *string
	Industry        *string
	WebsiteURL      *string
	Email           *string
	PhoneNumber     *string
	BillingAddress  *string
	ShippingAddress *string
	City            *string
	State           *string
	PostalCode      *string
	Country         *string
	Notes           *string
	Tags            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o Organization) Values() []any {
	return []any{
		o.Name, o.Industry, o.WebsiteURL, o.Email, o.PhoneNumber,
		o.BillingAddress, o.ShippingAddress, o.City, o.State, o.PostalCode, o.Country,
		o.Notes, o.Tags, o.CreatedAt, o.UpdatedAt,
	}
}
