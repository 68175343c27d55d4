package entities

import "time"

const AddressesTable = "Addresses"

var AddressColumns = []string{
	"fk_customer_id", "billing_address", "shipping_address", "city", "state", "postal_code",
	"country", "created_at", "updated_at",
}

type Address struct {
	CustomerID      int64
	BillingAddress  *string
	ShippingAddress *string
	City            *string
	State           *string
	PostalCode      *string
	Country         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Address) Values() []any {
	return []any{
		a.CustomerID, a.BillingAddress, a.ShippingAddress, a.City, a.State, a.PostalCode,
		a.Country, a.CreatedAt, a.UpdatedAt,
	}
}
