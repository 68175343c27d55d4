//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/iota-uz/crm-import/modules/crm/domain/entities"
	"github.com/iota-uz/crm-import/modules/crm/services"
	"github.com/iota-uz/crm-import/pkg/composables"
	"github.com/iota-uz/crm-import/pkg/configuration"
	"github.com/iota-uz/crm-import/pkg/datasource"
)

func setupMySQLContainer(t *testing.T, ctx context.Context) (*sqlx.DB, func()) {
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.4",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "root",
			"MYSQL_USER":          "test",
			"MYSQL_PASSWORD":      "test",
			"MYSQL_DATABASE":      "crm",
		},
		WaitingFor: wait.ForLog("ready for connections").WithOccurrence(2).WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "3306")
	require.NoError(t, err)

	opts := configuration.DatabaseOptions{Host: host, Port: port.Port(), User: "test", Password: "test", Name: "crm"}
	db, err := Connect(ctx, opts.ConnectionString())
	require.NoError(t, err)

	db.SetMaxOpenConns(4)
	require.NoError(t, goose.SetDialect("mysql"))
	require.NoError(t, goose.UpContext(ctx, db.DB, "testdata/migrations"))
	db.SetMaxOpenConns(1)

	cleanup := func() {
		_ = db.Close()
		_ = container.Terminate(ctx)
	}
	return db, cleanup
}

func strPtr(s string) *string { return &s }

type organizationRow struct {
	Name            *string   `db:"name"`
	Industry        *string   `db:"industry"`
	WebsiteURL      *string   `db:"website_url"`
	Email           *string   `db:"email"`
	PhoneNumber     *string   `db:"phone_number"`
	BillingAddress  *string   `db:"billing_address"`
	ShippingAddress *string   `db:"shipping_address"`
	City            *string   `db:"city"`
	State           *string   `db:"state"`
	PostalCode      *string   `db:"postal_code"`
	Country         *string   `db:"country"`
	Notes           *string   `db:"notes"`
	Tags            *string   `db:"tags"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func TestIntegration_ImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, cleanup := setupMySQLContainer(t, ctx)
	defer cleanup()
	ctx = composables.WithDB(ctx, db)
	now := time.Now().Truncate(time.Second)

	t.Run("organizations", func(t *testing.T) {
		orgs := []entities.Organization{
			{Name: strPtr("Acme"), City: strPtr("Paris"), CreatedAt: now, UpdatedAt: now},
			{Name: strPtr("Globex"), CreatedAt: now, UpdatedAt: now},
		}
		n, err := NewBulkWriter().Insert(ctx, entities.OrganizationsTable, entities.OrganizationColumns, entities.Rows(orgs))
		require.NoError(t, err)
		require.Equal(t, int64(2), n)

		var industry *string
		require.NoError(t, db.GetContext(ctx, &industry, "SELECT industry FROM Organizations WHERE name = 'Globex'"))
		require.Nil(t, industry)
	})

	t.Run("organization from keyed record", func(t *testing.T) {
		opts := services.DefaultOptions()
		opts.Now = func() time.Time { return now }
		imp := services.NewOrganizationImporter(NewBulkWriter(), opts)

		record := datasource.NewObjectRecord(1, map[string]any{
			"name":             "Initech",
			"industry":         "Software",
			"website_url":      "https://initech.example",
			"email":            "info@initech.example",
			"phone_number":     "+1 555 0100",
			"billing_address":  "1 Billing Way",
			"shipping_address": "2 Dock Road",
			"city":             "Austin",
			"state":            "TX",
			"postal_code":      "73301",
			"country":          "US",
			"notes":            `Says "hi" & <waves>`,
			"tags":             []any{"b2b", "priority"},
		})
		summary, err := imp.Import(ctx, []datasource.Record{record})
		require.NoError(t, err)
		require.Equal(t, int64(1), summary.Tables[0].Inserted)

		var got organizationRow
		require.NoError(t, db.GetContext(ctx, &got, `SELECT name, industry, website_url, email, phone_number,
			billing_address, shipping_address, city, state, postal_code, country, notes, tags,
			created_at, updated_at FROM Organizations WHERE name = ?`, "Initech"))

		want := organizationRow{
			Name:            strPtr("Initech"),
			Industry:        strPtr("Software"),
			WebsiteURL:      strPtr("https://initech.example"),
			Email:           strPtr("info@initech.example"),
			PhoneNumber:     strPtr("+1 555 0100"),
			BillingAddress:  strPtr("1 Billing Way"),
			ShippingAddress: strPtr("2 Dock Road"),
			City:            strPtr("Austin"),
			State:           strPtr("TX"),
			PostalCode:      strPtr("73301"),
			Country:         strPtr("US"),
			Notes:           strPtr(`Says "hi" & <waves>`),
			Tags:            strPtr(`["b2b","priority"]`),
		}
		require.True(t, now.Equal(got.CreatedAt), "created_at %v", got.CreatedAt)
		require.True(t, now.Equal(got.UpdatedAt), "updated_at %v", got.UpdatedAt)
		got.CreatedAt, got.UpdatedAt = time.Time{}, time.Time{}
		require.Equal(t, want, got)
	})

	t.Run("resolve customers", func(t *testing.T) {
		customers := []entities.Customer{
			{OrganizationID: 1, Name: "John Smith", MobileNumber: -1, CreatedAt: now, UpdatedAt: now},
			{OrganizationID: 1, Name: "Jane Doe", MobileNumber: -1, CreatedAt: now, UpdatedAt: now},
		}
		n, err := NewBulkWriter().Insert(ctx, entities.CustomersTable, entities.CustomerColumns, entities.Rows(customers))
		require.NoError(t, err)
		require.Equal(t, int64(2), n)

		resolver := NewNameResolver()
		for name, want := range map[string]int64{"John Smith": 1, "Smith": 1, "Jane Doe": 2} {
			id, found, err := resolver.Resolve(ctx, name)
			require.NoError(t, err)
			require.True(t, found, name)
			require.Equal(t, want, id, name)
		}

		_, found, err := resolver.Resolve(ctx, "Nobody")
		require.NoError(t, err)
		require.False(t, found)

		id, found, err := NewIDResolver().Resolve(ctx, "2")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, int64(2), id)
	})
}
