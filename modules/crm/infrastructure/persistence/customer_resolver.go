package persistence

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/huandu/go-sqlbuilder"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/modules/crm/domain/entities"
	"github.com/iota-uz/crm-import/pkg/composables"
)

const customerPK = "pk_customer_id"

// NameResolver matches a customer by exact name or by the candidate appearing
// anywhere inside the stored name. Among several matches the lowest key wins.
// Empty or whitespace-only candidates are never matched and never queried.
type NameResolver struct{}

func NewNameResolver() domain.CustomerResolver {
	return &NameResolver{}
}

func (r *NameResolver) Resolve(ctx context.Context, candidate string) (int64, bool, error) {
	if strings.TrimSpace(candidate) == "" {
		return 0, false, nil
	}

	sb := sqlbuilder.MySQL.NewSelectBuilder()
	sb.Select(customerPK).From(entities.CustomersTable)
	sb.Where(sb.Or(
		sb.Equal("name", candidate),
		"LOCATE("+sb.Var(candidate)+", name) > 0",
	))
	sb.OrderBy(customerPK)
	sb.Limit(1)

	query, args := sb.Build()
	return lookupCustomer(ctx, query, args)
}

// IDResolver treats the candidate as a literal Customers primary key.
type IDResolver struct{}

func NewIDResolver() domain.CustomerResolver {
	return &IDResolver{}
}

func (r *IDResolver) Resolve(ctx context.Context, candidate string) (int64, bool, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(candidate), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, nil
	}

	sb := sqlbuilder.MySQL.NewSelectBuilder()
	sb.Select(customerPK).From(entities.CustomersTable)
	sb.Where(sb.Equal(customerPK, id))

	query, args := sb.Build()
	return lookupCustomer(ctx, query, args)
}

func lookupCustomer(ctx context.Context, query string, args []any) (int64, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to get transaction")
	}

	var id int64
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "failed to look up customer")
	}
	return id, true, nil
}
