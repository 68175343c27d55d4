package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/pkg/datasource"
	"github.com/iota-uz/crm-import/pkg/logging"
)

type customerLookup struct {
	resolver domain.CustomerResolver
	idField  int
}

func newCustomerLookup(resolver domain.CustomerResolver, opts Options) customerLookup {
	l := customerLookup{resolver: resolver, idField: -1}
	if opts.MatchByID {
		l.idField = opts.CustomerIDField
	}
	return l
}

// candidate returns the customer reference for rec: the configured id field
// when matching by id, otherwise whatever byName extracts.
func (l customerLookup) candidate(rec datasource.Record, byName func(datasource.Record) (string, error)) (string, error) {
	if l.idField >= 0 {
		return fieldText(rec, l.idField)
	}
	return byName(rec)
}

func (l customerLookup) resolve(ctx context.Context, candidate string, index, total int) (int64, bool, error) {
	logging.FromContext(ctx).Infof("customer_name %d/%d: %s", index+1, total, candidate)

	id, found, err := l.resolver.Resolve(ctx, candidate)
	if err != nil {
		return 0, false, errors.Wrapf(err, "resolve customer %q", candidate)
	}
	if !found {
		logging.FromContext(ctx).WithField("candidate", candidate).Debug("customer not found, record skipped")
	}
	return id, found, nil
}
