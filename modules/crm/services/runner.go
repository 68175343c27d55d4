package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/crm-import/pkg/datasource"
	"github.com/iota-uz/crm-import/pkg/logging"
)

// Runner drives one import: locate, parse, normalize, write.
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// Run never fails on a missing file or an unsupported extension; the import
// proceeds with no records and writes nothing.
func (r *Runner) Run(ctx context.Context, imp Importer, src datasource.Source) (Summary, error) {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"importer": imp.Name(),
		"file":     src.Path,
	})
	ctx = logging.WithLogger(ctx, log)

	switch {
	case !src.Exists:
		log.Warn("data file not found, importing nothing")
	case src.Format == datasource.FormatUnknown:
		log.Warn("unsupported data file extension, importing nothing")
	default:
		if mime, ok, err := datasource.Sniff(src); err == nil && !ok {
			log.WithField("mime", mime).Warnf("content does not look like %s", src.Format)
		}
	}

	records, err := datasource.Read(src)
	if err != nil {
		return Summary{Importer: imp.Name(), Source: src.Path}, errors.Wrapf(err, "read %s", src.Name)
	}
	log.WithField("records", len(records)).Debug("data file parsed")

	summary, err := imp.Import(ctx, records)
	summary.Source = src.Path
	if err != nil {
		return summary, errors.Wrapf(err, "import %s", imp.Name())
	}
	return summary, nil
}
