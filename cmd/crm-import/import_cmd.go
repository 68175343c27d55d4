package main

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iota-uz/crm-import/modules/crm/domain"
	"github.com/iota-uz/crm-import/modules/crm/infrastructure/persistence"
	"github.com/iota-uz/crm-import/modules/crm/services"
	"github.com/iota-uz/crm-import/pkg/composables"
	"github.com/iota-uz/crm-import/pkg/configuration"
	"github.com/iota-uz/crm-import/pkg/datasource"
	"github.com/iota-uz/crm-import/pkg/logging"
)

const (
	matchByName = "name"
	matchByID   = "id"
)

type importOptions struct {
	dataFile        string
	matchBy         string
	customerIDField int
	parseAmounts    bool
}

type importerFactory func(writer domain.BulkInserter, resolver domain.CustomerResolver, opts services.Options) services.Importer

type importerDef struct {
	use   string
	short string
	// needsCustomers adds the customer matching flags and a resolver.
	needsCustomers bool
	amounts        bool
	factory        importerFactory
}

func newOrganizationsCmd(root *rootOptions) *cobra.Command {
	return newImportCmd(root, importerDef{
		use:   "organizations",
		short: "Import organizations from a JSON array of objects",
		factory: func(w domain.BulkInserter, _ domain.CustomerResolver, o services.Options) services.Importer {
			return services.NewOrganizationImporter(w, o)
		},
	})
}

func newCustomersCmd(root *rootOptions) *cobra.Command {
	return newImportCmd(root, importerDef{
		use:   "customers",
		short: "Import customers from the customer export",
		factory: func(w domain.BulkInserter, _ domain.CustomerResolver, o services.Options) services.Importer {
			return services.NewCustomerImporter(w, o)
		},
	})
}

func newAddressesCmd(root *rootOptions) *cobra.Command {
	return newImportCmd(root, importerDef{
		use:            "addresses",
		short:          "Import customer addresses, matched to existing customers",
		needsCustomers: true,
		factory: func(w domain.BulkInserter, r domain.CustomerResolver, o services.Options) services.Importer {
			return services.NewAddressImporter(w, r, o)
		},
	})
}

func newOrdersCmd(root *rootOptions) *cobra.Command {
	return newImportCmd(root, importerDef{
		use:            "orders",
		short:          "Import orders and their invoices, matched to existing customers",
		needsCustomers: true,
		amounts:        true,
		factory: func(w domain.BulkInserter, r domain.CustomerResolver, o services.Options) services.Importer {
			return services.NewOrderImporter(w, r, o)
		},
	})
}

func newImportCmd(root *rootOptions, def importerDef) *cobra.Command {
	opts := importOptions{matchBy: matchByName, customerIDField: -1}

	cmd := &cobra.Command{
		Use:   def.use,
		Short: def.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, root, opts, def)
		},
	}

	cmd.Flags().StringVar(&opts.dataFile, "data-file", "", "JSON or CSV file under the data directory (required)")
	_ = cmd.MarkFlagRequired("data-file")
	if def.needsCustomers {
		cmd.Flags().StringVar(&opts.matchBy, "match-by", matchByName, "Customer matching: name|id")
		cmd.Flags().IntVar(&opts.customerIDField, "customer-id-field", -1, "Zero-based field holding pk_customer_id (with --match-by=id)")
	}
	if def.amounts {
		cmd.Flags().BoolVar(&opts.parseAmounts, "parse-amounts", false, "Parse numeric text amounts instead of importing them as 0")
	}

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		opts.matchBy = strings.ToLower(strings.TrimSpace(opts.matchBy))
		switch opts.matchBy {
		case matchByName:
			opts.customerIDField = -1
		case matchByID:
			if opts.customerIDField < 0 {
				return withCode(exitUsage, errors.New("--match-by=id requires --customer-id-field"))
			}
		default:
			return withCode(exitUsage, errors.Errorf("invalid --match-by: %s", opts.matchBy))
		}
		return nil
	}

	return cmd
}

func runImport(cmd *cobra.Command, root *rootOptions, opts importOptions, def importerDef) error {
	ctx := cmd.Context()

	cfg, err := configuration.Load(root.envFiles)
	if err != nil {
		return withCode(exitValidation, err)
	}
	if root.logLevel != "" {
		if err := cfg.SetLogLevel(root.logLevel); err != nil {
			return withCode(exitUsage, err)
		}
	}
	dataDir := root.dataDir
	if dataDir == "" {
		dataDir = cfg.DataSourceDir
	}

	runID := uuid.New()
	log := cfg.Logger().WithField("run_id", runID.String())
	ctx = logging.WithLogger(ctx, log)

	src, err := datasource.LocateFromWorkingDir(dataDir, opts.dataFile)
	if err != nil {
		return withCode(exitOther, errors.Wrap(err, "working directory"))
	}

	svcOpts := services.DefaultOptions()
	svcOpts.DryRun = root.dryRun
	svcOpts.ParseAmounts = opts.parseAmounts
	svcOpts.MatchByID = opts.matchBy == matchByID
	svcOpts.CustomerIDField = opts.customerIDField

	var resolver domain.CustomerResolver
	if def.needsCustomers {
		resolver = newResolver(opts.matchBy)
	}

	if !root.dryRun || def.needsCustomers {
		db, err := persistence.Connect(ctx, cfg.Database.ConnectionString())
		if err != nil {
			return withCode(exitDB, err)
		}
		defer closeDB(ctx, db)
		ctx = composables.WithDB(ctx, db)
	}

	imp := def.factory(writeClassifier{persistence.NewBulkWriter()}, classifyResolver(resolver), svcOpts)
	summary, err := services.NewRunner().Run(ctx, imp, src)
	if err != nil {
		if _, ok := classified(err); ok {
			return err
		}
		return withCode(exitValidation, err)
	}

	status := "applied"
	if root.dryRun {
		status = "dry_run"
	}
	return writeJSONLine(cmd.OutOrStdout(), importSummary{Status: status, RunID: runID.String(), Summary: summary})
}

func newResolver(matchBy string) domain.CustomerResolver {
	if matchBy == matchByID {
		return persistence.NewIDResolver()
	}
	return persistence.NewNameResolver()
}

func closeDB(ctx context.Context, db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("close database")
	}
}

// writeClassifier and resolverClassifier tag database failures with the exit
// code they map to under --fail-on-error.
type writeClassifier struct {
	domain.BulkInserter
}

func (w writeClassifier) Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	n, err := w.BulkInserter.Insert(ctx, table, columns, rows)
	return n, withCode(exitDBWrite, err)
}

type resolverClassifier struct {
	domain.CustomerResolver
}

func classifyResolver(r domain.CustomerResolver) domain.CustomerResolver {
	if r == nil {
		return nil
	}
	return resolverClassifier{r}
}

func (r resolverClassifier) Resolve(ctx context.Context, candidate string) (int64, bool, error) {
	id, found, err := r.CustomerResolver.Resolve(ctx, candidate)
	return id, found, withCode(exitDB, err)
}
