package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/crm-import/pkg/configuration"
	"github.com/iota-uz/crm-import/pkg/logging"
)

type rootOptions struct {
	dataDir     string
	envFiles    []string
	logLevel    string
	dryRun      bool
	failOnError bool
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "crm-import",
		Short:         "Bulk-load CRM export files into MySQL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory holding data files (default: DATA_SOURCE_DIR or data_source)")
	flags.StringSliceVar(&opts.envFiles, "env-file", configuration.DefaultEnvFiles, "Env files to load when present")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: silent|error|warn|info|debug (default: LOG_LEVEL or info)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Normalize and resolve rows without inserting them")
	flags.BoolVar(&opts.failOnError, "fail-on-error", false, "Exit non-zero when the run fails")

	cmd.AddCommand(newOrganizationsCmd(opts))
	cmd.AddCommand(newCustomersCmd(opts))
	cmd.AddCommand(newAddressesCmd(opts))
	cmd.AddCommand(newOrdersCmd(opts))
	return cmd
}

func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run reports failures on stderr and returns exit status 0 unless
// --fail-on-error was given.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := execute(ctx, cmd)
	if err == nil {
		return exitOK
	}

	code := exitCode(err)
	logging.New(stderr, logrus.InfoLevel).WithField("exit_code", code).Errorf("err: %v", err)
	fmt.Fprintf(stderr, "%+v\n", err)
	if !opts.failOnError {
		return exitOK
	}
	return code
}

func execute(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = withCode(exitOther, errors.Errorf("panic: %v", r))
		}
	}()
	return cmd.ExecuteContext(ctx)
}
