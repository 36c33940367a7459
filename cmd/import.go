package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/username/dbimport/src/config"
	"github.com/username/dbimport/src/importer"
	"github.com/username/dbimport/src/ledger"
	"github.com/username/dbimport/src/logger"
	"github.com/username/dbimport/src/validation"
)

type importFlags struct {
	Output        string
	AssertBalance bool
}

type ImportCommandRunner struct {
	flags *importFlags
}

func NewImportCmd() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import statement files and print beancount entries",
		Long: `Import one or more statement files. Each file is probed against the
configured accounts and imported with the first one that claims it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ImportCommandRunner{flags: flags}
			return runner.Run(args)
		},
	}

	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "write entries to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.AssertBalance, "assert-balance", false, "emit a balance assertion from the statement's closing balance")

	return cmd
}

func (r *ImportCommandRunner) Run(paths []string) error {
	accounts, err := loadAccounts()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if r.flags.Output != "" {
		f, err := os.Create(r.flags.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", r.flags.Output, err)
		}
		defer f.Close()
		out = f
	}

	w := ledger.New()
	written := 0
	for _, path := range paths {
		if err := validation.ValidateStatementFile(path, config.Cfg.MaxFileSizeBytes); err != nil {
			return err
		}

		res, err := importer.ImportFirstMatch(accounts, path)
		if err != nil {
			return fmt.Errorf("import of %s failed: %w", path, err)
		}
		if !res.Matched {
			logger.L.Warn("No configured account claims statement file", "path", path)
			continue
		}

		if written > 0 {
			fmt.Fprintln(out)
		}
		if err := w.Write(out, res.Entries); err != nil {
			return fmt.Errorf("failed to write entries for %s: %w", path, err)
		}
		if r.flags.AssertBalance {
			fmt.Fprintln(out)
			// Beancount asserts at start of day, so date the assertion the
			// day after the statement period ends.
			assertDate := res.Period.To.AddDate(0, 0, 1)
			if err := w.WriteBalance(out, assertDate, res.Config.TargetAccount, res.ClosingBalance, res.Config.Currency); err != nil {
				return fmt.Errorf("failed to write balance assertion for %s: %w", path, err)
			}
		}
		written += len(res.Entries)

		logger.L.Info("Statement file imported",
			"path", path, "entries", len(res.Entries), "runID", res.RunID)
	}
	return nil
}
