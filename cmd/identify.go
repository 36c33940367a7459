package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/username/dbimport/src/importer"
)

func NewIdentifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify <file>",
		Short: "Show which configured account claims a statement file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentify(args[0])
		},
	}
}

func runIdentify(path string) error {
	accounts, err := loadAccounts()
	if err != nil {
		return err
	}

	for _, cfg := range accounts {
		ok, err := importer.New(cfg).Identify(path)
		if err != nil {
			return err
		}
		if ok {
			pterm.Success.Printfln("%s belongs to %s (customer number %s)", path, cfg.TargetAccount, cfg.Identity)
			return nil
		}
	}

	pterm.Warning.Printfln("no configured account claims %s", path)
	return nil
}
