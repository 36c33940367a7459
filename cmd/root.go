package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/username/dbimport/src/config"
	"github.com/username/dbimport/src/logger"
	"github.com/username/dbimport/src/models"
)

var accountsFile string

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	rootCmd := &cobra.Command{
		Use:           "dbimport",
		Short:         "dbimport converts Deutsche Bank CSV exports into beancount ledger entries",
		Long:          `dbimport converts Deutsche Bank current account CSV exports into beancount ledger entries`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&accountsFile, "accounts", "a", "", "path to the accounts config file")

	rootCmd.AddCommand(NewImportCmd())
	rootCmd.AddCommand(NewIdentifyCmd())
	rootCmd.AddCommand(NewAccountsCmd())

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func loadAccounts() ([]models.AccountConfig, error) {
	path := accountsFile
	if path == "" {
		path = config.Cfg.AccountsPath
	}
	return config.LoadAccounts(path)
}
