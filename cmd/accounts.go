package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the configured accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts()
		},
	}
}

func runAccounts() error {
	accounts, err := loadAccounts()
	if err != nil {
		return err
	}

	tableData := pterm.TableData{
		{"Branch", "Number", "Target account", "Currency", "Encoding", "Balancing account"},
	}
	for _, cfg := range accounts {
		tableData = append(tableData, []string{
			cfg.Identity.Branch,
			cfg.Identity.Number,
			cfg.TargetAccount,
			cfg.Currency,
			cfg.FileEncoding,
			cfg.BalancingAccount,
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
