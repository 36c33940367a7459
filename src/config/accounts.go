package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/username/dbimport/src/importer"
	"github.com/username/dbimport/src/models"
)

// accountEntry mirrors one element of the accounts file.
type accountEntry struct {
	Branch           string `mapstructure:"branch"`
	Number           string `mapstructure:"number"`
	TargetAccount    string `mapstructure:"target_account"`
	Currency         string `mapstructure:"currency"`
	FileEncoding     string `mapstructure:"file_encoding"`
	BalancingAccount string `mapstructure:"balancing_account"`
}

// LoadAccounts reads the ordered list of account configurations from a YAML
// file:
//
//	accounts:
//	  - branch: "100"
//	    number: "1234567"
//	    target_account: Assets:DB:Current
//	    currency: EUR
//	    file_encoding: iso-8859-1
//	    balancing_account: Expenses:Uncategorized
//
// Every entry is validated up front so a bad config fails at load time, not
// halfway through an import.
func LoadAccounts(path string) ([]models.AccountConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read accounts file %s: %w", path, err)
	}

	var raw struct {
		Accounts []accountEntry `mapstructure:"accounts"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode accounts file %s: %w", path, err)
	}
	if len(raw.Accounts) == 0 {
		return nil, fmt.Errorf("accounts file %s configures no accounts", path)
	}

	seen := make(map[models.AccountIdentity]bool, len(raw.Accounts))
	configs := make([]models.AccountConfig, 0, len(raw.Accounts))
	for i, entry := range raw.Accounts {
		cfg, err := entry.toConfig()
		if err != nil {
			return nil, fmt.Errorf("accounts file %s, entry %d: %w", path, i+1, err)
		}
		if seen[cfg.Identity] {
			return nil, fmt.Errorf("accounts file %s, entry %d: duplicate identity %s", path, i+1, cfg.Identity)
		}
		seen[cfg.Identity] = true
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (e accountEntry) toConfig() (models.AccountConfig, error) {
	if e.Branch == "" {
		return models.AccountConfig{}, fmt.Errorf("branch is required")
	}
	if e.Number == "" {
		return models.AccountConfig{}, fmt.Errorf("number is required")
	}
	if e.TargetAccount == "" {
		return models.AccountConfig{}, fmt.Errorf("target_account is required")
	}
	if e.Currency == "" {
		return models.AccountConfig{}, fmt.Errorf("currency is required")
	}
	if !importer.SupportedEncoding(e.FileEncoding) {
		return models.AccountConfig{}, fmt.Errorf("unsupported file_encoding %q", e.FileEncoding)
	}

	return models.AccountConfig{
		Identity: models.AccountIdentity{
			Branch: e.Branch,
			Number: e.Number,
		},
		TargetAccount:    e.TargetAccount,
		Currency:         e.Currency,
		FileEncoding:     e.FileEncoding,
		BalancingAccount: e.BalancingAccount,
	}, nil
}
