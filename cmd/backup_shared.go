package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// backupTablesFromConfig reads a table selection from viper. Values may be
// repeated flags or one comma-separated string ("user_brains,game_configs").
func backupTablesFromConfig(key string) []string {
	return splitBackupTables(viper.GetStringSlice(key))
}

func splitBackupTables(values []string) []string {
	var tables []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name != "" {
				tables = append(tables, name)
			}
		}
	}
	return tables
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}
