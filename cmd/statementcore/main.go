// Command statementcore runs the financial-statement reconstruction
// pipeline over a single PDF and prints the standardized result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/eurostatements/statementcore/internal/common"
)

var (
	configFile string
	config     *common.Config
	logger     arbor.ILogger
)

var rootCmd = &cobra.Command{
	Use:   "statementcore",
	Short: "Reconstruct canonical financial statements from issuer PDFs",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := common.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		config = loaded
		logger = common.SetupLogger(config)
		if cmd.Name() != "version" {
			common.PrintBanner(config, logger)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a TOML config file (defaults built in if omitted)")
	rootCmd.AddCommand(processCmd, versionCmd)
}

func main() {
	defer common.Stop()

	if err := rootCmd.Execute(); err != nil {
		common.PrintError(err.Error())
		os.Exit(1)
	}
}
