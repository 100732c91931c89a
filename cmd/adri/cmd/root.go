package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	output  string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adri",
	Short: "ADRI - Agent Data Readiness Index",
	Long: `ADRI guards agent and pipeline entry points against poor-quality
tabular data.

This tool allows you to:
- Assess a dataset against a quality standard
- Generate a standard from a training dataset
- Inspect bundled and project standards
- View the append-only audit trail`,
	Version: "1.0.0",
}

// Execute adds all child commands and executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is auto-discovered ADRI/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(logsCmd)
}

// initConfig reads in environment variables that match; the ADRI
// config document itself is loaded per-command through pkg/config so
// the CLI and the library resolve identically.
func initConfig() {
	viper.SetEnvPrefix("ADRI")
	viper.AutomaticEnv()
}
