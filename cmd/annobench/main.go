// Package main is the entry point for the annobench CLI
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/su1ph3r/annobench/pkg/types"
)

var (
	version = "0.3.0"
	cfgFile string
	config  *types.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "annobench",
	Short: "annobench - gene annotation benchmark tables",
	Long: `annobench turns per-run benchmark results of gene annotation tools
(AUGUSTUS, SNAP, GeneMark-ES/EP+/ETP, GeMoMa) and GeAnno exports into
normalized, averaged tables: per-hint comparisons, mutation-rate curves,
resource use and model comparisons.

Run metadata is decoded from the result file names, so the files must
follow the <tool>_<genus>_<epithet>_<mutrate>_<setting>_<time>_<ram>.csv
convention.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and validate annobench configuration settings`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		for k, v := range viper.AllSettings() {
			fmt.Printf("%s: %v\n", k, v)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(viper.Get(args[0]))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := types.ValidateConfig(config); err != nil {
			return err
		}
		printSuccess("Configuration is valid")
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.annobench.yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Add commands
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configValidateCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".annobench")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ANNOBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	readErr := viper.ReadInConfig()

	// Load config
	config = types.DefaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		log.Warn().Err(err).Msg("invalid configuration, using defaults")
		config = types.DefaultConfig()
	}

	if readErr == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("configuration loaded")
	} else if cfgFile != "" {
		log.Warn().Str("file", cfgFile).Err(readErr).Msg("failed to read config file")
	}
}

// setupLogging applies --verbose and --no-color to the logger and the
// print helpers
func setupLogging(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	if !config.Output.Color {
		noColor = true
	}
	if noColor {
		color.NoColor = true
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		config.Output.Verbose = true
	}

	level := zerolog.WarnLevel
	if config.Output.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor})
	return nil
}

// Printing functions

func printInfo(format string, args ...interface{}) {
	color.Cyan("[*] "+format, args...)
}

func printSuccess(format string, args ...interface{}) {
	color.Green("[+] "+format, args...)
}

func printWarning(format string, args ...interface{}) {
	color.Yellow("[!] "+format, args...)
}

func printError(format string, args ...interface{}) {
	color.Red("[-] "+format, args...)
}
