package commands

import (
	"github.com/ppiankov/tenantspectre/internal/config"
	"github.com/ppiankov/tenantspectre/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	version string
	commit  string
	date    string
	cfg     config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "tenantspectre",
	Short: "TenantSpectre - Microsoft cloud tenant reconnaissance",
	Long: `TenantSpectre maps the externally visible Microsoft cloud footprint of a
domain without authentication: tenant identity, federation setup, DNS
indicators, and per-service presence across M365 and Azure hosting.

Part of the Spectre family of infrastructure auditing tools.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		// A malformed config file is remembered here and turned into a
		// fatal error once a scan is requested; help and version must
		// still work.
		cfg, cfgErr = config.Load(".")
	},
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

// GetVersion returns the current version.
func GetVersion() string {
	return version
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}
