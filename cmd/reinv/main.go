// Reinv - Access Point Replacement Inventory Tool
//
// Pairs the access points being taken out of service with the units cabled
// in their place, using the wireless controller inventory and the static MAC
// address table of the access switch, and writes the pairing as a CSV file
// for the controller's bulk import.
//
// Usage:
//
//	reinv swap <inv-user> <inv-pass> <switch-user> <switch-pass> <switch> <ports> [-f hostnames.txt]
//	reinv serials <inv-user> <inv-pass> <switch-user> <switch-pass> <switch> <ports>
//	reinv settings show|get|set|clear
//
// Hostnames are read one per line from -f or stdin, in the order the
// replacement units are cabled. A password argument of "-" prompts on the
// terminal.
//
// Examples:
//
//	reinv swap admin - netops - sw-lobby-01 1-8,11 -f lobby.txt
//	reinv serials admin - netops - sw-lobby-01 1-24 --output lobby-serials.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/newtron-network/reinv/pkg/settings"
	"github.com/newtron-network/reinv/pkg/util"
	"github.com/newtron-network/reinv/pkg/version"
)

var (
	// Global option flags
	verbose      bool
	logJSON      bool
	settingsPath string

	// Global state
	userSettings *settings.Settings
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "reinv",
	Short:             "Access point replacement inventory tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Reinv pairs retired access points with their replacements.

The old units are resolved by hostname in the controller inventory; the new
units are found through the static MAC entries on the access switch ports.
The i-th hostname is paired with the unit on the i-th port of the range.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set log level: quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}
		if logJSON {
			util.SetJSONFormat()
		}

		if settingsPath == "" {
			settingsPath = settings.DefaultSettingsPath()
		}
		var err error
		userSettings, err = settings.LoadFrom(settingsPath)
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file (default ~/.reinv/settings.yaml)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "inventory", Title: "Inventory Operations:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{swapCmd, serialsCmd} {
		cmd.GroupID = "inventory"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{settingsCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Fprintln(cmd.OutOrStdout(), "reinv dev build")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "reinv %s\n", version.Info())
		}
	},
}
