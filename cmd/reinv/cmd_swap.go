package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/reinv/pkg/cli"
	"github.com/newtron-network/reinv/pkg/export"
	"github.com/newtron-network/reinv/pkg/reconcile"
)

var (
	swapInput     string
	swapOutputDir string
	swapDelay     time.Duration
	swapMaxPorts  int
	swapDryRun    bool
)

var swapCmd = &cobra.Command{
	Use:   "swap " + sessionArgs,
	Short: "Pair retired access points with their replacements",
	Long: `Pair retired access points with their replacements and write the
controller import file.

Hostnames of the retired units are read one per line from --input (or stdin)
in the order their replacements are cabled on the port range. The result is
written to <site>.csv in the output directory, where <site> is the first
hostname without its digits.

Examples:
  reinv swap admin - netops - sw-lobby-01 1-8 -f lobby.txt
  pbpaste | reinv swap admin - netops - 10.20.0.5 1-4,9 --dry-run`,
	Args: cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		hostnames, err := readHostnames(swapInput, cmd.InOrStdin())
		if err != nil {
			return err
		}
		creds, err := parseCredentials(args)
		if err != nil {
			return err
		}
		inv, err := newInventoryClient(creds)
		if err != nil {
			return err
		}

		req := reconcile.Request{Hostnames: hostnames, PortRange: creds.portRange}

		// Reject a bad range or hostname count before logging in anywhere.
		if _, err := newEngine(inv, nil, creds.switchHost, swapDelay, swapMaxPorts).Validate(req); err != nil {
			return err
		}

		sess, reader, err := dialSwitch(ctx, creds)
		if err != nil {
			return err
		}
		defer sess.Close()

		engine := newEngine(inv, reader, creds.switchHost, swapDelay, swapMaxPorts)
		outputDir := swapOutputDir
		if outputDir == "" {
			outputDir = userSettings.GetOutputDir()
		}
		return runSwap(ctx, cmd.OutOrStdout(), engine, req, outputDir, swapDryRun)
	},
}

// runSwap runs the reconciliation, prints the pairing and, unless dryRun,
// writes it to <site>.csv in outputDir. Nothing is written when the run fails.
func runSwap(ctx context.Context, out io.Writer, engine *reconcile.Engine, req reconcile.Request, outputDir string, dryRun bool) error {
	res, err := engine.Run(ctx, req)
	if err != nil {
		return err
	}

	t := cli.NewTableTo(out, "HOSTNAME", "OLD RADIO MAC", "NEW RADIO MAC", "PORT")
	for _, r := range res.Records {
		t.Row(r.Hostname, r.OldRadioMAC, r.NewRadioMAC, r.Port.String())
	}
	t.Flush()

	if len(res.Records) < len(req.Hostnames) {
		fmt.Fprintln(out, cli.Yellow(fmt.Sprintf("\n%d of %d hostnames paired", len(res.Records), len(req.Hostnames))))
	}

	if dryRun {
		fmt.Fprintln(out, "\n"+cli.Yellow("DRY-RUN: no file written."))
		return nil
	}

	path, err := export.WriteRecords(filepath.Join(outputDir, export.SiteFileName(req.Hostnames)), res.Records)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s %s\n", cli.Green("Wrote"), path)
	return nil
}

func init() {
	swapCmd.Flags().StringVarP(&swapInput, "input", "f", "", "Hostname file, one per line (default stdin)")
	swapCmd.Flags().StringVarP(&swapOutputDir, "output-dir", "o", "", "Directory for the CSV file (default from settings, else .)")
	swapCmd.Flags().DurationVar(&swapDelay, "delay", 0, "Minimum spacing between inventory queries (default from settings, else 300ms)")
	swapCmd.Flags().IntVar(&swapMaxPorts, "max-ports", 0, "Physical port count of the switch (default from settings, else 48)")
	swapCmd.Flags().BoolVar(&swapDryRun, "dry-run", false, "Print the pairing without writing the CSV file")
}
