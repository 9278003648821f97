package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newtron-network/reinv/pkg/cli"
	"github.com/newtron-network/reinv/pkg/export"
)

var serialsOutput string

var serialsCmd = &cobra.Command{
	Use:   "serials " + sessionArgs,
	Short: "List the serial number of the access point on each port",
	Long: `List the serial number of the access point on each port of the range.

The Ethernet MAC seen on each switch port is looked up in the controller
inventory. Every port in the range must have a MAC table entry.

Examples:
  reinv serials admin - netops - sw-lobby-01 1-24
  reinv serials admin - netops - sw-lobby-01 1-24 --output lobby-serials.csv`,
	Args: cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		creds, err := parseCredentials(args)
		if err != nil {
			return err
		}
		inv, err := newInventoryClient(creds)
		if err != nil {
			return err
		}

		// Reject a bad range before logging in to the switch.
		if _, err := newEngine(inv, nil, creds.switchHost, 0, 0).ValidateRange(creds.portRange); err != nil {
			return err
		}

		sess, reader, err := dialSwitch(ctx, creds)
		if err != nil {
			return err
		}
		defer sess.Close()

		engine := newEngine(inv, reader, creds.switchHost, 0, 0)
		records, err := engine.Serials(ctx, inv, creds.portRange)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		t := cli.NewTableTo(out, "PORT", "ETHERNET MAC", "SERIAL")
		for _, r := range records {
			t.Row(r.Port.String(), r.EthernetMAC, r.Serial)
		}
		t.Flush()

		if serialsOutput != "" {
			path, err := export.WriteSerials(serialsOutput, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s %s\n", cli.Green("Wrote"), path)
		}
		return nil
	},
}

func init() {
	serialsCmd.Flags().StringVar(&serialsOutput, "output", "", "Also write the table as CSV to this file")
}
