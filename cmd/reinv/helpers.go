package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/newtron-network/reinv/pkg/inventory"
	"github.com/newtron-network/reinv/pkg/reconcile"
	"github.com/newtron-network/reinv/pkg/switchport"
	"github.com/newtron-network/reinv/pkg/util"
)

// sessionArgs is the positional argument list shared by swap and serials.
const sessionArgs = "<inv-user> <inv-pass> <switch-user> <switch-pass> <switch> <ports>"

// credentials holds the positional arguments of swap and serials.
type credentials struct {
	invUser    string
	invPass    string
	switchUser string
	switchPass string
	switchHost string
	portRange  string
}

func parseCredentials(args []string) (*credentials, error) {
	if len(args) != 6 {
		return nil, fmt.Errorf("expected 6 arguments (%s), got %d", sessionArgs, len(args))
	}
	c := &credentials{
		invUser:    args[0],
		invPass:    args[1],
		switchUser: args[2],
		switchPass: args[3],
		switchHost: args[4],
		portRange:  args[5],
	}
	var err error
	if c.invPass, err = promptIfDash(c.invPass, "Inventory password for "+c.invUser); err != nil {
		return nil, err
	}
	if c.switchPass, err = promptIfDash(c.switchPass, "Switch password for "+c.switchUser); err != nil {
		return nil, err
	}
	return c, nil
}

// promptIfDash returns value unchanged unless it is "-", in which case the
// password is read from the terminal without echo.
func promptIfDash(value, prompt string) (string, error) {
	if value != "-" {
		return value, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%s: stdin is not a terminal", prompt)
	}
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// readHostnames reads newline-delimited hostnames from path, or from stdin
// when path is "" or "-".
func readHostnames(path string, stdin io.Reader) ([]string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading hostnames: %w", err)
	}
	names := util.SplitLines(string(data))
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names, nil
}

// newInventoryClient builds the inventory client from settings and
// credentials.
func newInventoryClient(c *credentials) (*inventory.Client, error) {
	return inventory.NewClient(inventory.Config{
		BaseURL:  userSettings.Inventory.BaseURL,
		Username: c.invUser,
		Password: c.invPass,
		Trust:    userSettings.Inventory.Trust,
		Timeout:  userSettings.GetTimeout(),
	})
}

// dialSwitch opens the switch session and wraps it in a table reader.
func dialSwitch(ctx context.Context, c *credentials) (*switchport.SSHSession, *switchport.Reader, error) {
	sess, err := switchport.Dial(ctx, switchport.SSHConfig{
		Host:           c.switchHost,
		Port:           userSettings.GetSSHPort(),
		Username:       c.switchUser,
		Password:       c.switchPass,
		KnownHostsFile: userSettings.Switch.KnownHostsFile,
		DialTimeout:    userSettings.GetDialTimeout(),
	})
	if err != nil {
		return nil, nil, err
	}
	return sess, switchport.NewReader(sess, c.switchHost), nil
}

// newEngine builds a reconciliation engine. delay and maxPorts override the
// settings when non-zero.
func newEngine(inv reconcile.Lookup, sw reconcile.PortTable, host string, delay time.Duration, maxPorts int) *reconcile.Engine {
	if delay <= 0 {
		delay = userSettings.GetRequestDelay()
	}
	if maxPorts <= 0 {
		maxPorts = userSettings.GetMaxPorts()
	}
	return reconcile.NewEngine(reconcile.Config{
		Inventory:  inv,
		Switch:     sw,
		Throttle:   inventory.NewIntervalThrottle(delay),
		SwitchName: host,
		PortPrefix: userSettings.GetInterfacePrefix(),
		MaxPorts:   maxPorts,
	})
}

// errorMessage renders a fatal error with a hint for its family.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Error: interrupted"
	case errors.Is(err, util.ErrInputValidation):
		return "Error: " + err.Error() + "\nCheck the port range and the hostname list."
	case errors.Is(err, util.ErrNoPortBindings):
		return "Error: " + err.Error() + "\nThe switch has no static MAC entries on those ports."
	case errors.Is(err, util.ErrNotFoundInInventory):
		return "Error: " + err.Error() + "\nThe controller does not know this access point."
	case errors.Is(err, inventory.ErrUnauthorized), errors.Is(err, inventory.ErrForbidden):
		return "Error: " + err.Error() + "\nCheck the inventory username and password."
	case errors.Is(err, util.ErrSwitchSession):
		return "Error: " + err.Error() + "\nCheck the switch address and credentials."
	}
	return "Error: " + err.Error()
}
