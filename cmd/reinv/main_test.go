package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/reinv/pkg/inventory"
	"github.com/newtron-network/reinv/pkg/model"
	"github.com/newtron-network/reinv/pkg/reconcile"
	"github.com/newtron-network/reinv/pkg/util"
)

// execute runs the root command with args against a throwaway settings file.
func execute(t *testing.T, settingsFile, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--settings", settingsFile}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		settingsPath = ""
		swapInput = ""
		swapOutputDir = ""
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReadHostnames(t *testing.T) {
	names, err := readHostnames("", strings.NewReader("Lobby-AP1\r\n\n Lobby-AP2 \nLobby-AP3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Lobby-AP1", "Lobby-AP2", "Lobby-AP3"}, names)

	path := filepath.Join(t.TempDir(), "hosts.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hall-AP7\nHall-AP8\n"), 0644))
	names, err = readHostnames(path, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hall-AP7", "Hall-AP8"}, names)

	_, err = readHostnames(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

func TestParseCredentials(t *testing.T) {
	c, err := parseCredentials([]string{"kalle1", "anka2", "netops", "s3cret", "sw-lobby-01", "1-8"})
	require.NoError(t, err)
	assert.Equal(t, "anka2", c.invPass)
	assert.Equal(t, "s3cret", c.switchPass)
	assert.Equal(t, "sw-lobby-01", c.switchHost)
	assert.Equal(t, "1-8", c.portRange)

	_, err = parseCredentials([]string{"kalle1"})
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"range", util.NewPortRangeError(util.ErrNonNumericBound, "x-3", ""), "Check the port range"},
		{"count", &util.CountMismatchError{Hostnames: 2, Ports: 3}, "hostname list"},
		{"bindings", fmt.Errorf("%w (Gi1/0/1)", util.ErrNoPortBindings), "no static MAC entries"},
		{"not found", &util.NotFoundError{Resource: "AP name", Key: "Lobby-AP1"}, "does not know"},
		{"auth", inventory.StatusError(401, "https://prime/x"), "username and password"},
		{"switch", util.NewSwitchSessionError("sw1", "dial", errors.New("refused")), "switch address"},
		{"interrupted", fmt.Errorf("resolving: %w", context.Canceled), "interrupted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.True(t, strings.HasPrefix(got, "Error: "), got)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestSettingsCommands(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.yaml")

	_, err := execute(t, file, "", "settings", "set", "max_ports", "24")
	require.NoError(t, err)

	out, err := execute(t, file, "", "settings", "get", "max_ports")
	require.NoError(t, err)
	assert.Equal(t, "24\n", out)

	out, err = execute(t, file, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "max_ports")
	assert.Contains(t, out, "(not set)")

	_, err = execute(t, file, "", "settings", "set", "max_ports", "many")
	assert.Error(t, err)

	_, err = execute(t, file, "", "settings", "clear")
	require.NoError(t, err)
	out, err = execute(t, file, "", "settings", "get", "max_ports")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestSwapRejectsCountMismatchOffline(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.yaml")
	outDir := t.TempDir()
	_, err := execute(t, file, "", "settings", "set", "inventory_url", "https://prime.invalid/webacs/api/v3/data/")
	require.NoError(t, err)

	// The switch address is unroutable; reaching the dial would fail with
	// a session error instead.
	_, err = execute(t, file, "Lobby-AP1\nLobby-AP2\n",
		"swap", "kalle1", "anka2", "netops", "s3cret", "192.0.2.1", "1-3", "--output-dir", outDir)
	require.Error(t, err)

	var mismatch *util.CountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Hostnames)
	assert.Equal(t, 3, mismatch.Ports)
	assertEmptyDir(t, outDir)
}

func TestSerialsRejectsBadRangeOffline(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.yaml")
	_, err := execute(t, file, "", "settings", "set", "inventory_url", "https://prime.invalid/webacs/api/v3/data/")
	require.NoError(t, err)

	_, err = execute(t, file, "",
		"serials", "kalle1", "anka2", "netops", "s3cret", "192.0.2.1", "1-x")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrNonNumericBound)
	assert.NotErrorIs(t, err, util.ErrSwitchSession)
}

// stubInventory answers every query with one record derived from the key.
type stubInventory struct{}

func (stubInventory) RadiosByName(_ context.Context, name string) ([]model.InventoryRecord, error) {
	return []model.InventoryRecord{{Hostname: name, RadioMAC: "00:3a:7d:00:00:10"}}, nil
}

func (stubInventory) RadiosByEthernet(_ context.Context, mac string) ([]model.InventoryRecord, error) {
	return []model.InventoryRecord{{Hostname: "AP" + mac, RadioMAC: "f4:db:e6:aa:00:10"}}, nil
}

// stubSwitch returns a fixed static MAC table.
type stubSwitch struct {
	bindings []model.PortBinding
}

func (s stubSwitch) StaticBindings(context.Context) ([]model.PortBinding, error) {
	return s.bindings, nil
}

func (s stubSwitch) InterfaceMAC(context.Context, model.PortID) (string, error) {
	return "", errors.New("not used")
}

func TestRunSwap(t *testing.T) {
	outDir := t.TempDir()
	engine := reconcile.NewEngine(reconcile.Config{
		Inventory: stubInventory{},
		Switch:    stubSwitch{bindings: []model.PortBinding{{MAC: "7079.b3fd.0960", Port: "Gi1/0/1"}}},
	})
	req := reconcile.Request{Hostnames: []string{"Lobby-AP1"}, PortRange: "1"}

	var out bytes.Buffer
	require.NoError(t, runSwap(context.Background(), &out, engine, req, outDir, false))
	assert.Contains(t, out.String(), "Lobby-AP1")

	data, err := os.ReadFile(filepath.Join(outDir, "Lobby-AP.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Lobby-AP1,00:3a:7d:00:00:10,Lobby-AP1,f4:db:e6:aa:00:10\n", string(data))
}

func TestRunSwap_DryRunWritesNothing(t *testing.T) {
	outDir := t.TempDir()
	engine := reconcile.NewEngine(reconcile.Config{
		Inventory: stubInventory{},
		Switch:    stubSwitch{bindings: []model.PortBinding{{MAC: "7079.b3fd.0960", Port: "Gi1/0/1"}}},
	})
	req := reconcile.Request{Hostnames: []string{"Lobby-AP1"}, PortRange: "1"}

	var out bytes.Buffer
	require.NoError(t, runSwap(context.Background(), &out, engine, req, outDir, true))
	assert.Contains(t, out.String(), "DRY-RUN")
	assertEmptyDir(t, outDir)
}

func TestRunSwap_EmptyTableWritesNothing(t *testing.T) {
	outDir := t.TempDir()
	engine := reconcile.NewEngine(reconcile.Config{Inventory: stubInventory{}, Switch: stubSwitch{}})
	req := reconcile.Request{Hostnames: []string{"Lobby-AP1", "Lobby-AP2"}, PortRange: "1-2"}

	var out bytes.Buffer
	err := runSwap(context.Background(), &out, engine, req, outDir, false)
	assert.ErrorIs(t, err, util.ErrNoPortBindings)
	assert.Empty(t, out.String())
	assertEmptyDir(t, outDir)
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "expected no files in %s", dir)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "settings.yaml"), "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "reinv "), out)
}
