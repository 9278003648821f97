// Package settings manages persistent user settings for the reinv CLI.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/reinv/pkg/inventory"
	"github.com/newtron-network/reinv/pkg/model"
	"github.com/newtron-network/reinv/pkg/switchport"
)

// Settings holds persistent user preferences
type Settings struct {
	Inventory InventorySettings `yaml:"inventory,omitempty"`
	Switch    SwitchSettings    `yaml:"switch,omitempty"`

	// OutputDir is where exported CSV files are written
	OutputDir string `yaml:"output_dir,omitempty"`
}

// InventorySettings configures the controller data API client
type InventorySettings struct {
	// BaseURL is the data API root, e.g. https://prime.example.net/webacs/api/v3/data/
	BaseURL string `yaml:"base_url,omitempty"`

	Trust inventory.TrustPolicy `yaml:"tls,omitempty"`

	// RequestDelay is the minimum spacing between inventory queries
	RequestDelay time.Duration `yaml:"request_delay,omitempty"`

	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// SwitchSettings configures the switch session and port geometry
type SwitchSettings struct {
	SSHPort        int           `yaml:"ssh_port,omitempty"`
	KnownHostsFile string        `yaml:"known_hosts,omitempty"`
	DialTimeout    time.Duration `yaml:"dial_timeout,omitempty"`

	// InterfacePrefix is prepended to port numbers, e.g. "Gi1/0/"
	InterfacePrefix string `yaml:"interface_prefix,omitempty"`

	// MaxPorts is the number of physical ports on the switch
	MaxPorts int `yaml:"max_ports,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "reinv_settings.yaml"
	}
	return filepath.Join(home, ".reinv", "settings.yaml")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path. The file may hold a CA path
// and URLs but never credentials; it is still created owner-only.
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}

// GetRequestDelay returns the inventory request spacing (with fallback)
func (s *Settings) GetRequestDelay() time.Duration {
	if s.Inventory.RequestDelay > 0 {
		return s.Inventory.RequestDelay
	}
	return inventory.DefaultRequestDelay
}

// GetTimeout returns the inventory request timeout (with fallback)
func (s *Settings) GetTimeout() time.Duration {
	if s.Inventory.Timeout > 0 {
		return s.Inventory.Timeout
	}
	return inventory.DefaultTimeout
}

// GetSSHPort returns the switch SSH port (with fallback)
func (s *Settings) GetSSHPort() int {
	if s.Switch.SSHPort > 0 {
		return s.Switch.SSHPort
	}
	return switchport.DefaultSSHPort
}

// GetDialTimeout returns the switch dial timeout (with fallback)
func (s *Settings) GetDialTimeout() time.Duration {
	if s.Switch.DialTimeout > 0 {
		return s.Switch.DialTimeout
	}
	return switchport.DefaultDialTimeout
}

// GetInterfacePrefix returns the interface prefix (with fallback)
func (s *Settings) GetInterfacePrefix() string {
	if s.Switch.InterfacePrefix != "" {
		return s.Switch.InterfacePrefix
	}
	return model.DefaultPortPrefix
}

// GetMaxPorts returns the physical port count (with fallback)
func (s *Settings) GetMaxPorts() int {
	if s.Switch.MaxPorts > 0 {
		return s.Switch.MaxPorts
	}
	return model.DefaultMaxPorts
}

// GetOutputDir returns the export directory (with fallback)
func (s *Settings) GetOutputDir() string {
	if s.OutputDir != "" {
		return s.OutputDir
	}
	return "."
}

// Keys lists the names accepted by Get and Set.
var Keys = []string{
	"inventory_url", "ca_file", "insecure_skip_verify", "request_delay", "timeout",
	"ssh_port", "known_hosts", "dial_timeout", "interface_prefix", "max_ports", "output_dir",
}

// Get returns the configured value of a setting, or "" if unset.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "inventory_url":
		return s.Inventory.BaseURL, nil
	case "ca_file":
		return s.Inventory.Trust.CAFile, nil
	case "insecure_skip_verify":
		return strconv.FormatBool(s.Inventory.Trust.InsecureSkipVerify), nil
	case "request_delay":
		return durationString(s.Inventory.RequestDelay), nil
	case "timeout":
		return durationString(s.Inventory.Timeout), nil
	case "ssh_port":
		return intString(s.Switch.SSHPort), nil
	case "known_hosts":
		return s.Switch.KnownHostsFile, nil
	case "dial_timeout":
		return durationString(s.Switch.DialTimeout), nil
	case "interface_prefix":
		return s.Switch.InterfacePrefix, nil
	case "max_ports":
		return intString(s.Switch.MaxPorts), nil
	case "output_dir":
		return s.OutputDir, nil
	}
	return "", fmt.Errorf("unknown setting: %s", key)
}

// Set parses and stores a setting value.
func (s *Settings) Set(key, value string) error {
	var err error
	switch key {
	case "inventory_url":
		s.Inventory.BaseURL = value
	case "ca_file":
		s.Inventory.Trust.CAFile = value
	case "insecure_skip_verify":
		s.Inventory.Trust.InsecureSkipVerify, err = strconv.ParseBool(value)
	case "request_delay":
		s.Inventory.RequestDelay, err = time.ParseDuration(value)
	case "timeout":
		s.Inventory.Timeout, err = time.ParseDuration(value)
	case "ssh_port":
		s.Switch.SSHPort, err = strconv.Atoi(value)
	case "known_hosts":
		s.Switch.KnownHostsFile = value
	case "dial_timeout":
		s.Switch.DialTimeout, err = time.ParseDuration(value)
	case "interface_prefix":
		s.Switch.InterfacePrefix = value
	case "max_ports":
		s.Switch.MaxPorts, err = strconv.Atoi(value)
	case "output_dir":
		s.OutputDir = value
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

func durationString(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
