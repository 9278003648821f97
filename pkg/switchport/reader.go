package switchport

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/newtron-network/reinv/pkg/model"
	"github.com/newtron-network/reinv/pkg/util"
)

const (
	staticTableCommand    = "show mac address-table | include STATIC"
	interfaceTableCommand = "show mac address-table interface %s"
)

var (
	// "  100    7079.b3fd.0960    STATIC      Gi1/0/22"
	staticEntryRegexp = regexp.MustCompile(`(?i)([0-9a-f]{4}\.[0-9a-f]{4}\.[0-9a-f]{4})\s+STATIC\s+([a-z]+\d+/\d+/\d+)\b`)

	dotMACRegexp = regexp.MustCompile(`(?i)\b([0-9a-f]{4}\.[0-9a-f]{4}\.[0-9a-f]{4})\s+\w+`)

	errNoEntry = errors.New("no MAC address entry on interface")
)

// Reader reads the MAC address table of one switch.
type Reader struct {
	session Session
	host    string
}

// NewReader creates a reader over an open session. host is used for error
// and log context only.
func NewReader(session Session, host string) *Reader {
	return &Reader{session: session, host: host}
}

// StaticBindings returns every static MAC table entry on the switch, in the
// order the switch printed them. Addresses are in the switch's dot-grouped
// notation.
func (r *Reader) StaticBindings(ctx context.Context) ([]model.PortBinding, error) {
	out, err := r.run(ctx, staticTableCommand)
	if err != nil {
		return nil, err
	}
	bindings := ParseStaticTable(out)
	util.WithSwitch(r.host).Debugf("%d static MAC table entries", len(bindings))
	return bindings, nil
}

// InterfaceMAC returns the first MAC address the switch lists for port.
func (r *Reader) InterfaceMAC(ctx context.Context, port model.PortID) (string, error) {
	out, err := r.run(ctx, fmt.Sprintf(interfaceTableCommand, port))
	if err != nil {
		return "", err
	}
	m := dotMACRegexp.FindStringSubmatch(out)
	if m == nil {
		return "", util.NewSwitchSessionError(r.host, fmt.Sprintf("read MAC table of %s", port), errNoEntry)
	}
	return m[1], nil
}

func (r *Reader) run(ctx context.Context, cmd string) (string, error) {
	out, err := r.session.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	if strings.Contains(out, "% Invalid input") || strings.Contains(out, "% Incomplete command") {
		return "", util.NewSwitchSessionError(r.host, fmt.Sprintf("exec %q", cmd),
			fmt.Errorf("command rejected: %s", strings.TrimSpace(out)))
	}
	return out, nil
}

// ParseStaticTable extracts (MAC, interface) pairs from "show mac
// address-table" output, keeping only STATIC entries.
func ParseStaticTable(out string) []model.PortBinding {
	var bindings []model.PortBinding
	for _, m := range staticEntryRegexp.FindAllStringSubmatch(out, -1) {
		bindings = append(bindings, model.PortBinding{
			MAC:  strings.ToLower(m[1]),
			Port: model.PortID(m[2]),
		})
	}
	return bindings
}
