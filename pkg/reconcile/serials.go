package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/newtron-network/reinv/pkg/model"
	"github.com/newtron-network/reinv/pkg/util"
)

// Serials reports the serial number of the AP attached to each port in
// portRange, in ascending port order. Every requested port must have a MAC
// table entry.
func (e *Engine) Serials(ctx context.Context, inv SerialLookup, portRange string) ([]model.SerialRecord, error) {
	ports, err := e.ValidateRange(portRange)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ports, func(i, j int) bool {
		return ports[i].Number() < ports[j].Number()
	})
	ports = util.DedupAdjacent(ports)

	records := make([]model.SerialRecord, 0, len(ports))
	for _, port := range ports {
		raw, err := e.ports.InterfaceMAC(ctx, port)
		if err != nil {
			return records, err
		}
		mac, err := util.NormalizeMAC(raw)
		if err != nil {
			return records, fmt.Errorf("switch entry on %s: %w", port, err)
		}

		if err := e.throttle.Wait(ctx); err != nil {
			return records, err
		}
		serial, err := inv.SerialByEthernet(ctx, mac)
		if err != nil {
			return records, fmt.Errorf("resolving %s on %s: %w", mac, port, err)
		}

		e.portLog(port).Infof("%s => %s", mac, serial)
		records = append(records, model.SerialRecord{Port: port, EthernetMAC: mac, Serial: serial})
	}
	return records, nil
}
