package model

// InventoryRecord is an AP hostname and base radio MAC as known to the
// inventory service.
type InventoryRecord struct {
	Hostname string `json:"hostname"`
	RadioMAC string `json:"radio_mac"`
}

// NewRecord is an inventory record resolved from an address seen on a switch
// port.
type NewRecord struct {
	InventoryRecord
	EthernetMAC string `json:"ethernet_mac"`
	Port        PortID `json:"port"`
}

// ReconciliationRecord maps the radio MAC an AP was previously registered
// with to the radio MAC of the AP now cabled in its place. The hostname is
// written in both hostname columns of the exported line.
type ReconciliationRecord struct {
	Hostname    string `json:"hostname"`
	OldRadioMAC string `json:"old_radio_mac"`
	NewRadioMAC string `json:"new_radio_mac"`
	Port        PortID `json:"port"`
}

// Fields returns the exported columns: hostname, old, hostname, new.
func (r ReconciliationRecord) Fields() []string {
	return []string{r.Hostname, r.OldRadioMAC, r.Hostname, r.NewRadioMAC}
}

// SerialRecord is the serial number of the AP attached to a port.
type SerialRecord struct {
	Port        PortID `json:"port"`
	EthernetMAC string `json:"ethernet_mac"`
	Serial      string `json:"serial"`
}

// Fields returns the exported columns: port, ethernet MAC, serial.
func (r SerialRecord) Fields() []string {
	return []string{string(r.Port), r.EthernetMAC, r.Serial}
}
