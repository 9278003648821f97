// Package reconcile joins access point records resolved by name against
// records resolved from the addresses a switch sees on its ports.
//
// A run proceeds through a fixed sequence of states:
//
//	Init → RangeExpanded → PortTableFetched → PortTableFiltered →
//	OldRecordsResolved → NewRecordsResolved → Joined
//
// Any error aborts the run; there is no retry or resumption.
package reconcile

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/newtron-network/reinv/pkg/model"
	"github.com/newtron-network/reinv/pkg/util"
)

// Lookup resolves access point radios in the inventory service.
type Lookup interface {
	RadiosByName(ctx context.Context, prefix string) ([]model.InventoryRecord, error)
	RadiosByEthernet(ctx context.Context, mac string) ([]model.InventoryRecord, error)
}

// SerialLookup resolves AP serial numbers in the inventory service.
type SerialLookup interface {
	SerialByEthernet(ctx context.Context, mac string) (string, error)
}

// PortTable reads a switch's MAC address table.
type PortTable interface {
	StaticBindings(ctx context.Context) ([]model.PortBinding, error)
	InterfaceMAC(ctx context.Context, port model.PortID) (string, error)
}

// Throttle paces inventory queries. Wait is called before every query.
type Throttle interface {
	Wait(ctx context.Context) error
}

// NoThrottle never waits.
type NoThrottle struct{}

// Wait returns ctx.Err().
func (NoThrottle) Wait(ctx context.Context) error { return ctx.Err() }

// State is a step of a reconciliation run.
type State int

const (
	StateInit State = iota
	StateRangeExpanded
	StatePortTableFetched
	StatePortTableFiltered
	StateOldRecordsResolved
	StateNewRecordsResolved
	StateJoined
)

var stateNames = [...]string{
	StateInit:               "init",
	StateRangeExpanded:      "range-expanded",
	StatePortTableFetched:   "port-table-fetched",
	StatePortTableFiltered:  "port-table-filtered",
	StateOldRecordsResolved: "old-records-resolved",
	StateNewRecordsResolved: "new-records-resolved",
	StateJoined:             "joined",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Config holds the engine's collaborators and switch geometry.
type Config struct {
	Inventory Lookup
	Switch    PortTable
	Throttle  Throttle

	// SwitchName is used for log context.
	SwitchName string
	PortPrefix string
	MaxPorts   int
}

// Engine runs reconciliations. It holds no per-run state; every Run builds
// its own accumulators.
type Engine struct {
	inventory  Lookup
	ports      PortTable
	throttle   Throttle
	switchName string
	portPrefix string
	maxPorts   int
	log        *logrus.Entry
}

// NewEngine creates an engine, filling in defaults for zero-valued geometry
// and throttle.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		inventory:  cfg.Inventory,
		ports:      cfg.Switch,
		throttle:   cfg.Throttle,
		switchName: cfg.SwitchName,
		portPrefix: cfg.PortPrefix,
		maxPorts:   cfg.MaxPorts,
		log:        util.WithSwitch(cfg.SwitchName),
	}
	if e.throttle == nil {
		e.throttle = NoThrottle{}
	}
	if e.portPrefix == "" {
		e.portPrefix = model.DefaultPortPrefix
	}
	if e.maxPorts <= 0 {
		e.maxPorts = model.DefaultMaxPorts
	}
	return e
}

// Request is the input of one run.
type Request struct {
	// Hostnames are the names of the APs being replaced, one per requested
	// port, in the order their replacements are cabled.
	Hostnames []string

	// PortRange selects the switch ports, e.g. "1-8,11-21".
	PortRange string
}

// Result is the output of a run.
type Result struct {
	State   State
	Ports   []model.PortID
	Old     []model.InventoryRecord
	New     []model.NewRecord
	Records []model.ReconciliationRecord
}

// Run performs one reconciliation. The hostname count is checked against
// the expanded port range before any network call is made.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{State: StateInit}

	ports, err := e.Validate(req)
	if err != nil {
		return res, err
	}
	res.Ports = ports
	e.advance(res, StateRangeExpanded, "ports", model.Describe(e.portPrefix, ports))

	raw, err := e.ports.StaticBindings(ctx)
	if err != nil {
		return res, err
	}
	observed := make([]model.PortBinding, 0, len(raw))
	for _, b := range raw {
		mac, err := util.NormalizeMAC(b.MAC)
		if err != nil {
			return res, fmt.Errorf("switch entry on %s: %w", b.Port, err)
		}
		observed = append(observed, model.PortBinding{MAC: mac, Port: b.Port})
	}
	e.advance(res, StatePortTableFetched, "entries", len(observed))

	bindings := model.SortBindings(model.FilterBindings(observed, model.NewPortSet(ports)))
	if len(bindings) == 0 {
		return res, fmt.Errorf("%w (%s)", util.ErrNoPortBindings, model.Describe(e.portPrefix, ports))
	}
	e.advance(res, StatePortTableFiltered, "bindings", len(bindings))

	for _, name := range req.Hostnames {
		rec, err := e.resolveOld(ctx, name)
		if err != nil {
			return res, err
		}
		e.log.WithField("hostname", rec.Hostname).Infof("existing AP => %s", rec.RadioMAC)
		res.Old = append(res.Old, rec)
	}
	e.advance(res, StateOldRecordsResolved, "count", len(res.Old))

	for _, b := range bindings {
		rec, err := e.resolveNew(ctx, b)
		if err != nil {
			return res, err
		}
		e.portLog(rec.Port).WithField("hostname", rec.Hostname).Infof("new AP => %s", rec.RadioMAC)
		res.New = append(res.New, rec)
	}
	e.advance(res, StateNewRecordsResolved, "count", len(res.New))

	res.Records = e.join(res.Old, res.New)
	e.advance(res, StateJoined, "records", len(res.Records))
	return res, nil
}

// Validate expands the request's port range and checks it against the
// hostname count without touching the network.
func (e *Engine) Validate(req Request) ([]model.PortID, error) {
	ports, err := e.ValidateRange(req.PortRange)
	if err != nil {
		return nil, err
	}
	if len(req.Hostnames) != len(ports) {
		return nil, &util.CountMismatchError{Hostnames: len(req.Hostnames), Ports: len(ports)}
	}
	return ports, nil
}

// ValidateRange expands portRange against the engine's port geometry.
func (e *Engine) ValidateRange(portRange string) ([]model.PortID, error) {
	return model.ExpandPorts(portRange, e.portPrefix, e.maxPorts)
}

func (e *Engine) advance(res *Result, s State, key string, value interface{}) {
	res.State = s
	e.log.WithFields(logrus.Fields{"state": s.String(), key: value}).Debug("reconcile")
}

func (e *Engine) resolveOld(ctx context.Context, name string) (model.InventoryRecord, error) {
	if err := e.throttle.Wait(ctx); err != nil {
		return model.InventoryRecord{}, err
	}
	records, err := e.inventory.RadiosByName(ctx, name)
	if err != nil {
		return model.InventoryRecord{}, fmt.Errorf("resolving %s: %w", name, err)
	}
	return e.first(records, name)
}

func (e *Engine) resolveNew(ctx context.Context, b model.PortBinding) (model.NewRecord, error) {
	if err := e.throttle.Wait(ctx); err != nil {
		return model.NewRecord{}, err
	}
	if dot, err := util.DotMAC(b.MAC); err == nil {
		e.portLog(b.Port).Debugf("resolving switch entry %s", dot)
	}
	records, err := e.inventory.RadiosByEthernet(ctx, b.MAC)
	if err != nil {
		return model.NewRecord{}, fmt.Errorf("resolving %s on %s: %w", b.MAC, b.Port, err)
	}
	rec, err := e.first(records, b.MAC)
	if err != nil {
		return model.NewRecord{}, err
	}
	return model.NewRecord{InventoryRecord: rec, EthernetMAC: b.MAC, Port: b.Port}, nil
}

func (e *Engine) portLog(port model.PortID) *logrus.Entry {
	return util.WithPort(e.switchName, port.String())
}

// first returns the first record after adjacent deduplication.
func (e *Engine) first(records []model.InventoryRecord, key string) (model.InventoryRecord, error) {
	records = util.DedupAdjacent(records)
	if len(records) == 0 {
		return model.InventoryRecord{}, &util.NotFoundError{Resource: "inventory key", Key: key}
	}
	if len(records) > 1 {
		e.log.WithFields(logrus.Fields{"key": key, "matches": len(records)}).
			Warnf("ambiguous inventory match; using %s", records[0].Hostname)
	}
	return records[0], nil
}

// join pairs the i-th old record with the i-th new record. Correspondence is
// positional only: the hostname input order must match the port order of
// the replacement APs. Unpaired entries are logged and dropped.
func (e *Engine) join(old []model.InventoryRecord, fresh []model.NewRecord) []model.ReconciliationRecord {
	n := min(len(old), len(fresh))
	for _, o := range old[n:] {
		e.log.WithField("hostname", o.Hostname).Warn("no new AP found for existing AP; skipped")
	}
	for _, f := range fresh[n:] {
		e.portLog(f.Port).WithField("hostname", f.Hostname).
			Warn("no existing AP left to pair with new AP; skipped")
	}

	records := make([]model.ReconciliationRecord, n)
	for i := 0; i < n; i++ {
		records[i] = model.ReconciliationRecord{
			Hostname:    old[i].Hostname,
			OldRadioMAC: old[i].RadioMAC,
			NewRadioMAC: fresh[i].RadioMAC,
			Port:        fresh[i].Port,
		}
	}
	return records
}
