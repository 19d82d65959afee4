/*
model.go Canonical in-memory representation of a distribution network:
buses, lines and two-winding transformers keyed by id. Loaders construct
a SystemModel in one pass and call Validate exactly once; downstream
consumers treat the model as read-only.
*/

package model

// Bus is a single electrical bus with its nominal line-to-line voltage base.
type Bus struct {
	BusID string  `json:"bus_id"`
	KV    float64 `json:"kv"`
	Zone  string  `json:"zone,omitempty"`
}

// Line is a positive-sequence branch between two buses.
type Line struct {
	LineID   string   `json:"line_id"`
	FromBus  string   `json:"from_bus"`
	ToBus    string   `json:"to_bus"`
	ROhm     float64  `json:"r_ohm"`
	XOhm     float64  `json:"x_ohm"`
	Length   *float64 `json:"length,omitempty"`
	LineCode string   `json:"linecode,omitempty"`
}

// Transformer is a two-winding transformer with percent impedance.
type Transformer struct {
	TxID         string   `json:"tx_id"`
	PrimaryBus   string   `json:"primary_bus"`
	SecondaryBus string   `json:"secondary_bus"`
	PrimaryKV    float64  `json:"primary_kv"`
	SecondaryKV  float64  `json:"secondary_kv"`
	ZPercent     float64  `json:"z_percent"`
	Tap          *float64 `json:"tap,omitempty"`
}

// SystemModel holds the network entities keyed by their own ids.
// Insertion order is irrelevant.
type SystemModel struct {
	Buses        map[string]Bus
	Lines        map[string]Line
	Transformers map[string]Transformer
}

// NewSystemModel returns an empty SystemModel ready for population.
func NewSystemModel() *SystemModel {
	return &SystemModel{
		Buses:        make(map[string]Bus),
		Lines:        make(map[string]Line),
		Transformers: make(map[string]Transformer),
	}
}

// AddBus inserts a bus, rejecting id collisions.
func (m *SystemModel) AddBus(b Bus) error {
	if _, ok := m.Buses[b.BusID]; ok {
		return &DuplicateIDError{Kind: "bus", ID: b.BusID}
	}
	m.Buses[b.BusID] = b
	return nil
}

// AddLine inserts a line, rejecting id collisions.
func (m *SystemModel) AddLine(l Line) error {
	if _, ok := m.Lines[l.LineID]; ok {
		return &DuplicateIDError{Kind: "line", ID: l.LineID}
	}
	m.Lines[l.LineID] = l
	return nil
}

// AddTransformer inserts a transformer, rejecting id collisions.
func (m *SystemModel) AddTransformer(t Transformer) error {
	if _, ok := m.Transformers[t.TxID]; ok {
		return &DuplicateIDError{Kind: "transformer", ID: t.TxID}
	}
	m.Transformers[t.TxID] = t
	return nil
}

// Validate checks referential integrity over the fully populated model:
// every line endpoint and transformer winding must name an existing bus.
// It performs no mutation.
func (m *SystemModel) Validate() error {
	for _, line := range m.Lines {
		if _, ok := m.Buses[line.FromBus]; !ok {
			return &ReferentialIntegrityError{Kind: "line", ID: line.LineID, Field: "from_bus", MissingBus: line.FromBus}
		}
		if _, ok := m.Buses[line.ToBus]; !ok {
			return &ReferentialIntegrityError{Kind: "line", ID: line.LineID, Field: "to_bus", MissingBus: line.ToBus}
		}
	}

	for _, tx := range m.Transformers {
		if _, ok := m.Buses[tx.PrimaryBus]; !ok {
			return &ReferentialIntegrityError{Kind: "transformer", ID: tx.TxID, Field: "primary_bus", MissingBus: tx.PrimaryBus}
		}
		if _, ok := m.Buses[tx.SecondaryBus]; !ok {
			return &ReferentialIntegrityError{Kind: "transformer", ID: tx.TxID, Field: "secondary_bus", MissingBus: tx.SecondaryBus}
		}
	}
	return nil
}
