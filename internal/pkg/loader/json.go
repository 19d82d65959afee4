/*
json.go Loads a SystemModel from a structured document with top-level
buses/lines/transformers arrays. Absent arrays are treated as empty;
additional top-level keys are ignored. Produces a model structurally
equivalent to the CSV loader given an equivalent dataset.
*/

package loader

import (
	"encoding/json"
	"io/ioutil"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
)

type jsonDocument struct {
	Buses        []jsonBus         `json:"buses"`
	Lines        []jsonLine        `json:"lines"`
	Transformers []jsonTransformer `json:"transformers"`
}

// Pointer fields distinguish an absent required key from a zero value.
type jsonBus struct {
	BusID *string  `json:"bus_id"`
	KV    *float64 `json:"kv"`
	Zone  string   `json:"zone"`
}

type jsonLine struct {
	LineID   *string  `json:"line_id"`
	FromBus  *string  `json:"from_bus"`
	ToBus    *string  `json:"to_bus"`
	ROhm     *float64 `json:"r_ohm"`
	XOhm     *float64 `json:"x_ohm"`
	Length   *float64 `json:"length"`
	LineCode string   `json:"linecode"`
}

type jsonTransformer struct {
	TxID         *string  `json:"tx_id"`
	PrimaryBus   *string  `json:"primary_bus"`
	SecondaryBus *string  `json:"secondary_bus"`
	PrimaryKV    *float64 `json:"primary_kv"`
	SecondaryKV  *float64 `json:"secondary_kv"`
	ZPercent     *float64 `json:"z_percent"`
	Tap          *float64 `json:"tap"`
}

// LoadJSON maps the document's arrays field-for-field onto the entity
// constructors and validates the model once after the whole document is
// consumed.
func LoadJSON(path string) (*model.SystemModel, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := jsonDocument{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &model.SchemaError{Record: "json", Detail: err.Error()}
	}

	m := model.NewSystemModel()

	for _, b := range doc.Buses {
		missing := missingKeys(
			key{"bus_id", b.BusID == nil},
			key{"kv", b.KV == nil},
		)
		if len(missing) > 0 {
			return nil, &model.SchemaError{Record: "bus", Missing: missing}
		}
		if err := m.AddBus(model.Bus{BusID: *b.BusID, KV: *b.KV, Zone: b.Zone}); err != nil {
			return nil, err
		}
	}

	for _, l := range doc.Lines {
		missing := missingKeys(
			key{"line_id", l.LineID == nil},
			key{"from_bus", l.FromBus == nil},
			key{"to_bus", l.ToBus == nil},
			key{"r_ohm", l.ROhm == nil},
			key{"x_ohm", l.XOhm == nil},
		)
		if len(missing) > 0 {
			return nil, &model.SchemaError{Record: "line", Missing: missing}
		}
		line := model.Line{
			LineID:   *l.LineID,
			FromBus:  *l.FromBus,
			ToBus:    *l.ToBus,
			ROhm:     *l.ROhm,
			XOhm:     *l.XOhm,
			Length:   l.Length,
			LineCode: l.LineCode,
		}
		if err := m.AddLine(line); err != nil {
			return nil, err
		}
	}

	for _, t := range doc.Transformers {
		missing := missingKeys(
			key{"tx_id", t.TxID == nil},
			key{"primary_bus", t.PrimaryBus == nil},
			key{"secondary_bus", t.SecondaryBus == nil},
			key{"primary_kv", t.PrimaryKV == nil},
			key{"secondary_kv", t.SecondaryKV == nil},
			key{"z_percent", t.ZPercent == nil},
		)
		if len(missing) > 0 {
			return nil, &model.SchemaError{Record: "transformer", Missing: missing}
		}
		tx := model.Transformer{
			TxID:         *t.TxID,
			PrimaryBus:   *t.PrimaryBus,
			SecondaryBus: *t.SecondaryBus,
			PrimaryKV:    *t.PrimaryKV,
			SecondaryKV:  *t.SecondaryKV,
			ZPercent:     *t.ZPercent,
			Tap:          t.Tap,
		}
		if err := m.AddTransformer(tx); err != nil {
			return nil, err
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

type key struct {
	name   string
	absent bool
}

func missingKeys(keys ...key) []string {
	var missing []string
	for _, k := range keys {
		if k.absent {
			missing = append(missing, k.name)
		}
	}
	return missing
}
