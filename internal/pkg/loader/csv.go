/*
csv.go Loads a SystemModel from a delimited file. The header row must
contain a "type" column (bus|line|transformer) plus the union of fields
needed by any row type. Blank "type" rows are skipped.
*/

package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
)

var requiredBusFields = []string{"bus_id", "kv"}
var requiredLineFields = []string{"line_id", "from_bus", "to_bus", "r_ohm", "x_ohm"}
var requiredTxFields = []string{"tx_id", "primary_bus", "secondary_bus", "primary_kv", "secondary_kv", "z_percent"}

// row exposes one CSV record through its header columns. Absent columns
// and blank cells both read as the empty string.
type row struct {
	columns map[string]int
	record  []string
}

func (r row) get(field string) string {
	i, ok := r.columns[field]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r row) missing(required []string) []string {
	var missing []string
	for _, field := range required {
		if r.get(field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func (r row) float(field string, kind string) (float64, error) {
	v, err := strconv.ParseFloat(r.get(field), 64)
	if err != nil {
		return 0, &model.SchemaError{Record: kind, Detail: "unparseable " + field + " value " + strconv.Quote(r.get(field))}
	}
	return v, nil
}

// optFloat parses an optional numeric cell, nil when blank.
func (r row) optFloat(field string, kind string) (*float64, error) {
	if r.get(field) == "" {
		return nil, nil
	}
	v, err := r.float(field, kind)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// LoadCSV streams the file's rows into a SystemModel and validates it once
// after all rows are consumed.
func LoadCSV(path string) (*model.SystemModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &model.SchemaError{Record: "csv", Detail: "missing header row"}
	}

	columns := make(map[string]int)
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["type"]; !ok {
		return nil, &model.SchemaError{Record: "csv", Detail: "header must include a 'type' column"}
	}

	m := model.NewSystemModel()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &model.SchemaError{Record: "csv", Detail: err.Error()}
		}

		r := row{columns: columns, record: record}
		rowType := strings.ToLower(r.get("type"))
		if rowType == "" {
			continue
		}

		switch rowType {
		case "bus":
			err = addBusRow(m, r)
		case "line":
			err = addLineRow(m, r)
		case "transformer":
			err = addTransformerRow(m, r)
		default:
			err = &model.SchemaError{Record: "csv", Detail: "unknown row type " + strconv.Quote(rowType)}
		}
		if err != nil {
			return nil, err
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func addBusRow(m *model.SystemModel, r row) error {
	if missing := r.missing(requiredBusFields); len(missing) > 0 {
		return &model.SchemaError{Record: "bus", Missing: missing}
	}

	kv, err := r.float("kv", "bus")
	if err != nil {
		return err
	}

	return m.AddBus(model.Bus{
		BusID: r.get("bus_id"),
		KV:    kv,
		Zone:  r.get("zone"),
	})
}

func addLineRow(m *model.SystemModel, r row) error {
	if missing := r.missing(requiredLineFields); len(missing) > 0 {
		return &model.SchemaError{Record: "line", Missing: missing}
	}

	rOhm, err := r.float("r_ohm", "line")
	if err != nil {
		return err
	}
	xOhm, err := r.float("x_ohm", "line")
	if err != nil {
		return err
	}
	length, err := r.optFloat("length", "line")
	if err != nil {
		return err
	}

	return m.AddLine(model.Line{
		LineID:   r.get("line_id"),
		FromBus:  r.get("from_bus"),
		ToBus:    r.get("to_bus"),
		ROhm:     rOhm,
		XOhm:     xOhm,
		Length:   length,
		LineCode: r.get("linecode"),
	})
}

func addTransformerRow(m *model.SystemModel, r row) error {
	if missing := r.missing(requiredTxFields); len(missing) > 0 {
		return &model.SchemaError{Record: "transformer", Missing: missing}
	}

	primaryKV, err := r.float("primary_kv", "transformer")
	if err != nil {
		return err
	}
	secondaryKV, err := r.float("secondary_kv", "transformer")
	if err != nil {
		return err
	}
	zPercent, err := r.float("z_percent", "transformer")
	if err != nil {
		return err
	}
	tap, err := r.optFloat("tap", "transformer")
	if err != nil {
		return err
	}

	return m.AddTransformer(model.Transformer{
		TxID:         r.get("tx_id"),
		PrimaryBus:   r.get("primary_bus"),
		SecondaryBus: r.get("secondary_bus"),
		PrimaryKV:    primaryKV,
		SecondaryKV:  secondaryKV,
		ZPercent:     zPercent,
		Tap:          tap,
	})
}
