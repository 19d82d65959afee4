/*
dss.go Loads a SystemModel through the external network solver: compiles
a master topology file, then enumerates buses, lines and two-winding
transformers from solver state. The same solver also supplies per-bus
voltage base and bolted fault current to the calculation engine.
*/

package loader

import (
	"os"
	"strings"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"github.com/gridsafe/arcflash_core/internal/pkg/solver"
)

// LoadDSS compiles the master file and extracts the circuit into a
// SystemModel. A non-zero solver error code fails immediately with
// ExternalSolverError; no retry.
func LoadDSS(ns solver.NetworkSolver, masterPath string) (*model.SystemModel, error) {
	if _, err := os.Stat(masterPath); err != nil {
		return nil, err
	}

	ns.ClearAll()
	if code, desc := ns.Compile(masterPath); code != 0 {
		return nil, &model.ExternalSolverError{Code: code, Description: desc}
	}

	m := model.NewSystemModel()

	for _, name := range ns.AllBusNames() {
		ns.SetActiveBus(name)
		if err := m.AddBus(model.Bus{BusID: name, KV: ns.VoltageBaseOfActiveBus()}); err != nil {
			return nil, err
		}
	}

	lines := ns.Lines()
	for ok := lines.First(); ok; ok = lines.Next() {
		line := model.Line{
			LineID:   lines.Name(),
			FromBus:  stripPhases(lines.Bus1()),
			ToBus:    stripPhases(lines.Bus2()),
			ROhm:     lines.R1(),
			XOhm:     lines.X1(),
			LineCode: lines.LineCode(),
		}
		if length := lines.Length(); length != 0 {
			line.Length = &length
		}
		if err := m.AddLine(line); err != nil {
			return nil, err
		}
	}

	txs := ns.Transformers()
	for ok := txs.First(); ok; ok = txs.Next() {
		txs.SetWinding(1)
		primaryBus, primaryKV := stripPhases(txs.Bus()), txs.KV()
		txs.SetWinding(2)
		secondaryBus, secondaryKV := stripPhases(txs.Bus()), txs.KV()

		tap := txs.Tap()
		tx := model.Transformer{
			TxID:         txs.Name(),
			PrimaryBus:   primaryBus,
			SecondaryBus: secondaryBus,
			PrimaryKV:    primaryKV,
			SecondaryKV:  secondaryKV,
			ZPercent:     txs.XHLPercent(),
			Tap:          &tap,
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

// stripPhases drops per-phase decoration from a solver bus reference,
// "BUS634.1.2.3" -> "BUS634".
func stripPhases(busRef string) string {
	if i := strings.Index(busRef, "."); i >= 0 {
		return busRef[:i]
	}
	return busRef
}
