package loader

import (
	"errors"
	"testing"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"github.com/gridsafe/arcflash_core/internal/pkg/solver/mock"
	"gotest.tools/assert"
)

func newTestDSSSolver() *mock.Solver {
	return &mock.Solver{
		BusData: []mock.BusRecord{
			{Name: "sourcebus", KVBase: 115, IscKA: 40},
			{Name: "bus634", KVBase: 4.16, IscKA: 10},
			{Name: "bus675", KVBase: 4.16, IscKA: 8},
		},
		LineData: []mock.LineRecord{
			{Name: "650632", Bus1: "bus634.1.2.3", Bus2: "bus675.1.2.3", R1: 0.3, X1: 0.7, Length: 0.5, LineCode: "mtx601"},
		},
		TxData: []mock.TxRecord{
			{
				Name:       "sub",
				Bus:        [2]string{"sourcebus", "bus634.1.2.3"},
				KV:         [2]float64{115, 4.16},
				XHLPercent: 8,
				Tap:        1.0,
			},
		},
	}
}

func TestLoadDSS(t *testing.T) {
	// Any existing path will do; the mock ignores it.
	m, err := LoadDSS(newTestDSSSolver(), "./loader_test_model.csv")
	assert.NilError(t, err)

	assert.Equal(t, len(m.Buses), 3)
	assert.Equal(t, m.Buses["bus634"].KV, 4.16)

	line := m.Lines["650632"]
	assert.Equal(t, line.FromBus, "bus634", "phase decoration stripped")
	assert.Equal(t, line.ToBus, "bus675")
	assert.Equal(t, line.LineCode, "mtx601")

	tx := m.Transformers["sub"]
	assert.Equal(t, tx.PrimaryBus, "sourcebus")
	assert.Equal(t, tx.SecondaryBus, "bus634")
	assert.Equal(t, tx.PrimaryKV, 115.0)
	assert.Equal(t, tx.SecondaryKV, 4.16)
	assert.Equal(t, tx.ZPercent, 8.0)
}

func TestLoadDSSCompileError(t *testing.T) {
	ns := newTestDSSSolver()
	ns.CompileCode = 243
	ns.CompileDesc = "Error in Line definition"

	_, err := LoadDSS(ns, "./loader_test_model.csv")

	var solverErr *model.ExternalSolverError
	assert.Assert(t, errors.As(err, &solverErr))
	assert.Equal(t, solverErr.Code, 243)
	assert.Equal(t, solverErr.Description, "Error in Line definition")
}

func TestLoadDSSMissingMaster(t *testing.T) {
	_, err := LoadDSS(newTestDSSSolver(), "./no_such_master.dss")
	assert.Assert(t, err != nil)
}

func TestLoadDSSSolverSuppliesFaultInputs(t *testing.T) {
	ns := newTestDSSSolver()
	_, err := LoadDSS(ns, "./loader_test_model.csv")
	assert.NilError(t, err)

	ns.SetActiveBus("bus634")
	assert.Equal(t, ns.VoltageBaseOfActiveBus(), 4.16)
	assert.Equal(t, ns.BoltedFaultCurrentOfActiveBus(), 10.0)
}
