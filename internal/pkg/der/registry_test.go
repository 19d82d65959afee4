package der

import (
	"errors"
	"testing"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"gotest.tools/assert"
)

func newTestRegistry(t *testing.T) *Registry {
	r := NewRegistry()
	if _, err := r.InsertFile("PV1", "./der_test_config.json"); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestInsertFromFile(t *testing.T) {
	r := newTestRegistry(t)

	d, err := r.Get("PV1")
	assert.NilError(t, err)
	assert.Equal(t, d.Type, "PV")
	assert.Equal(t, d.ConnectionBus, "BUS3")
	assert.Equal(t, d.MVARating, 2.5)
	assert.Equal(t, d.REGC.Imax, 1.1)
	assert.Equal(t, d.REGC.IqPriority, "active")
	assert.Equal(t, d.REEC.Kqv, 5.0)
	assert.Equal(t, d.REEC.VdipPU, 0.9, "unset REEC fields keep defaults")
	assert.Equal(t, len(d.RideThrough.VRTCurve), 3)
	assert.Equal(t, len(d.RideThrough.FRTCurve), 2)
}

func TestInsertDuplicate(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.InsertFile("PV1", "./der_test_config.json")
	var dupErr *model.DuplicateIDError
	assert.Assert(t, errors.As(err, &dupErr))
	assert.Equal(t, dupErr.ID, "PV1")
}

func TestUpsertReplaces(t *testing.T) {
	r := newTestRegistry(t)

	d, err := r.Upsert("PV1", []byte(`{
		"der_type": "BESS",
		"connection_bus": "BUS2",
		"mva_rating": 5,
		"kv_ll": 0.48
	}`))
	assert.NilError(t, err)
	assert.Equal(t, d.Type, "BESS")

	stored, err := r.Get("PV1")
	assert.NilError(t, err)
	assert.Equal(t, stored.Type, "BESS")
}

func TestGetMissing(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("GHOST")
	var notFound *model.NotFoundError
	assert.Assert(t, errors.As(err, &notFound))
	assert.Equal(t, notFound.ID, "GHOST")
}

func TestInvalidInsertLeavesRegistryUnchanged(t *testing.T) {
	r := NewRegistry()

	_, err := r.Insert("BAD", []byte(`{"der_type": "PV", "connection_bus": "B", "mva_rating": -1, "kv_ll": 0.48}`))
	assert.Assert(t, err != nil)
	assert.Equal(t, len(r.IDs()), 0)
}

func TestSimPayloadRoundTrip(t *testing.T) {
	r := newTestRegistry(t)

	payload, err := r.SimPayload("PV1")
	assert.NilError(t, err)
	assert.Equal(t, payload.DERID, "PV1")
	assert.Equal(t, payload.REGC.ImaxFault, 1.3, "explicit fault limit exported")

	rebuilt := FromPayload(payload)
	original, err := r.Get("PV1")
	assert.NilError(t, err)

	assert.Equal(t, rebuilt.PrefMW, original.PrefMW)
	assert.Equal(t, rebuilt.REGC.Imax, original.REGC.Imax)
	assert.Equal(t, len(rebuilt.RideThrough.VRTCurve), len(original.RideThrough.VRTCurve))
	assert.Equal(t, len(rebuilt.RideThrough.FRTCurve), len(original.RideThrough.FRTCurve))
	assert.DeepEqual(t, rebuilt.REEC, original.REEC)
}

func TestSimPayloadDefaultFaultLimit(t *testing.T) {
	r := NewRegistry()
	_, err := r.Insert("W1", []byte(`{
		"der_type": "WIND",
		"connection_bus": "BUS1",
		"mva_rating": 3,
		"kv_ll": 0.69,
		"regc": {"imax": 1.15}
	}`))
	assert.NilError(t, err)

	payload, err := r.SimPayload("W1")
	assert.NilError(t, err)
	assert.Equal(t, payload.REGC.ImaxFault, 1.15, "falls back to imax")
}
