package relay

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gridsafe/arcflash_core/internal/pkg/arcflash"
	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"gotest.tools/assert"
)

func TestReadConfig(t *testing.T) {
	s, err := New("./relay_test_config.json")
	assert.NilError(t, err)
	assert.Equal(t, len(s.registers), 2)
	assert.Equal(t, s.registers[0].Name, "ClearingTime")
	assert.Equal(t, s.registers[0].Address, uint16(4000))
}

func TestFindRegisterMiss(t *testing.T) {
	s, err := New("./relay_test_config.json")
	assert.NilError(t, err)

	_, err = s.findRegister("TripCount")
	var notFound *model.NotFoundError
	assert.Assert(t, errors.As(err, &notFound))
	assert.Equal(t, notFound.ID, "TripCount")
}

func TestDecodeF32(t *testing.T) {
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, math.Float32bits(0.08))

	got := decodeF32(bytes)
	assert.Assert(t, math.Abs(got-0.08) < 1e-6)
}

func TestCompleteKeepsExplicitClearingTime(t *testing.T) {
	s, err := New("./relay_test_config.json")
	assert.NilError(t, err)

	// Already-set parameters are not overwritten, so no read happens.
	p := arcflash.FaultParams{
		GapMM:             32,
		Enclosure:         arcflash.VCB,
		WorkingDistanceMM: 457,
		ClearingTimeS:     0.08,
	}
	completed, err := s.Complete(p)
	assert.NilError(t, err)
	assert.Equal(t, completed, p)
}
