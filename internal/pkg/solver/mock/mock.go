/*
mock.go Scriptable in-memory network solver. Stands in for the external
short-circuit engine in tests and in the demo binary.
*/

package mock

import "github.com/gridsafe/arcflash_core/internal/pkg/solver"

// BusRecord seeds one bus in the mock solver.
type BusRecord struct {
	Name   string
	KVBase float64
	IscKA  float64
}

// LineRecord seeds one line element. Endpoints may carry phase decoration
// ("BUS1.1.2.3") to exercise the loader's stripping.
type LineRecord struct {
	Name     string
	Bus1     string
	Bus2     string
	R1       float64
	X1       float64
	Length   float64
	LineCode string
}

// TxRecord seeds one two-winding transformer.
type TxRecord struct {
	Name       string
	Bus        [2]string
	KV         [2]float64
	XHLPercent float64
	Tap        float64
}

// Solver implements solver.NetworkSolver over in-memory records.
type Solver struct {
	BusData  []BusRecord
	LineData []LineRecord
	TxData   []TxRecord

	CompileCode int
	CompileDesc string

	active int
}

func (s *Solver) ClearAll() {
	s.active = -1
}

func (s *Solver) Compile(path string) (int, string) {
	return s.CompileCode, s.CompileDesc
}

func (s *Solver) AllBusNames() []string {
	names := make([]string, 0, len(s.BusData))
	for _, b := range s.BusData {
		names = append(names, b.Name)
	}
	return names
}

func (s *Solver) SetActiveBus(name string) {
	s.active = -1
	for i, b := range s.BusData {
		if b.Name == name {
			s.active = i
			return
		}
	}
}

func (s *Solver) VoltageBaseOfActiveBus() float64 {
	if s.active < 0 || s.active >= len(s.BusData) {
		return 0
	}
	return s.BusData[s.active].KVBase
}

func (s *Solver) BoltedFaultCurrentOfActiveBus() float64 {
	if s.active < 0 || s.active >= len(s.BusData) {
		return 0
	}
	return s.BusData[s.active].IscKA
}

func (s *Solver) Lines() solver.LineCursor {
	return &solverLineCursor{data: s.LineData, pos: -1}
}

func (s *Solver) Transformers() solver.TransformerCursor {
	return &solverTxCursor{data: s.TxData, pos: -1, winding: 1}
}

type solverLineCursor struct {
	data []LineRecord
	pos  int
}

func (c *solverLineCursor) First() bool {
	c.pos = 0
	return c.pos < len(c.data)
}

func (c *solverLineCursor) Next() bool {
	c.pos++
	return c.pos < len(c.data)
}

func (c *solverLineCursor) Name() string     { return c.data[c.pos].Name }
func (c *solverLineCursor) Bus1() string     { return c.data[c.pos].Bus1 }
func (c *solverLineCursor) Bus2() string     { return c.data[c.pos].Bus2 }
func (c *solverLineCursor) R1() float64      { return c.data[c.pos].R1 }
func (c *solverLineCursor) X1() float64      { return c.data[c.pos].X1 }
func (c *solverLineCursor) Length() float64  { return c.data[c.pos].Length }
func (c *solverLineCursor) LineCode() string { return c.data[c.pos].LineCode }

type solverTxCursor struct {
	data    []TxRecord
	pos     int
	winding int
}

func (c *solverTxCursor) First() bool {
	c.pos = 0
	return c.pos < len(c.data)
}

func (c *solverTxCursor) Next() bool {
	c.pos++
	return c.pos < len(c.data)
}

func (c *solverTxCursor) Name() string { return c.data[c.pos].Name }

func (c *solverTxCursor) SetWinding(n int) {
	c.winding = n
}

func (c *solverTxCursor) Bus() string {
	return c.data[c.pos].Bus[c.winding-1]
}

func (c *solverTxCursor) KV() float64 {
	return c.data[c.pos].KV[c.winding-1]
}

func (c *solverTxCursor) XHLPercent() float64 { return c.data[c.pos].XHLPercent }
func (c *solverTxCursor) Tap() float64        { return c.data[c.pos].Tap }
