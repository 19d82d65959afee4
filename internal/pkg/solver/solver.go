/*
solver.go Port to the external network solver that performs power-flow and
short-circuit analysis. The core only queries externally-owned state; it
never embeds solver-specific invocation details. A production deployment
binds these interfaces to an OpenDSS-style engine; tests and the demo
binary use solver/mock.
*/

package solver

// NetworkSolver is the query surface the core needs from the external
// short-circuit engine. Compile returns the solver's error code and
// description; a non-zero code means the master file did not compile.
type NetworkSolver interface {
	ClearAll()
	Compile(path string) (int, string)
	AllBusNames() []string
	SetActiveBus(name string)
	VoltageBaseOfActiveBus() float64
	BoltedFaultCurrentOfActiveBus() float64
	Lines() LineCursor
	Transformers() TransformerCursor
}

// LineCursor enumerates the solver's line elements. First and Next report
// whether a line is active; field accessors read the active line.
type LineCursor interface {
	First() bool
	Next() bool
	Name() string
	Bus1() string
	Bus2() string
	R1() float64
	X1() float64
	Length() float64
	LineCode() string
}

// TransformerCursor enumerates two-winding transformers. SetWinding selects
// the active winding (1-based) for the Bus and KV accessors.
type TransformerCursor interface {
	First() bool
	Next() bool
	Name() string
	SetWinding(n int)
	Bus() string
	KV() float64
	XHLPercent() float64
	Tap() float64
}
