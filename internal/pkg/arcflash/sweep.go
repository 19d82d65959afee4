package arcflash

import "github.com/gridsafe/arcflash_core/internal/pkg/model"

// SweepPoint is one sample of the energy-vs-bolted-fault-current curve,
// partitioned against a PPE energy limit.
type SweepPoint struct {
	IbfKA        float64 `json:"i_bf_ka"`
	IaKA         float64 `json:"i_a_ka"`
	EnergyCalCm2 float64 `json:"energy_cal_cm2"`
	Safe         bool    `json:"safe"`
}

// Default sweep range mirrors the display range of the original study
// tool: 1-50 kA in 300 steps.
const (
	DefaultSweepFromKA = 1.0
	DefaultSweepToKA   = 50.0
	DefaultSweepPoints = 300
)

// Sweep evaluates the formula chain over a range of hypothetical bolted
// fault currents and marks each point safe or unsafe against the given
// PPE energy limit. A derived, stateless byproduct for display; not part
// of the study invariants.
func Sweep(vKV float64, p FaultParams, ppeLimit float64, fromKA float64, toKA float64, n int) ([]SweepPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n < 2 || toKA <= fromKA {
		return nil, &model.InvalidConfigError{Field: "sweep range", Detail: "needs at least 2 points and to > from"}
	}

	points := make([]SweepPoint, 0, n)
	step := (toKA - fromKA) / float64(n-1)
	for i := 0; i < n; i++ {
		ibf := fromKA + step*float64(i)
		ia, err := ArcingCurrent(ibf, vKV, p.GapMM, p.Enclosure)
		if err != nil {
			return nil, err
		}
		energy := IncidentEnergy(ia, vKV, p.GapMM, p.ClearingTimeS, p.WorkingDistanceMM)
		points = append(points, SweepPoint{
			IbfKA:        ibf,
			IaKA:         ia,
			EnergyCalCm2: energy,
			Safe:         energy <= ppeLimit,
		})
	}
	return points, nil
}
