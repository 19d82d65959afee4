/*
arcflash.go Simplified IEEE 1584-style arc-flash formulas: arcing current
from bolted fault current, incident energy at a working distance, and the
PPE category ladder. The formula set is the contract; it deliberately
omits the full 2018 standard's voltage-class coefficient sets and
equipment correction factors. All functions are pure; callers validate
fault-study preconditions (positive currents, voltages and working
distance) before invoking them.
*/

package arcflash

import (
	"math"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
)

// Enclosure is the equipment configuration at the fault: vertical or
// horizontal conductors, in a box or in open air.
type Enclosure string

const (
	VCB Enclosure = "VCB"
	HCB Enclosure = "HCB"
	VOA Enclosure = "VOA"
	HOA Enclosure = "HOA"
)

// Coefficient triples (k1, k2, k3) for the arcing-current fit. Closed set;
// anything else is rejected, never defaulted.
var enclosureCoeffs = map[Enclosure][3]float64{
	VCB: {-0.153, 0.662, 0.0966},
	HCB: {-0.153, 0.662, 0.0966},
	VOA: {-0.792, 0.662, 0.0966},
	HOA: {-0.792, 0.662, 0.0966},
}

// ArcingCurrent estimates the arcing current in kA from the bolted fault
// current (kA), the bus voltage base (kV) and the electrode gap (mm):
//
//	log10(Ia) = k1 + k2*log10(Ibf) + k3*log10(V*1000) + 0.00402*gap
func ArcingCurrent(ibfKA float64, vKV float64, gapMM float64, enc Enclosure) (float64, error) {
	coeffs, ok := enclosureCoeffs[enc]
	if !ok {
		return 0, &model.InvalidEnclosureError{Enclosure: string(enc)}
	}

	logIa := coeffs[0] +
		coeffs[1]*math.Log10(ibfKA) +
		coeffs[2]*math.Log10(vKV*1000) +
		0.00402*gapMM

	return math.Pow(10, logIa), nil
}

// IncidentEnergy estimates the incident energy in cal/cm2 delivered at the
// working distance over the clearing time. Voltage correction factor is
// 1.0 at or above 1 kV, 1.5 below.
func IncidentEnergy(iaKA float64, vKV float64, gapMM float64, clearingTimeS float64, workingDistanceMM float64) float64 {
	en := math.Pow(10, -0.555+1.081*math.Log10(iaKA)+0.0011*gapMM)

	cf := 1.0
	if vKV < 1.0 {
		cf = 1.5
	}

	return cf * en * (clearingTimeS / 0.2) * math.Pow(610/workingDistanceMM, 2)
}
