/*
study.go Orchestration: pull (voltage base, bolted fault current) for a bus
from the network solver, run the formula chain, classify. Fault-study
parameters travel as an explicit immutable value object; absence of any
parameter is a precondition failure, never defaulted.
*/

package arcflash

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gridsafe/arcflash_core/internal/pkg/model"
	"github.com/gridsafe/arcflash_core/internal/pkg/solver"
)

// FaultParams is the externally supplied fault-study parameter set.
type FaultParams struct {
	GapMM             float64   `json:"gap_mm"`
	Enclosure         Enclosure `json:"enclosure"`
	WorkingDistanceMM float64   `json:"working_distance_mm"`
	ClearingTimeS     float64   `json:"clearing_time_s"`
}

// Validate fails fast when any parameter is unset or out of range.
func (p FaultParams) Validate() error {
	if p.GapMM <= 0 {
		return &model.InvalidConfigError{Field: "gap_mm", Detail: "must be > 0"}
	}
	if _, ok := enclosureCoeffs[p.Enclosure]; !ok {
		return &model.InvalidEnclosureError{Enclosure: string(p.Enclosure)}
	}
	if p.WorkingDistanceMM <= 0 {
		return &model.InvalidConfigError{Field: "working_distance_mm", Detail: "must be > 0"}
	}
	if p.ClearingTimeS <= 0 {
		return &model.InvalidConfigError{Field: "clearing_time_s", Detail: "must be > 0"}
	}
	return nil
}

// ReadFaultParams unmarshals and validates a fault-parameter config.
func ReadFaultParams(jsonConfig []byte) (FaultParams, error) {
	p := FaultParams{}
	if err := json.Unmarshal(jsonConfig, &p); err != nil {
		return FaultParams{}, &model.SchemaError{Record: "fault_params", Detail: err.Error()}
	}
	if err := p.Validate(); err != nil {
		return FaultParams{}, err
	}
	return p, nil
}

// Report is the results record for one bus study.
type Report struct {
	PID          uuid.UUID `json:"pid"`
	Bus          string    `json:"bus"`
	VKV          float64   `json:"v_kv"`
	IbfKA        float64   `json:"i_bf_ka"`
	IaKA         float64   `json:"i_a_ka"`
	EnergyCalCm2 float64   `json:"energy_cal_cm2"`
	Category     Category  `json:"category"`
	CategoryName string    `json:"category_name"`
}

// RunStudy computes arcing current, incident energy and PPE category for
// the named bus, reading voltage base and bolted fault current from the
// network solver.
func RunStudy(ns solver.NetworkSolver, busID string, p FaultParams) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}

	ns.SetActiveBus(busID)
	vKV := ns.VoltageBaseOfActiveBus()
	ibfKA := ns.BoltedFaultCurrentOfActiveBus()
	if vKV <= 0 || ibfKA <= 0 {
		return Report{}, &model.NotFoundError{Kind: "bus", ID: busID}
	}

	iaKA, err := ArcingCurrent(ibfKA, vKV, p.GapMM, p.Enclosure)
	if err != nil {
		return Report{}, err
	}
	energy := IncidentEnergy(iaKA, vKV, p.GapMM, p.ClearingTimeS, p.WorkingDistanceMM)
	category := Classify(energy)

	pid, err := uuid.NewUUID()
	if err != nil {
		return Report{}, err
	}

	return Report{
		PID:          pid,
		Bus:          busID,
		VKV:          vKV,
		IbfKA:        ibfKA,
		IaKA:         iaKA,
		EnergyCalCm2: energy,
		Category:     category,
		CategoryName: category.String(),
	}, nil
}
