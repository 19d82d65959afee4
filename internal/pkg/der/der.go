/*
der.go Typed configuration records for inverter-based resources: the
current-source stage (REGC), the converter control stage (REEC) and the
voltage/frequency ride-through boundary curves. Field defaults follow the
simplified WECC renewable models and are applied by unmarshalling the
source over a prefilled struct, so a partial sub-object keeps the
documented defaults for whatever it omits.
*/

package der

import (
	"encoding/json"

	"github.com/gridsafe/arcflash_core/internal/pkg/model"
)

// Recognized DER types. GENERIC covers anything without a dedicated model.
const (
	TypePV      = "PV"
	TypeBESS    = "BESS"
	TypeWind    = "WIND"
	TypeGeneric = "GENERIC"
)

// REGCConfig holds current-source inverter model parameters.
type REGCConfig struct {
	Model      string   `json:"model"`
	Imax       float64  `json:"imax"`
	ImaxFault  *float64 `json:"imax_fault,omitempty"`
	RSourcePU  float64  `json:"r_source_pu"`
	XSourcePU  float64  `json:"x_source_pu"`
	IqPriority string   `json:"iq_priority"`

	// PLL (simplified)
	KpPLL float64 `json:"kp_pll"`
	KiPLL float64 `json:"ki_pll"`
	Wmax  float64 `json:"wmax"`
	Wmin  float64 `json:"wmin"`
}

// EffectiveImaxFault falls back to Imax when no fault-mode limit is set.
func (c REGCConfig) EffectiveImaxFault() float64 {
	if c.ImaxFault != nil {
		return *c.ImaxFault
	}
	return c.Imax
}

// REECConfig holds electrical-converter control model parameters.
type REECConfig struct {
	Model  string  `json:"model"`
	VrefPU float64 `json:"vref_pu"`
	QrefPU float64 `json:"qref_pu"`

	// Voltage-dependent reactive current
	Kqv     float64 `json:"kqv"`
	VdipPU  float64 `json:"vdip_pu"`
	VupPU   float64 `json:"vup_pu"`
	IqmaxPU float64 `json:"iqmax_pu"`
	IqminPU float64 `json:"iqmin_pu"`

	// Active power limits
	PmaxPU float64 `json:"pmax_pu"`
	PminPU float64 `json:"pmin_pu"`

	// Mode flags
	PfFlag int `json:"pf_flag"`
	PqFlag int `json:"pq_flag"`
	VqFlag int `json:"vq_flag"`
}

// VRTPoint is one voltage-ride-through boundary point.
type VRTPoint struct {
	VoltagePU float64 `json:"voltage_pu"`
	MaxTimeS  float64 `json:"max_time_s"`
}

// FRTPoint is one frequency-ride-through boundary point.
type FRTPoint struct {
	FrequencyHz float64 `json:"frequency_hz"`
	MaxTimeS    float64 `json:"max_time_s"`
}

// RideThroughConfig is the ordered boundary beyond which the resource
// must trip.
type RideThroughConfig struct {
	VRTCurve []VRTPoint `json:"vrt_curve"`
	FRTCurve []FRTPoint `json:"frt_curve"`
}

// DefaultREGC is the recognized-options table for the current-source stage.
func DefaultREGC() REGCConfig {
	return REGCConfig{
		Model:      "REGC_A",
		Imax:       1.2,
		RSourcePU:  0.01,
		XSourcePU:  0.12,
		IqPriority: "reactive",
		KpPLL:      20.0,
		KiPLL:      200.0,
		Wmax:       2.0,
		Wmin:       -2.0,
	}
}

// DefaultREEC is the recognized-options table for the control stage.
func DefaultREEC() REECConfig {
	return REECConfig{
		Model:   "REEC_A",
		VrefPU:  1.0,
		QrefPU:  0.0,
		Kqv:     7.5,
		VdipPU:  0.9,
		VupPU:   1.1,
		IqmaxPU: 1.1,
		IqminPU: -1.1,
		PmaxPU:  1.0,
		PminPU:  0.0,
		PfFlag:  0,
		PqFlag:  1,
		VqFlag:  0,
	}
}

// DER is a single inverter-based resource with its control models.
type DER struct {
	DERID         string   `json:"der_id"`
	Type          string   `json:"der_type"`
	ConnectionBus string   `json:"connection_bus"`
	MVARating     float64  `json:"mva_rating"`
	KVLL          float64  `json:"kv_ll"`
	PrefMW        float64  `json:"pref_MW"`
	QrefMVAR      float64  `json:"qref_MVAR"`
	PowerFactor   *float64 `json:"power_factor,omitempty"`

	REGC        REGCConfig        `json:"regc"`
	REEC        REECConfig        `json:"reec"`
	RideThrough RideThroughConfig `json:"ride_through"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Validate applies the basic sanity checks on a constructed DER.
func (d *DER) Validate() error {
	switch d.Type {
	case TypePV, TypeBESS, TypeWind, TypeGeneric:
	default:
		return &model.InvalidConfigError{Field: "der_type", Detail: "must be one of PV, BESS, WIND, GENERIC"}
	}
	if d.MVARating <= 0 {
		return &model.InvalidConfigError{Field: "mva_rating", Detail: "must be > 0"}
	}
	if d.KVLL <= 0 {
		return &model.InvalidConfigError{Field: "kv_ll", Detail: "must be > 0"}
	}
	if d.ConnectionBus == "" {
		return &model.InvalidConfigError{Field: "connection_bus", Detail: "must be non-empty"}
	}
	if d.REGC.Imax <= 0 {
		return &model.InvalidConfigError{Field: "regc.imax", Detail: "must be > 0"}
	}
	if d.REEC.IqmaxPU < 0 {
		return &model.InvalidConfigError{Field: "reec.iqmax_pu", Detail: "must be >= 0"}
	}
	return nil
}

// Parse builds a DER from a structured source, filling documented defaults
// for any absent REGC/REEC field, then validates it. The source may name
// the terminal voltage either "kv_ll" or "kv".
func Parse(derID string, raw []byte) (*DER, error) {
	d := DER{
		DERID: derID,
		REGC:  DefaultREGC(),
		REEC:  DefaultREEC(),
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, &model.SchemaError{Record: "der", Detail: err.Error()}
	}
	d.DERID = derID

	if d.KVLL == 0 {
		alias := struct {
			KV float64 `json:"kv"`
		}{}
		if err := json.Unmarshal(raw, &alias); err == nil {
			d.KVLL = alias.KV
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
