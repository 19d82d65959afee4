package der

// REGCPayload mirrors REGCConfig with the effective fault-mode current
// limit substituted for the optional one.
type REGCPayload struct {
	Model      string  `json:"model"`
	Imax       float64 `json:"imax"`
	ImaxFault  float64 `json:"imax_fault"`
	RSourcePU  float64 `json:"r_source_pu"`
	XSourcePU  float64 `json:"x_source_pu"`
	IqPriority string  `json:"iq_priority"`
	KpPLL      float64 `json:"kp_pll"`
	KiPLL      float64 `json:"ki_pll"`
	Wmax       float64 `json:"wmax"`
	Wmin       float64 `json:"wmin"`
}

// Payload is the flattened record consumed by the external
// dynamic-simulation engine: every REGC/REEC field plus the ride-through
// curves. It is a lossless projection of the stored DER's numeric fields.
type Payload struct {
	DERID         string            `json:"der_id"`
	Type          string            `json:"type"`
	ConnectionBus string            `json:"connection_bus"`
	MVARating     float64           `json:"mva_rating"`
	KVLL          float64           `json:"kv_ll"`
	PrefMW        float64           `json:"pref_MW"`
	QrefMVAR      float64           `json:"qref_MVAR"`
	PowerFactor   *float64          `json:"power_factor"`
	REGC          REGCPayload       `json:"regc"`
	REEC          REECConfig        `json:"reec"`
	RideThrough   RideThroughConfig `json:"ride_through"`
}

// NewPayload flattens a DER for the dynamics engine.
func NewPayload(d *DER) Payload {
	return Payload{
		DERID:         d.DERID,
		Type:          d.Type,
		ConnectionBus: d.ConnectionBus,
		MVARating:     d.MVARating,
		KVLL:          d.KVLL,
		PrefMW:        d.PrefMW,
		QrefMVAR:      d.QrefMVAR,
		PowerFactor:   d.PowerFactor,
		REGC: REGCPayload{
			Model:      d.REGC.Model,
			Imax:       d.REGC.Imax,
			ImaxFault:  d.REGC.EffectiveImaxFault(),
			RSourcePU:  d.REGC.RSourcePU,
			XSourcePU:  d.REGC.XSourcePU,
			IqPriority: d.REGC.IqPriority,
			KpPLL:      d.REGC.KpPLL,
			KiPLL:      d.REGC.KiPLL,
			Wmax:       d.REGC.Wmax,
			Wmin:       d.REGC.Wmin,
		},
		REEC:        d.REEC,
		RideThrough: d.RideThrough,
	}
}

// FromPayload reconstructs a DER from an exported payload. Round-tripping
// preserves every numeric field; the effective fault-mode current limit
// becomes an explicit one.
func FromPayload(p Payload) *DER {
	imaxFault := p.REGC.ImaxFault
	return &DER{
		DERID:         p.DERID,
		Type:          p.Type,
		ConnectionBus: p.ConnectionBus,
		MVARating:     p.MVARating,
		KVLL:          p.KVLL,
		PrefMW:        p.PrefMW,
		QrefMVAR:      p.QrefMVAR,
		PowerFactor:   p.PowerFactor,
		REGC: REGCConfig{
			Model:      p.REGC.Model,
			Imax:       p.REGC.Imax,
			ImaxFault:  &imaxFault,
			RSourcePU:  p.REGC.RSourcePU,
			XSourcePU:  p.REGC.XSourcePU,
			IqPriority: p.REGC.IqPriority,
			KpPLL:      p.REGC.KpPLL,
			KiPLL:      p.REGC.KiPLL,
			Wmax:       p.REGC.Wmax,
			Wmin:       p.REGC.Wmin,
		},
		REEC:        p.REEC,
		RideThrough: p.RideThrough,
	}
}
