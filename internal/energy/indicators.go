package energy

import (
	"encoding/json"

	"github.com/vk/thermenv/internal/climate"
	"github.com/vk/thermenv/internal/model"
)

// Indicators bundles the compliance indicators of a model with the
// resolved element properties they were derived from.
type Indicators struct {
	ARef        float64 `json:"area_ref"`
	Compacity   float64 `json:"compactness"`
	VolEnvNet   float64 `json:"vol_env_net"`
	VolEnvGross float64 `json:"vol_env_gross"`

	Props   *Props      `json:"props"`
	K       KData       `json:"K_data"`
	QSolJul QSolJulData `json:"q_soljul_data"`
	N50     N50Data     `json:"n50_data"`

	Warnings []model.Warning `json:"warnings"`
}

// Compute derives all indicators for a model.
func Compute(m *model.Model) *Indicators {
	totRadJul := climate.TotalRadiationJuly(m.Meta.Climate)
	props := NewProps(m)

	return &Indicators{
		ARef:        props.Global.ARef,
		Compacity:   props.Global.Compacity,
		VolEnvNet:   props.Global.VolEnvNet,
		VolEnvGross: props.Global.VolEnvGross,
		Props:       props,
		K:           ComputeK(props),
		QSolJul:     ComputeQSolJul(props, totRadJul),
		N50:         ComputeN50(props),
		Warnings:    m.Check(),
	}
}

// AsJSON renders the indicators as indented JSON.
func (ind *Indicators) AsJSON() ([]byte, error) {
	return json.MarshalIndent(ind, "", "  ")
}
