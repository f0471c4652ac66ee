package types

import (
	"exusiai.dev/autodash/internal/core/predict"
)

// PredictRequest is the energy prediction form. Pointers tell a missing field apart from zero.
type PredictRequest struct {
	GlobalReactivePower *float64 `json:"Global_reactive_power" form:"Global_reactive_power" validate:"required,min=0" example:"0.12"`
	Voltage             *float64 `json:"Voltage" form:"Voltage" validate:"required,gt=0" example:"240.8"`
	GlobalIntensity     *float64 `json:"Global_intensity" form:"Global_intensity" validate:"required,min=0" example:"4.6"`
	SubMetering1        *float64 `json:"Sub_metering_1" form:"Sub_metering_1" validate:"required,min=0" example:"1.1"`
	SubMetering2        *float64 `json:"Sub_metering_2" form:"Sub_metering_2" validate:"required,min=0" example:"1.3"`
	SubMetering3        *float64 `json:"Sub_metering_3" form:"Sub_metering_3" validate:"required,min=0" example:"6.4"`
}

func (r *PredictRequest) Features() map[string]float64 {
	features := make(map[string]float64, len(predict.Features))
	for name, v := range map[string]*float64{
		predict.FeatureGlobalReactivePower: r.GlobalReactivePower,
		predict.FeatureVoltage:             r.Voltage,
		predict.FeatureGlobalIntensity:     r.GlobalIntensity,
		predict.FeatureSubMetering1:        r.SubMetering1,
		predict.FeatureSubMetering2:        r.SubMetering2,
		predict.FeatureSubMetering3:        r.SubMetering3,
	} {
		if v != nil {
			features[name] = *v
		}
	}
	return features
}

type PredictResponse struct {
	*predict.Prediction
	Features []string `json:"features"`
}
