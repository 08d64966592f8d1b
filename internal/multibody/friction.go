package multibody

import (
	"errors"
	"fmt"
	"math"

	"rolling-sphere/internal/geometry"
)

// ErrInvalidFriction is returned for coefficients that are negative, not finite,
// or where the dynamic coefficient exceeds the static one.
var ErrInvalidFriction = errors.New("invalid coulomb friction")

// CoulombFriction holds static and dynamic friction coefficients.
type CoulombFriction struct {
	Static  float64 `json:"static"`
	Dynamic float64 `json:"dynamic"`
}

// NewCoulombFriction requires static >= dynamic >= 0.
func NewCoulombFriction(static, dynamic float64) (CoulombFriction, error) {
	for _, c := range []float64{static, dynamic} {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return CoulombFriction{}, fmt.Errorf("coefficient %v: %w", c, ErrInvalidFriction)
		}
	}
	if dynamic > static {
		return CoulombFriction{}, fmt.Errorf("dynamic %v > static %v: %w", dynamic, static, ErrInvalidFriction)
	}
	return CoulombFriction{Static: static, Dynamic: dynamic}, nil
}

// AddContactMaterial adds elastic modulus, Hunt-Crossley dissipation, and friction
// to the material group of props. Any property that is already present is an error,
// and a failed call leaves props unchanged.
func AddContactMaterial(elasticModulus, dissipation float64, friction CoulombFriction, props *geometry.ProximityProperties) error {
	if props == nil {
		return errors.New("contact material: nil properties")
	}
	if elasticModulus <= 0 || math.IsNaN(elasticModulus) {
		return fmt.Errorf("contact material: elastic modulus %v must be positive", elasticModulus)
	}
	if dissipation < 0 || math.IsNaN(dissipation) {
		return fmt.Errorf("contact material: dissipation %v must be non-negative", dissipation)
	}
	for _, name := range []string{geometry.ElasticModulus, geometry.HuntCrossleyDissipation, geometry.CoulombFrictionName} {
		if props.HasProperty(geometry.MaterialGroup, name) {
			return fmt.Errorf("contact material: %s/%s: %w", geometry.MaterialGroup, name, geometry.ErrPropertyExists)
		}
	}
	props.UpdateProperty(geometry.MaterialGroup, geometry.ElasticModulus, elasticModulus)
	props.UpdateProperty(geometry.MaterialGroup, geometry.HuntCrossleyDissipation, dissipation)
	props.UpdateProperty(geometry.MaterialGroup, geometry.CoulombFrictionName, friction)
	return nil
}
