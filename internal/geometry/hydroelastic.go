package geometry

import (
	"fmt"
	"math"
)

// HydroelasticCompliance selects how a geometry is represented in hydroelastic contact.
type HydroelasticCompliance string

const (
	ComplianceRigid HydroelasticCompliance = "rigid"
	ComplianceSoft  HydroelasticCompliance = "soft"
)

// AddRigidHydroelasticProperties marks props as a rigid hydroelastic geometry.
// resolutionHint is the characteristic mesh edge length; it must be positive.
func AddRigidHydroelasticProperties(resolutionHint float64, props *ProximityProperties) error {
	return addHydroelastic(ComplianceRigid, resolutionHint, props)
}

// AddSoftHydroelasticProperties marks props as a soft (compliant) hydroelastic geometry.
func AddSoftHydroelasticProperties(resolutionHint float64, props *ProximityProperties) error {
	return addHydroelastic(ComplianceSoft, resolutionHint, props)
}

func addHydroelastic(c HydroelasticCompliance, resolutionHint float64, props *ProximityProperties) error {
	if props == nil {
		return fmt.Errorf("%s hydroelastic: nil properties", c)
	}
	if math.IsNaN(resolutionHint) || math.IsInf(resolutionHint, 0) || resolutionHint <= 0 {
		return fmt.Errorf("%s hydroelastic: resolution hint %v must be positive", c, resolutionHint)
	}
	if err := props.AddProperty(HydroelasticGroup, ComplianceType, c); err != nil {
		return fmt.Errorf("%s hydroelastic: %w", c, err)
	}
	props.UpdateProperty(HydroelasticGroup, ResolutionHint, resolutionHint)
	return nil
}
