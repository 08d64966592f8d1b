package geometry

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrPropertyExists is returned by AddProperty when group/name is already set.
	ErrPropertyExists = errors.New("property already exists")
	// ErrPropertyMissing is returned by getters when group/name is not set.
	ErrPropertyMissing = errors.New("property not found")
)

// Property groups and names understood by the plant and the viewer.
const (
	MaterialGroup           = "material"
	ElasticModulus          = "elastic_modulus"
	HuntCrossleyDissipation = "hunt_crossley_dissipation"
	CoulombFrictionName     = "coulomb_friction"

	HydroelasticGroup = "hydroelastic"
	ComplianceType    = "compliance_type"
	ResolutionHint    = "resolution_hint"

	PhongGroup = "phong"
	Diffuse    = "diffuse"
)

// Properties is a two-level map of group -> property name -> value.
// Values are stored as given; callers read them back with GetAs.
type Properties struct {
	Entries map[string]map[string]any `json:"entries"`
}

// ProximityProperties are attached to geometry with the proximity (collision) role.
type ProximityProperties struct {
	Properties
}

// IllustrationProperties are attached to geometry with the illustration (visual) role.
type IllustrationProperties struct {
	Properties
}

// AddProperty sets group/name to value. It fails if the property already exists.
func (p *Properties) AddProperty(group, name string, value any) error {
	if p.HasProperty(group, name) {
		return fmt.Errorf("%s/%s: %w", group, name, ErrPropertyExists)
	}
	p.UpdateProperty(group, name, value)
	return nil
}

// UpdateProperty sets group/name to value, replacing any existing value.
func (p *Properties) UpdateProperty(group, name string, value any) {
	if p.Entries == nil {
		p.Entries = make(map[string]map[string]any)
	}
	g, ok := p.Entries[group]
	if !ok {
		g = make(map[string]any)
		p.Entries[group] = g
	}
	g[name] = value
}

func (p *Properties) HasGroup(group string) bool {
	_, ok := p.Entries[group]
	return ok
}

func (p *Properties) HasProperty(group, name string) bool {
	_, ok := p.Entries[group][name]
	return ok
}

// Get returns the raw value of group/name.
func (p *Properties) Get(group, name string) (any, error) {
	v, ok := p.Entries[group][name]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", group, name, ErrPropertyMissing)
	}
	return v, nil
}

// GroupNames returns the group names in sorted order.
func (p *Properties) GroupNames() []string {
	out := make([]string, 0, len(p.Entries))
	for g := range p.Entries {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// PropertyNames returns the names in group, sorted.
func (p *Properties) PropertyNames(group string) []string {
	out := make([]string, 0, len(p.Entries[group]))
	for n := range p.Entries[group] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// GetAs returns group/name converted to T. A value of a different type is an error.
func GetAs[T any](p *Properties, group, name string) (T, error) {
	var zero T
	v, err := p.Get(group, name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s/%s: have %T, want %T", group, name, v, zero)
	}
	return t, nil
}

// Clone returns a copy with its own maps. Values are copied as-is.
func (p *Properties) Clone() Properties {
	out := Properties{}
	if p.Entries == nil {
		return out
	}
	out.Entries = make(map[string]map[string]any, len(p.Entries))
	for g, names := range p.Entries {
		cp := make(map[string]any, len(names))
		for n, v := range names {
			cp[n] = v
		}
		out.Entries[g] = cp
	}
	return out
}

// NewIllustrationProperties returns illustration properties with the given diffuse color.
func NewIllustrationProperties(diffuse Rgba) IllustrationProperties {
	var props IllustrationProperties
	props.UpdateProperty(PhongGroup, Diffuse, diffuse)
	return props
}
