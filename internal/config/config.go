package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"rolling-sphere/internal/multibody"
	"rolling-sphere/internal/rollingsphere"
)

// DefaultScenePath is the scene file used when neither a flag nor ROLLING_SPHERE_CONFIG names one.
const DefaultScenePath = "config/scene.yaml"

// EnvScenePath names the environment variable that overrides DefaultScenePath.
const EnvScenePath = "ROLLING_SPHERE_CONFIG"

//go:embed scene.schema.json
var sceneSchemaJSON string

const sceneSchemaURL = "https://rolling-sphere.local/scene.schema.json"

// Scene is the YAML scene file (e.g. config/scene.yaml).
type Scene struct {
	Ball       Ball       `yaml:"ball"`
	Ground     Ground     `yaml:"ground"`
	Gravity    [3]float64 `yaml:"gravity"`
	SceneGraph bool       `yaml:"scene_graph"`
}

type Ball struct {
	Radius         float64  `yaml:"radius"`
	Mass           float64  `yaml:"mass"`
	ElasticModulus float64  `yaml:"elastic_modulus"`
	Dissipation    float64  `yaml:"dissipation"`
	Friction       Friction `yaml:"friction"`
	// InitialHeight is where the viewer places the ball center; it does not affect the model.
	InitialHeight float64 `yaml:"initial_height"`
}

type Friction struct {
	Static  float64 `yaml:"static"`
	Dynamic float64 `yaml:"dynamic"`
}

type Ground struct {
	Size float64 `yaml:"size"`
}

// Default returns the scene built from rollingsphere.DefaultParams, resting on the ground,
// with geometry registration enabled.
func Default() Scene {
	p := rollingsphere.DefaultParams()
	return Scene{
		Ball: Ball{
			Radius:         p.Radius,
			Mass:           p.Mass,
			ElasticModulus: p.ElasticModulus,
			Dissipation:    p.Dissipation,
			Friction:       Friction{Static: p.Friction.Static, Dynamic: p.Friction.Dynamic},
			InitialHeight:  p.Radius,
		},
		Ground:     Ground{Size: p.GroundSize},
		Gravity:    [3]float64(p.Gravity),
		SceneGraph: true,
	}
}

// Load reads and validates the scene file at path.
func Load(path string) (Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}
	s, err := Parse(raw)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse validates raw YAML against the scene schema and decodes it over Default.
func Parse(raw []byte) (Scene, error) {
	if err := validate(raw); err != nil {
		return Scene{}, err
	}
	s := Default()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Scene{}, fmt.Errorf("scene yaml: %w", err)
	}
	return s, nil
}

func validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("scene yaml: %w", err)
	}
	if doc == nil {
		return nil
	}
	// The validator expects values decoded by encoding/json, so round-trip through it.
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("scene yaml: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("scene yaml: %w", err)
	}
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("scene schema: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(sceneSchemaURL, bytes.NewReader([]byte(sceneSchemaJSON))); err != nil {
		return nil, fmt.Errorf("scene schema: %w", err)
	}
	s, err := c.Compile(sceneSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("scene schema: %w", err)
	}
	return s, nil
}

// Params converts the scene into builder parameters. Friction coefficients are checked here
// since the schema cannot express static >= dynamic.
func (s Scene) Params() (rollingsphere.Params, error) {
	var p rollingsphere.Params
	if err := copier.Copy(&p, &s.Ball); err != nil {
		return p, fmt.Errorf("scene params: %w", err)
	}
	f, err := multibody.NewCoulombFriction(s.Ball.Friction.Static, s.Ball.Friction.Dynamic)
	if err != nil {
		return p, fmt.Errorf("scene params: %w", err)
	}
	p.Friction = f
	p.Gravity = mgl64.Vec3(s.Gravity)
	p.GroundSize = s.Ground.Size
	return p, nil
}
