package geometry

import (
	"fmt"
	"math"
)

// Rgba is a color with each channel in [0, 1].
type Rgba struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

var (
	Orange = Rgba{R: 1, G: 0.55, B: 0, A: 1}
	Red    = Rgba{R: 1, G: 0, B: 0, A: 1}
	Green  = Rgba{R: 0, G: 1, B: 0, A: 1}
	Blue   = Rgba{R: 0, G: 0, B: 1, A: 1}

	// DefaultDiffuse is used for visual geometry registered without a color.
	DefaultDiffuse = Rgba{R: 0.9, G: 0.9, B: 0.9, A: 1}
)

// NewRgba returns a color, rejecting channels outside [0, 1].
func NewRgba(r, g, b, a float64) (Rgba, error) {
	for _, c := range []float64{r, g, b, a} {
		if math.IsNaN(c) || c < 0 || c > 1 {
			return Rgba{}, fmt.Errorf("rgba (%v, %v, %v, %v): channels must be in [0, 1]", r, g, b, a)
		}
	}
	return Rgba{R: r, G: g, B: b, A: a}, nil
}

func (c Rgba) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}
