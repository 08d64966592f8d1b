package viewer

import (
	"math"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"rolling-sphere/internal/geometry"
)

const (
	sphereRings    = 24
	sphereSlices   = 24
	cylinderSlices = 24
)

// shapeCache maps shape kinds to a unit mesh. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type shapeCache struct {
	meshes   map[string]rl.Mesh
	mtl      rl.Material
	ready    bool
	viewPos  [3]float32
	lightDir [3]float32
}

func newShapeCache() *shapeCache {
	return &shapeCache{
		meshes:   make(map[string]rl.Mesh),
		lightDir: [3]float32{0.4, -0.6, 1}, // from above, slightly in front
	}
}

// ensure creates the unit meshes and the lit material. Unit meshes: cube of side 1,
// sphere of radius 0.5, cylinder of radius 0.5 and height 1 along +Y with its base at Y = 0.
func (c *shapeCache) ensure() {
	if c.ready {
		return
	}
	c.meshes["box"] = rl.GenMeshCube(1, 1, 1)
	c.meshes["sphere"] = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	c.meshes["cylinder"] = rl.GenMeshCylinder(0.5, 1, cylinderSlices)
	c.mtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		c.mtl.Shader = shader
	}
	c.ready = true
}

// setView sets camera position for this frame's specular term.
func (c *shapeCache) setView(viewPos [3]float32) {
	c.viewPos = viewPos
}

// meshCorrection maps the unit mesh of kind onto the unit shape in its own frame:
// the raylib cylinder is re-centered and turned so its axis is +z.
func meshCorrection(kind string) mgl64.Mat4 {
	if kind != "cylinder" {
		return mgl64.Ident4()
	}
	return mgl64.HomogRotate3DX(math.Pi / 2).Mul4(mgl64.Translate3D(0, -0.5, 0))
}

// meshScale returns the scale taking the unit mesh to the shape's dimensions.
func meshScale(kind string, dims []float64) (mgl64.Vec3, bool) {
	switch {
	case kind == "box" && len(dims) == 3:
		return mgl64.Vec3{dims[0], dims[1], dims[2]}, true
	case kind == "sphere" && len(dims) == 1:
		d := 2 * dims[0]
		return mgl64.Vec3{d, d, d}, true
	case kind == "cylinder" && len(dims) == 2:
		d := 2 * dims[0]
		return mgl64.Vec3{d, d, dims[1]}, true
	default:
		return mgl64.Vec3{}, false
	}
}

// modelMatrix returns the world pose * scale * mesh correction as a raylib matrix.
func modelMatrix(pose geometry.RigidTransform, kind string, dims []float64) (rl.Matrix, bool) {
	s, ok := meshScale(kind, dims)
	if !ok {
		return rl.Matrix{}, false
	}
	t := pose.Translation
	m := mgl64.Translate3D(t.X(), t.Y(), t.Z()).
		Mul4(pose.Rotation.Mat4()).
		Mul4(mgl64.Scale3D(s.X(), s.Y(), s.Z())).
		Mul4(meshCorrection(kind))
	return toRaylib(m), true
}

// toRaylib converts a column-major mgl64 matrix into raylib's layout (also column-major by index).
func toRaylib(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M4: float32(m[4]), M8: float32(m[8]), M12: float32(m[12]),
		M1: float32(m[1]), M5: float32(m[5]), M9: float32(m[9]), M13: float32(m[13]),
		M2: float32(m[2]), M6: float32(m[6]), M10: float32(m[10]), M14: float32(m[14]),
		M3: float32(m[3]), M7: float32(m[7]), M11: float32(m[11]), M15: float32(m[15]),
	}
}

// toColor converts a [0, 1] color to 8-bit channels, clamping out-of-range values.
func toColor(c geometry.Rgba) rl.Color {
	ch := func(v float64) uint8 {
		f := math32.Max(0, math32.Min(1, float32(v)))
		return uint8(math32.Floor(f*255 + 0.5))
	}
	return rl.NewColor(ch(c.R), ch(c.G), ch(c.B), ch(c.A))
}

// draw renders one shape. Unknown kinds are skipped.
// Must be called between BeginMode3D and EndMode3D.
func (c *shapeCache) draw(pose geometry.RigidTransform, kind string, dims []float64, color geometry.Rgba) {
	c.ensure()
	mesh, ok := c.meshes[kind]
	if !ok {
		return
	}
	transform, ok := modelMatrix(pose, kind, dims)
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = toColor(color)
	}
	c.setLitShaderUniforms()
	rl.DrawMesh(mesh, c.mtl, transform)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = normalize(mat3(matNormal) * vertexNormal);
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

var (
	defaultAmbient    = [4]float32{0.2, 0.22, 0.26, 1.0}
	defaultLightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	defaultLightIntensity   = float32(0.8)
	defaultSpecularPower    = float32(48.0)
	defaultSpecularStrength = float32(0.35)
)

// setLitShaderUniforms sets view, light, ambient, and specular uniforms (cgo-safe: local arrays).
func (c *shapeCache) setLitShaderUniforms() {
	shader := c.mtl.Shader
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{c.viewPos[0], c.viewPos[1], c.viewPos[2]}
	lightDir := [3]float32{c.lightDir[0], c.lightDir[1], c.lightDir[2]}
	amb := defaultAmbient
	lightColor := defaultLightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}
