// Package render draws road pieces with raylib: a cached cube mesh under a lit shader, tinted
// per piece, plus connection-point gizmos. It also provides the preview material duplicates.
package render

import (
	"errors"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"road-editor/internal/feedback"
	"road-editor/internal/piece"
)

const (
	gizmoRadius = 0.06
	gizmoRay    = 0.35
)

var (
	defaultPieceColor = rl.NewColor(128, 128, 128, 255)
	occupiedColor     = rl.NewColor(230, 40, 40, 255)
	freeColor         = rl.NewColor(40, 220, 40, 255)
	forwardColor      = rl.NewColor(40, 90, 240, 255)
)

// Renderer caches GPU resources. Mesh and shader are created on first use so that they are
// allocated after the window/OpenGL context exists.
type Renderer struct {
	meshes map[string]rl.Mesh
	base   rl.Material
	shader rl.Shader
	ready  bool

	viewPos  rl.Vector3
	lightDir rl.Vector3

	colors    map[string]color.RGBA
	materials *Materials
}

// NewRenderer returns a renderer with nothing loaded.
func NewRenderer() *Renderer {
	r := &Renderer{
		lightDir: rl.NewVector3(0.5, 1, 0.5),
		colors:   make(map[string]color.RGBA),
	}
	r.materials = newMaterials(r.loadDuplicate, unloadDuplicate)
	return r
}

// Materials returns the preview material provider backed by this renderer.
func (r *Renderer) Materials() *Materials { return r.materials }

// SetView sets camera position and direction-to-light for this frame.
func (r *Renderer) SetView(viewPos, lightDir rl.Vector3) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

func (r *Renderer) ensure() {
	if r.ready {
		return
	}
	r.meshes = map[string]rl.Mesh{
		"cube": rl.GenMeshCube(1, 1, 1),
		// Unit quad in XZ; drawn at the top face of the collision box.
		"plane": rl.GenMeshPlane(1, 1, 1, 1),
	}
	r.base = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(s) {
		r.shader = s
		r.base.Shader = s
	}
	r.ready = true
}

func (r *Renderer) loadDuplicate() (rl.Material, error) {
	if !rl.IsWindowReady() {
		return rl.Material{}, errors.New("no window")
	}
	r.ensure()
	m := rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.shader) {
		m.Shader = r.shader
	}
	return m, nil
}

// unloadDuplicate frees a duplicate but not the lit shader it shares with the base material.
func unloadDuplicate(m rl.Material) {
	m.Shader.ID = rl.GetShaderIdDefault()
	rl.UnloadMaterial(m)
}

// Close releases the cached GPU resources.
func (r *Renderer) Close() {
	if !r.ready {
		return
	}
	for name, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, name)
	}
	rl.UnloadMaterial(r.base)
	r.ready = false
}

// pieceColor resolves and caches the catalog color of o.
func (r *Renderer) pieceColor(o *piece.Object) color.RGBA {
	if c, ok := r.colors[o.Spec.Color]; ok {
		return c
	}
	c, err := feedback.ParseColor(o.Spec.Color)
	if err != nil {
		c = defaultPieceColor
	}
	r.colors[o.Spec.Color] = c
	return c
}

// mesh returns the mesh named by the piece spec; unknown names draw as a cube.
func (r *Renderer) mesh(o *piece.Object) (rl.Mesh, bool) {
	if m, ok := r.meshes[o.Spec.Mesh]; ok {
		return m, o.Spec.Mesh == "plane"
	}
	return r.meshes["cube"], false
}

// transform maps the unit mesh onto the piece's collision box. Planes sit on its top face.
func transform(o *piece.Object, plane bool) rl.Matrix {
	size := rl.Vector3Scale(o.HalfExtents(), 2)
	local := rl.MatrixScale(size.X, size.Y, size.Z)
	if plane {
		local = rl.MatrixMultiply(rl.MatrixScale(size.X, 1, size.Z), rl.MatrixTranslate(0, size.Y/2, 0))
	}
	c := o.Center()
	m := rl.MatrixMultiply(local, rl.QuaternionToMatrix(o.Rotation()))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(c.X, c.Y, c.Z))
}

// DrawPiece draws o with its preview duplicate when it has one, else the shared material
// tinted with the catalog color. Must be called between BeginMode3D and EndMode3D.
func (r *Renderer) DrawPiece(o *piece.Object) {
	r.ensure()
	mat, preview := r.materials.override(o.ID)
	if !preview {
		mat = r.base
		if albedo := mat.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = r.pieceColor(o)
		}
	}
	setUniforms(mat.Shader, r.viewPos, r.lightDir)
	mesh, plane := r.mesh(o)
	if preview && tint(mat).A < 255 {
		rl.BeginBlendMode(rl.BlendAlpha)
		rl.DrawMesh(mesh, mat, transform(o, plane))
		rl.EndBlendMode()
	} else {
		rl.DrawMesh(mesh, mat, transform(o, plane))
	}
	if preview {
		rl.DrawBoundingBox(o.Bounds(), tint(mat))
	}
}

// DrawGizmos draws every connection point of o: occupied red, free green, forward ray blue.
func DrawGizmos(o *piece.Object) {
	for _, p := range o.Points() {
		c := freeColor
		if p.Occupied() {
			c = occupiedColor
		}
		pos := p.Position()
		rl.DrawSphere(pos, gizmoRadius, c)
		rl.DrawLine3D(pos, rl.Vector3Add(pos, rl.Vector3Scale(p.Forward(), gizmoRay)), forwardColor)
	}
}
