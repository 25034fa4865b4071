package main

import (
	"context"
	"errors"

	"github.com/chazu/drillscene/pkg/assemble"
	"github.com/chazu/drillscene/pkg/engine"
	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/plan"
	"github.com/chazu/drillscene/pkg/scene"
	"github.com/chazu/drillscene/pkg/style"
	"go.uber.org/zap"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	theme  style.Theme
	log    *zap.Logger
}

// MaterialData is the JSON-serializable surface material.
type MaterialData struct {
	Color             string  `json:"color"`
	Opacity           float64 `json:"opacity"`
	Transparent       bool    `json:"transparent"`
	EmissiveIntensity float64 `json:"emissiveIntensity"`
	Shininess         float64 `json:"shininess"`
	Wireframe         bool    `json:"wireframe"`
	DoubleSided       bool    `json:"doubleSided"`
	Blend             string  `json:"blend"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Name     string       `json:"name"`
	Vertices []float32    `json:"vertices"`
	Normals  []float32    `json:"normals"`
	Indices  []uint32     `json:"indices"`
	Material MaterialData `json:"material"`
}

// LineData is a polyline sent to the frontend. Points are flat x,y,z
// triples.
type LineData struct {
	Name    string    `json:"name"`
	Points  []float64 `json:"points"`
	Color   string    `json:"color"`
	Opacity float64   `json:"opacity"`
	Dashed  bool      `json:"dashed"`
	Dash    float64   `json:"dash,omitempty"`
	Gap     float64   `json:"gap,omitempty"`
}

// MarkerData is a composite marker. Parts are in local coordinates; the
// frontend places the group at Position.
type MarkerData struct {
	Name     string     `json:"name"`
	Label    string     `json:"label"`
	Kind     string     `json:"kind"`
	IsSite   bool       `json:"isSite"`
	Position [3]float64 `json:"position"`
	Parts    []MeshData `json:"parts"`
	Energy   float64    `json:"energy"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Lines    []LineData      `json:"lines"`
	Markers  []MarkerData    `json:"markers"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with the default theme and a production logger.
func NewApp() *App {
	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	return NewAppWith(style.DefaultTheme(), log)
}

// NewAppWith creates an App with an explicit theme and logger.
func NewAppWith(theme style.Theme, log *zap.Logger) *App {
	return &App{
		engine: engine.NewEngine(),
		theme:  theme,
		log:    log,
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// shutdown flushes the logger.
func (a *App) shutdown(ctx context.Context) {
	_ = a.log.Sync()
}

// Theme returns the active theme so the frontend can show its legend.
func (a *App) Theme() style.Theme {
	return a.theme
}

func newResult() EvalResult {
	return EvalResult{
		Meshes:   []MeshData{},
		Lines:    []LineData{},
		Markers:  []MarkerData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
}

// Evaluate takes a scene script and returns meshes, lines, markers and
// diagnostics. This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := newResult()

	// Step 1: Evaluate the script into a scene plan.
	p, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		if errors.Is(err, engine.ErrSuperseded) {
			a.log.Debug("evaluation superseded")
		} else {
			a.log.Error("evaluate fatal error", zap.Error(err))
		}
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Validate the plan. Warnings are reported alongside the scene.
	vr := plan.ValidateAll(p)
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.String()})
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Message: e.Error()})
		}
		return result
	}

	// Step 4: Build the scene primitives.
	c, err := assemble.Assemble(p, a.theme)
	if err != nil {
		a.log.Error("assemble failed", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: "assembly failed: " + err.Error()})
		return result
	}

	// Step 5: Convert to the frontend format.
	for _, s := range c.Solids {
		result.Meshes = append(result.Meshes, meshData(s))
	}
	for _, cv := range c.Curves {
		result.Lines = append(result.Lines, lineData(cv))
	}
	for _, m := range c.Markers {
		result.Markers = append(result.Markers, markerData(m))
	}

	a.log.Info("scene evaluated",
		zap.Int("items", p.Len()),
		zap.Int("meshes", len(result.Meshes)),
		zap.Int("lines", len(result.Lines)),
		zap.Int("markers", len(result.Markers)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result
}

func materialData(m style.Material) MaterialData {
	return MaterialData{
		Color:             m.Color.Hex(),
		Opacity:           m.Opacity,
		Transparent:       m.Transparent(),
		EmissiveIntensity: m.EmissiveIntensity,
		Shininess:         m.Shininess,
		Wireframe:         m.Wireframe,
		DoubleSided:       m.DoubleSided,
		Blend:             m.Blend.String(),
	}
}

func meshData(s scene.Solid) MeshData {
	md := MeshData{
		Name:     s.Name,
		Vertices: []float32{},
		Normals:  []float32{},
		Indices:  []uint32{},
		Material: materialData(s.Material),
	}
	if s.Mesh != nil {
		md.Vertices = append(md.Vertices, s.Mesh.Vertices...)
		md.Normals = append(md.Normals, s.Mesh.Normals...)
		md.Indices = append(md.Indices, s.Mesh.Indices...)
	}
	return md
}

func lineData(c scene.Curve) LineData {
	pts := make([]float64, 0, 3*len(c.Points))
	for _, p := range c.Points {
		pts = append(pts, p.X, p.Y, p.Z)
	}
	return LineData{
		Name:    c.Name,
		Points:  pts,
		Color:   c.Material.Color.Hex(),
		Opacity: c.Material.Opacity,
		Dashed:  c.Material.Style == style.LineDashed,
		Dash:    c.Material.Dash,
		Gap:     c.Material.Gap,
	}
}

func markerData(m scene.Marker) MarkerData {
	parts := make([]MeshData, 0, len(m.Parts))
	for _, p := range m.Parts {
		parts = append(parts, meshData(p))
	}
	return MarkerData{
		Name:     m.Name,
		Label:    m.Label,
		Kind:     m.Kind.String(),
		IsSite:   m.IsSite(),
		Position: vec(m.Position),
		Parts:    parts,
		Energy:   m.Energy,
	}
}

func vec(p geom.Point3) [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}
