package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/drillscene/pkg/builder"
	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/plan"
	"github.com/chazu/drillscene/pkg/style"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: planned-depth -> planned_depth
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a scene-space point.
type sexpVec3 struct {
	vec geom.Point3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpStation wraps a geodetic survey station returned by `station`.
type sexpStation struct {
	st geom.SurveyStation
}

func (s *sexpStation) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(station %g %g %g %g)", s.st.MeasuredDepth, s.st.E, s.st.N, s.st.Z)
}
func (s *sexpStation) Type() *zygo.RegisteredType { return nil }

// sexpDesign wraps design parameters returned by `design` and consumed by
// `borehole`.
type sexpDesign struct {
	p        builder.DesignParameters
	hasStart bool
}

func (d *sexpDesign) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(design :length %g :azimuth %g :dip %g)", d.p.Length, d.p.AzimuthDegrees, d.p.DipDegrees)
}
func (d *sexpDesign) Type() *zygo.RegisteredType { return nil }

// collar is where a design given without :from starts: the first survey
// point, else the position of the borehole's site.
func collar(p *plan.Plan, d plan.BoreholeData) (geom.Point3, error) {
	if len(d.Survey) > 0 {
		return d.Survey[0], nil
	}
	if it := p.Lookup(d.Site); d.Site != "" && it != nil {
		if s, ok := it.Data.(plan.SiteData); ok {
			return s.Position, nil
		}
	}
	return geom.Point3{}, fmt.Errorf("borehole: design: :from is required when the borehole has no survey or site")
}

// sexpItemRef wraps a plan item so it can be bound with def and passed to
// other builtins.
type sexpItemRef struct {
	id   plan.ItemID
	kind plan.ItemKind
	name string
}

func (r *sexpItemRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", r.kind, r.name)
}
func (r *sexpItemRef) Type() *zygo.RegisteredType { return nil }

func itemRef(it *plan.Item) *sexpItemRef {
	return &sexpItemRef{id: it.ID, kind: it.Kind, name: it.Name}
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a point from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Point3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Point3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toColor accepts a "#rrggbb" string or an integer 0xRRGGBB.
func toColor(s zygo.Sexp) (style.Color, error) {
	switch v := s.(type) {
	case *zygo.SexpStr:
		return style.ParseColor(v.S)
	case *zygo.SexpInt:
		c := style.Color(v.Val)
		if v.Val < 0 || !c.Valid() {
			return 0, fmt.Errorf("color %#x out of range", v.Val)
		}
		return c, nil
	}
	return 0, fmt.Errorf("expected color string or integer, got %T (%s)", s, s.SexpString(nil))
}

// toName extracts an item name from a string or an item reference.
func toName(s zygo.Sexp) (string, error) {
	if ref, ok := s.(*sexpItemRef); ok {
		return ref.name, nil
	}
	return toString(s)
}

// toPoints converts a list of vec3 values.
func toPoints(s zygo.Sexp) ([]geom.Point3, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	pts := make([]geom.Point3, 0, len(items))
	for i, item := range items {
		v, err := toVec3(item)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		pts = append(pts, v)
	}
	return pts, nil
}

// toStations converts a list of station values.
func toStations(s zygo.Sexp) ([]geom.SurveyStation, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]geom.SurveyStation, 0, len(items))
	for i, item := range items {
		st, ok := item.(*sexpStation)
		if !ok {
			return nil, fmt.Errorf("station %d: expected station, got %T (%s)", i, item, item.SexpString(nil))
		}
		out = append(out, st.st)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Keyword accessors
// ---------------------------------------------------------------------------

// float stores keyword key into dst if present. A missing keyword leaves dst
// unchanged; required keywords go through requireFloat.
func (pa kwArgs) float(fn, key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = f
	return nil
}

func (pa kwArgs) requireFloat(fn, key string, dst *float64) error {
	if _, ok := pa.kw[key]; !ok {
		return fmt.Errorf("%s: :%s is required", fn, key)
	}
	return pa.float(fn, key, dst)
}

func (pa kwArgs) vec(fn, key string, dst *geom.Point3) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	p, err := toVec3(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = p
	return nil
}

func (pa kwArgs) str(fn, key string, dst *string) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = s
	return nil
}

func (pa kwArgs) color(fn string) (*style.Color, error) {
	v, ok := pa.kw["color"]
	if !ok {
		return nil, nil
	}
	c, err := toColor(v)
	if err != nil {
		return nil, fmt.Errorf("%s: color: %w", fn, err)
	}
	return &c, nil
}

// name returns the first positional argument as the item name.
func (pa kwArgs) name(fn string) (string, error) {
	if len(pa.positional) < 1 {
		return "", fmt.Errorf("%s requires a name argument", fn)
	}
	n, err := toString(pa.positional[0])
	if err != nil {
		return "", fmt.Errorf("%s: name: %w", fn, err)
	}
	return n, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// Defaults for optional builtin arguments.
const (
	DefaultStageRadius = 2.0
	DefaultEventRadius = 1.0
)

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins append items to p during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, p *plan.Plan) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		xyz, err := numbers("vec3", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: geom.Point3{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (geodetic easting northing elevation)
	// -----------------------------------------------------------------------
	env.AddFunction("geodetic", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		enz, err := numbers("geodetic", args, "e", "n", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: geom.FromGeodetic(enz[0], enz[1], enz[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (station md easting northing elevation)
	// -----------------------------------------------------------------------
	env.AddFunction("station", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := numbers("station", args, "md", "e", "n", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpStation{st: geom.SurveyStation{MeasuredDepth: v[0], E: v[1], N: v[2], Z: v[3]}}, nil
	})

	// -----------------------------------------------------------------------
	// (offset (geodetic 512000 6210000 0))
	// -----------------------------------------------------------------------
	env.AddFunction("offset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("offset requires exactly 1 argument, got %d", len(args))
		}
		v, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		p.SetOffset(v)
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (site "name" :at (vec3 ...) :label "Pad A" :color "#ffcc00")
	// -----------------------------------------------------------------------
	env.AddFunction("site", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name("site")
		if err != nil {
			return zygo.SexpNull, err
		}
		d := plan.SiteData{Label: n}
		if err := pa.vec("site", "at", &d.Position); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.str("site", "label", &d.Label); err != nil {
			return zygo.SexpNull, err
		}
		if d.Color, err = pa.color("site"); err != nil {
			return zygo.SexpNull, err
		}
		return itemRef(p.Add(n, d)), nil
	})

	// -----------------------------------------------------------------------
	// (design :from (vec3 ...) :length 300 :azimuth 45 :dip -10)
	// Without :from the design starts at the borehole's collar.
	// -----------------------------------------------------------------------
	env.AddFunction("design", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d builder.DesignParameters
		_, hasStart := pa.kw["from"]
		if err := pa.vec("design", "from", &d.Start); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.requireFloat("design", "length", &d.Length); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.float("design", "azimuth", &d.AzimuthDegrees); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.float("design", "dip", &d.DipDegrees); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpDesign{p: d, hasStart: hasStart}, nil
	})

	// -----------------------------------------------------------------------
	// (borehole "name" :survey (list (vec3 ...) ...) :design (design ...)
	//           :site "pad" :segments 12 :diameter 0.096 :color "#00ff00")
	// (borehole "name" :stations (list (station md e n z) ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("borehole", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name("borehole")
		if err != nil {
			return zygo.SexpNull, err
		}
		d := plan.BoreholeData{
			Survey:          []geom.Point3{},
			PlannedSegments: geom.DefaultPlannedSegments,
			Diameter:        plan.DefaultBoreholeDiameter,
		}

		_, hasSurvey := pa.kw["survey"]
		_, hasStations := pa.kw["stations"]
		switch {
		case hasSurvey && hasStations:
			return zygo.SexpNull, fmt.Errorf("borehole: use either :survey or :stations, not both")
		case hasSurvey:
			if d.Survey, err = toPoints(pa.kw["survey"]); err != nil {
				return zygo.SexpNull, fmt.Errorf("borehole: survey: %w", err)
			}
		case hasStations:
			st, err := toStations(pa.kw["stations"])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("borehole: stations: %w", err)
			}
			d.Survey = geom.SurveyPoints(st)
		}

		if v, ok := pa.kw["site"]; ok {
			if d.Site, err = toName(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("borehole: site: %w", err)
			}
		}
		if v, ok := pa.kw["design"]; ok {
			ds, ok := v.(*sexpDesign)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("borehole: design: expected design, got %T (%s)", v, v.SexpString(nil))
			}
			dp := ds.p
			if !ds.hasStart {
				if dp.Start, err = collar(p, d); err != nil {
					return zygo.SexpNull, err
				}
			}
			d.Design = &dp
		}
		if v, ok := pa.kw["segments"]; ok {
			if d.PlannedSegments, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("borehole: segments: %w", err)
			}
		}
		if err := pa.float("borehole", "diameter", &d.Diameter); err != nil {
			return zygo.SexpNull, err
		}
		if d.Color, err = pa.color("borehole"); err != nil {
			return zygo.SexpNull, err
		}
		return itemRef(p.Add(n, d)), nil
	})

	// -----------------------------------------------------------------------
	// (stage "borehole" 3 :radius 2 :color "#ff00ff" :name "s3")
	// -----------------------------------------------------------------------
	env.AddFunction("stage", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("stage requires a borehole and a stage number")
		}
		bh, err := toName(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("stage: borehole: %w", err)
		}
		num, err := toInt(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("stage: number: %w", err)
		}
		d := plan.StageData{Borehole: bh, Number: num, Radius: DefaultStageRadius}
		if err := pa.float("stage", "radius", &d.Radius); err != nil {
			return zygo.SexpNull, err
		}
		if d.Color, err = pa.color("stage"); err != nil {
			return zygo.SexpNull, err
		}
		itemName := fmt.Sprintf("%s/stage-%d", bh, num)
		if err := pa.str("stage", "name", &itemName); err != nil {
			return zygo.SexpNull, err
		}
		return itemRef(p.Add(itemName, d)), nil
	})

	// -----------------------------------------------------------------------
	// (roadway "name" :path (list (vec3 ...) ...) :width 4 :height 3)
	// -----------------------------------------------------------------------
	env.AddFunction("roadway", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := pa.name("roadway")
		if err != nil {
			return zygo.SexpNull, err
		}
		d := plan.RoadwayData{Path: []geom.Point3{}}
		if v, ok := pa.kw["path"]; ok {
			if d.Path, err = toPoints(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("roadway: path: %w", err)
			}
		}
		if err := pa.requireFloat("roadway", "width", &d.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.requireFloat("roadway", "height", &d.Height); err != nil {
			return zygo.SexpNull, err
		}
		if d.Color, err = pa.color("roadway"); err != nil {
			return zygo.SexpNull, err
		}
		return itemRef(p.Add(n, d)), nil
	})

	// -----------------------------------------------------------------------
	// (event :at (vec3 ...) :radius 1.5 :energy 2.3 :name "ev-7")
	// -----------------------------------------------------------------------
	env.AddFunction("event", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		d := plan.EventData{Radius: DefaultEventRadius}
		if _, ok := pa.kw["at"]; !ok {
			return zygo.SexpNull, fmt.Errorf("event: :at is required")
		}
		if err := pa.vec("event", "at", &d.Position); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.float("event", "radius", &d.Radius); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.float("event", "energy", &d.Energy); err != nil {
			return zygo.SexpNull, err
		}
		var err error
		if d.Color, err = pa.color("event"); err != nil {
			return zygo.SexpNull, err
		}
		var itemName string
		if err := pa.str("event", "name", &itemName); err != nil {
			return zygo.SexpNull, err
		}
		return itemRef(p.Add(itemName, d)), nil
	})

	// -----------------------------------------------------------------------
	// (seam :center (vec3 ...) :width 400 :depth 400 :thickness 3.5)
	// -----------------------------------------------------------------------
	env.AddFunction("seam", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d plan.SeamData
		if err := pa.vec("seam", "center", &d.Center); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.requireFloat("seam", "width", &d.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.requireFloat("seam", "depth", &d.Depth); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.requireFloat("seam", "thickness", &d.Thickness); err != nil {
			return zygo.SexpNull, err
		}
		var err error
		if d.Color, err = pa.color("seam"); err != nil {
			return zygo.SexpNull, err
		}
		var itemName string
		if err := pa.str("seam", "name", &itemName); err != nil {
			return zygo.SexpNull, err
		}
		return itemRef(p.Add(itemName, d)), nil
	})

	// -----------------------------------------------------------------------
	// (roof :center (vec3 ...) :width 400 :depth 400 :offset 15)
	// -----------------------------------------------------------------------
	env.AddFunction("roof", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d plan.RoofData
		if err := pa.vec("roof", "center", &d.Center); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.requireFloat("roof", "width", &d.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.requireFloat("roof", "depth", &d.Depth); err != nil {
			return zygo.SexpNull, err
		}
		if _, ok := pa.kw["offset"]; ok {
			var off float64
			if err := pa.float("roof", "offset", &off); err != nil {
				return zygo.SexpNull, err
			}
			d.Offset = &off
		}
		var err error
		if d.Color, err = pa.color("roof"); err != nil {
			return zygo.SexpNull, err
		}
		var itemName string
		if err := pa.str("roof", "name", &itemName); err != nil {
			return zygo.SexpNull, err
		}
		return itemRef(p.Add(itemName, d)), nil
	})
}

// numbers converts exactly len(names) positional numeric arguments.
func numbers(fn string, args []zygo.Sexp, names ...string) ([]float64, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", fn, len(names), len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
		out[i] = f
	}
	return out, nil
}
