// Package geom holds the scene-space point type and the small pure helpers
// that prepare raw survey data for the builders: coordinate alignment,
// geodetic mapping, fracture-stage placement and finite-value checks.
//
// Scene space is right-handed with +Y up. Geodetic east maps to +X and
// geodetic north maps to -Z.
package geom
