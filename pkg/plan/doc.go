// Package plan defines the scene plan for a drilling site.
// A plan is the flat, ordered list of items (sites, boreholes, stages,
// roadways, microseismic events and reference planes) produced by
// evaluating a scene script. It is never mutated after evaluation; each
// evaluation produces a new plan.
package plan
