package plan

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks assembly
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks assembly
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ItemID   ItemID             // which item has the problem (zero if plan-level)
	Item     string             // item name
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.ItemID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Item, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	ItemID  ItemID
	Item    string
	Message string
}

func (w ValidationWarning) String() string {
	if w.ItemID.IsZero() {
		return w.Message
	}
	return w.Item + ": " + w.Message
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

func errorAt(it *Item, format string, args ...any) ValidationError {
	return ValidationError{
		ItemID:   it.ID,
		Item:     it.Name,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
	}
}

func warningAt(it *Item, format string, args ...any) ValidationWarning {
	return ValidationWarning{ItemID: it.ID, Item: it.Name, Message: fmt.Sprintf(format, args...)}
}

// Validate runs the Tier 1 structural checks and returns the findings. An
// empty slice means the plan is structurally valid. It never mutates the
// plan.
func Validate(p *Plan) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateKinds(p)...)
	errs = append(errs, validateNames(p)...)
	errs = append(errs, validateReferences(p)...)
	return errs
}

// ValidateAll runs all tiers (structural, geometric, advisory) and returns
// the errors and warnings separately.
func ValidateAll(p *Plan) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(p) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{ItemID: e.ItemID, Item: e.Item, Message: e.Message})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	result.Errors = append(result.Errors, validateGeometry(p)...)
	result.Warnings = append(result.Warnings, validateAdvisory(p)...)
	return result
}

// validateKinds checks that every item has a payload matching its kind.
func validateKinds(p *Plan) []ValidationError {
	var errs []ValidationError
	for _, it := range p.Items {
		kind, ok := kindOf(it.Data)
		switch {
		case !ok:
			errs = append(errs, errorAt(it, "item has no data"))
		case kind != it.Kind:
			errs = append(errs, errorAt(it, "%s item carries %s data", it.Kind, kind))
		}
	}
	return errs
}

// validateNames checks that names are non-empty and unique across the plan
// and that the name index agrees with the item list.
func validateNames(p *Plan) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int)
	for _, it := range p.Items {
		if it.Name == "" {
			errs = append(errs, errorAt(it, "item has no name"))
			continue
		}
		seen[it.Name]++
		if seen[it.Name] == 2 {
			errs = append(errs, errorAt(it, "duplicate name %q", it.Name))
		}
	}
	for name, id := range p.NameIndex {
		if p.Get(id) == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent item %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateReferences checks that stage and site references resolve to an
// item of the right kind.
func validateReferences(p *Plan) []ValidationError {
	var errs []ValidationError
	for _, it := range p.Items {
		switch d := it.Data.(type) {
		case StageData:
			if err := p.checkRef(it, "borehole", d.Borehole, ItemBorehole); err != nil {
				errs = append(errs, *err)
			}
		case BoreholeData:
			if d.Site == "" {
				continue
			}
			if err := p.checkRef(it, "site", d.Site, ItemSite); err != nil {
				errs = append(errs, *err)
			}
		}
	}
	return errs
}

func (p *Plan) checkRef(it *Item, field, name string, want ItemKind) *ValidationError {
	target := p.Lookup(name)
	switch {
	case target == nil:
		e := errorAt(it, "%s reference %q does not exist", field, name)
		return &e
	case target.Kind != want:
		e := errorAt(it, "%s reference %q is a %s, not a %s", field, name, target.Kind, want)
		return &e
	}
	return nil
}
