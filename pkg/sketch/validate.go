package sketch

import "fmt"

// ValidationSeverity indicates whether a finding blocks generation or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks generation
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

// ValidationError describes a single finding. Drawing and Polygon are -1
// when the finding is not tied to one.
type ValidationError struct {
	Drawing  int
	Polygon  int
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	switch {
	case e.Drawing < 0:
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	case e.Polygon < 0:
		return fmt.Sprintf("[%s] drawing %d: %s", e.Severity, e.Drawing, e.Message)
	default:
		return fmt.Sprintf("[%s] drawing %d polygon %d: %s", e.Severity, e.Drawing, e.Polygon, e.Message)
	}
}

// ValidationResult separates blocking errors from warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Validate runs every check on the model and returns all findings. It never
// mutates the model.
func Validate(m Model, grid float64) ValidationResult {
	var all []ValidationError
	all = append(all, validateDrawingCount(m)...)
	all = append(all, validateAxes(m)...)
	all = append(all, validateColor(m)...)
	all = append(all, validatePolygons(m, grid)...)

	var res ValidationResult
	for _, e := range all {
		if e.Severity == SeverityError {
			res.Errors = append(res.Errors, e)
		} else {
			res.Warnings = append(res.Warnings, e)
		}
	}
	return res
}

// Check returns the first blocking finding wrapped in ErrInvalidModel, or
// nil. Warnings never fail the check.
func Check(m Model) error {
	res := Validate(m, 0)
	if len(res.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidModel, res.Errors[0].Error())
}

func validateDrawingCount(m Model) []ValidationError {
	if len(m.Drawings) <= MaxDrawings {
		return nil
	}
	return []ValidationError{{
		Drawing:  -1,
		Polygon:  -1,
		Message:  fmt.Sprintf("model has %d drawings, at most %d allowed", len(m.Drawings), MaxDrawings),
		Severity: SeverityError,
	}}
}

func validateAxes(m Model) []ValidationError {
	var errs []ValidationError
	seen := make(map[Axis]int)
	for i, d := range m.Drawings {
		if !d.Axis.Valid() {
			errs = append(errs, ValidationError{
				Drawing:  i,
				Polygon:  -1,
				Message:  fmt.Sprintf("unknown axis %s", d.Axis),
				Severity: SeverityError,
			})
			continue
		}
		if prev, ok := seen[d.Axis]; ok {
			errs = append(errs, ValidationError{
				Drawing:  i,
				Polygon:  -1,
				Message:  fmt.Sprintf("axis %s already used by drawing %d", d.Axis, prev),
				Severity: SeverityError,
			})
			continue
		}
		seen[d.Axis] = i
	}
	return errs
}

func validateColor(m Model) []ValidationError {
	if m.Color.Valid() {
		return nil
	}
	return []ValidationError{{
		Drawing:  -1,
		Polygon:  -1,
		Message:  fmt.Sprintf("color %s has a channel outside [0,1]", m.Color),
		Severity: SeverityError,
	}}
}

// validatePolygons flags outlines that will collapse to nothing and points
// off the grid. A zero grid skips the bounds check.
func validatePolygons(m Model, grid float64) []ValidationError {
	var warnings []ValidationError
	for i, d := range m.Drawings {
		for j, p := range d.Polygons {
			if p.IsEmpty() {
				continue
			}
			if p.Len() < 3 || p.Area() == 0 {
				warnings = append(warnings, ValidationError{
					Drawing:  i,
					Polygon:  j,
					Message:  fmt.Sprintf("degenerate outline with %d points encloses no area", p.Len()),
					Severity: SeverityWarning,
				})
			}
			if grid > 0 && !p.InGrid(grid) {
				warnings = append(warnings, ValidationError{
					Drawing:  i,
					Polygon:  j,
					Message:  fmt.Sprintf("outline leaves the %gx%g grid", grid, grid),
					Severity: SeverityWarning,
				})
			}
		}
	}
	return warnings
}
