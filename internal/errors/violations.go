package errors

import "strings"

// Violations accumulates domain errors so that validating factories can
// report every broken rule in one result instead of failing on the first.
// Collection mutators do the opposite and short-circuit; only constructors
// should reach for this type.
type Violations struct {
	errs []*Error
}

// Add records a violation. Nil errors are ignored so callers can append
// the result of a check unconditionally.
func (v *Violations) Add(err *Error) {
	if err != nil {
		v.errs = append(v.errs, err)
	}
}

// Check records a validation violation with the given message when ok is false.
func (v *Violations) Check(ok bool, msg string) {
	if !ok {
		v.Add(Validation(msg))
	}
}

// Empty reports whether no violations were recorded.
func (v *Violations) Empty() bool {
	return len(v.errs) == 0
}

// Errors returns the recorded violations in the order they were added.
func (v *Violations) Errors() []*Error {
	return v.errs
}

// Err returns a single error carrying every recorded violation, or nil if
// none were recorded. A lone violation is returned as-is; multiple
// violations are folded into one validation error with the individual
// errors attached as details.
func (v *Violations) Err() *Error {
	switch len(v.errs) {
	case 0:
		return nil
	case 1:
		return v.errs[0]
	default:
		msgs := make([]string, len(v.errs))
		for i, e := range v.errs {
			msgs[i] = e.Message
		}
		return ValidationWithDetails(strings.Join(msgs, "; "), v.errs)
	}
}
