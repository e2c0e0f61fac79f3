package diag

import (
	"errors"
	"fmt"

	"github.com/born-ml/dlr/internal/tensor"
)

// ErrPrecondition is matched by every rigor-mode violation.
var ErrPrecondition = errors.New("precondition violated")

// PreconditionError describes one failed rigor-mode check.
type PreconditionError struct {
	Op     string // kernel name, e.g. "conv2d"
	Check  string // the violated condition, e.g. "kernel_size odd"
	Detail string // offending values
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Check, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Check)
}

// Unwrap returns ErrPrecondition.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// Must panics if err is non-nil.
// It restores fail-fast behavior for callers that treat a violation as a bug.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Checker accumulates precondition violations for one kernel call.
type Checker struct {
	op   string
	errs []error
}

// NewChecker returns a Checker reporting violations against op.
func NewChecker(op string) *Checker {
	return &Checker{op: op}
}

// Require records a violation of check when ok is false.
func (c *Checker) Require(ok bool, check, format string, args ...any) {
	if ok {
		return
	}
	c.errs = append(c.errs, &PreconditionError{
		Op:     c.op,
		Check:  check,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Positive requires v > 0.
func (c *Checker) Positive(name string, v int) {
	c.Require(v > 0, name+" > 0", "%s=%d", name, v)
}

// NonNegative requires v >= 0.
func (c *Checker) NonNegative(name string, v int) {
	c.Require(v >= 0, name+" >= 0", "%s=%d", name, v)
}

// Dims requires every dimension of s to be positive. names labels the
// dimensions in order; each offending one is reported as "<name> > 0".
func (c *Checker) Dims(s tensor.Shape, names ...string) {
	var de *tensor.DimError
	if !errors.As(s.Validate(), &de) {
		return
	}
	for _, i := range de.Dims {
		c.Require(false, names[i]+" > 0", "%s=%d", names[i], s[i])
	}
}

// Len requires a buffer to hold exactly want elements.
func (c *Checker) Len(name string, got, want int) {
	c.Require(got == want, name+" length", "got %d, want %d", got, want)
}

// OptionalLen requires a buffer to be empty or hold exactly want elements.
func (c *Checker) OptionalLen(name string, got, want int) {
	c.Require(got == 0 || got == want, name+" length 0 or "+fmt.Sprint(want), "got %d", got)
}

// Err returns the joined violations, or nil.
func (c *Checker) Err() error {
	return errors.Join(c.errs...)
}
