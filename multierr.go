package soundgraph

import (
	"errors"
	"strings"
)

// playErrors wraps errors that might occur when multiple sinks are
// failing.
type playErrors []error

func (e playErrors) Error() string {
	s := []string{}
	for _, se := range e {
		s = append(s, se.Error())
	}
	return strings.Join(s, ", ")
}

// Is reports whether any of wrapped errors matches target.
func (e playErrors) Is(target error) bool {
	for _, se := range e {
		if errors.Is(se, target) {
			return true
		}
	}
	return false
}

// ret returns untyped nil if error list is empty.
func (e playErrors) ret() error {
	if len(e) > 0 {
		return e
	}
	return nil
}
