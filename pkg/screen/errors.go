// pkg/screen/errors.go
package screen

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthorized means the access gate rejected the principal.
	ErrNotAuthorized = errors.New("screen: not authorized")
	// ErrActionNotFound means the named action does not exist on the screen.
	ErrActionNotFound = errors.New("screen: action not found")
	// ErrSlugNotFound means no layout node carries the requested slug.
	ErrSlugNotFound = errors.New("screen: layout slug not found")
)

// BindingError reports a parameter that could not be constructed or resolved.
type BindingError struct {
	Action string
	Param  string
	Err    error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("screen: bind %s.%s: %v", e.Action, e.Param, e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }
