// Package selector picks named objects out of a candidate list in a
// caller-chosen order.
package selector

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrUnknownName matches every *UnknownNameError.
var ErrUnknownName = errors.New("unknown name")

// Named is anything identified by a stable string label.
type Named interface {
	Name() string
}

// UnknownNameError reports a requested name with no matching candidate.
type UnknownNameError struct {
	Name      string
	Available []string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown object with name %s in [%s]", e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownNameError) Is(target error) bool {
	return target == ErrUnknownName
}

// ByName yields, for each name in selected, the first candidate in objs with
// that name. When a name has no candidate it yields the zero value with an
// *UnknownNameError and stops; items already yielded stay valid.
//
// Nothing is scanned until the sequence is ranged over. Later candidates that
// share a name with an earlier one are never returned.
func ByName[T Named](selected []string, objs []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, name := range selected {
			obj, ok := first(name, objs)
			if !ok {
				var zero T
				yield(zero, &UnknownNameError{Name: name, Available: Names(objs)})
				return
			}
			if !yield(obj, nil) {
				return
			}
		}
	}
}

// Collect drains seq. On error it returns everything yielded before the
// failure along with the error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Names lists the candidates' names in order.
func Names[T Named](objs []T) []string {
	names := make([]string, 0, len(objs))
	for _, o := range objs {
		names = append(names, o.Name())
	}
	return names
}

func first[T Named](name string, objs []T) (T, bool) {
	for _, o := range objs {
		if o.Name() == name {
			return o, true
		}
	}
	var zero T
	return zero, false
}
