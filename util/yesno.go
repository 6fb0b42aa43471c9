package util

import (
	"strings"

	"github.com/spf13/pflag"
)

// YesNoOnce is a tri-state flag value.
type YesNoOnce int

const (
	No YesNoOnce = iota
	Yes
	Once
)

var _ pflag.Value = (*YesNoOnce)(nil)

func (y YesNoOnce) String() string {
	switch y {
	case Yes:
		return "yes"
	case Once:
		return "once"
	default:
		return "no"
	}
}

// Set parses yes, no or once, case-insensitively.
func (y *YesNoOnce) Set(s string) error {
	v, err := ParseYesNoOnce(s)
	if err != nil {
		return err
	}
	*y = v
	return nil
}

func (y YesNoOnce) Type() string {
	return "yes|no|once"
}

// ParseYesNoOnce converts s into a YesNoOnce.
func ParseYesNoOnce(s string) (YesNoOnce, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return Yes, nil
	case "no":
		return No, nil
	case "once":
		return Once, nil
	default:
		return No, ErrInvalidYesNoOnce
	}
}

// Attempts returns how many times a failing operation should be tried
// under this setting, given a ceiling for Yes.
func (y YesNoOnce) Attempts(ceiling int) int {
	switch y {
	case Yes:
		if ceiling < 1 {
			return 1
		}
		return ceiling
	case Once:
		return 2
	default:
		return 1
	}
}
