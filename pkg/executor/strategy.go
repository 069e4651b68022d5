package executor

import (
	"fmt"

	"github.com/arthur-debert/mmv/pkg/errors"
)

// Strategy orders the copy and remove steps of a run
type Strategy int

const (
	// Sequential copies then removes each file before moving on
	Sequential Strategy = iota
	// Staged copies every moved file first, then removes sources
	Staged
)

func (s Strategy) String() string {
	switch s {
	case Sequential:
		return "sequential"
	case Staged:
		return "staged"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses the names accepted by --strategy
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "sequential":
		return Sequential, nil
	case "staged":
		return Staged, nil
	default:
		return Sequential, errors.Newf(errors.ErrInvalidInput, "unknown strategy %q (want sequential or staged)", s)
	}
}
