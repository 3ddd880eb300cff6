package cache

import (
	"fmt"
	"strings"
)

// TieBreak decides which entry goes when several share the minimum usage count.
type TieBreak int

const (
	// TieBreakNewest evicts the most recently inserted entry among the tied
	// minima. The candidate is only replaced on a strictly smaller count while
	// scanning from the newest insertion towards the oldest.
	TieBreakNewest TieBreak = iota
	// TieBreakOldest evicts the least recently inserted entry among the tied
	// minima.
	TieBreakOldest
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakNewest:
		return "newest"
	case TieBreakOldest:
		return "oldest"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

func (t TieBreak) valid() bool {
	return t == TieBreakNewest || t == TieBreakOldest
}

// ParseTieBreak maps "newest" / "oldest" (case-insensitive) to a TieBreak.
// The empty string yields the default, TieBreakNewest.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest":
		return TieBreakNewest, nil
	case "oldest":
		return TieBreakOldest, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTieBreak, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t TieBreak) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTieBreak, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TieBreak) UnmarshalText(b []byte) error {
	v, err := ParseTieBreak(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
