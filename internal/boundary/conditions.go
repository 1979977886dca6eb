package boundary

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a single domain edge.
type Kind int

const (
	Closed Kind = iota
	Periodic
	Sponge
)

var (
	// ErrUnsupported is returned for sponge (absorbing) edges.
	ErrUnsupported = errors.New("sponge boundary not supported")
	// ErrAsymmetric is returned when opposing edges disagree.
	ErrAsymmetric = errors.New("opposing edges must use the same boundary kind")
)

func (k Kind) String() string {
	switch k {
	case Closed:
		return "closed"
	case Periodic:
		return "periodic"
	case Sponge:
		return "sponge"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "closed", "wall":
		return Closed, nil
	case "periodic":
		return Periodic, nil
	case "sponge":
		return Sponge, nil
	}
	return 0, fmt.Errorf("unknown boundary kind %q", s)
}

// Conditions is the per-edge boundary descriptor. The zero value closes every
// edge.
type Conditions struct {
	North, East, South, West Kind
	// SpongeCells is the damping layer width a sponge edge would use.
	SpongeCells int
}

// AllClosed returns a fully reflecting descriptor.
func AllClosed() Conditions { return Conditions{} }

// AllPeriodic returns a doubly periodic descriptor.
func AllPeriodic() Conditions {
	return Conditions{North: Periodic, East: Periodic, South: Periodic, West: Periodic}
}

// Policy is the resolved treatment of an opposing edge pair.
type Policy int

const (
	PolicyClosed Policy = iota
	PolicyPeriodic
)

func (p Policy) String() string {
	if p == PolicyPeriodic {
		return "periodic"
	}
	return "closed"
}

// pairPolicies lists every supported edge pairing. Anything missing is a
// configuration error.
var pairPolicies = map[[2]Kind]Policy{
	{Closed, Closed}:     PolicyClosed,
	{Periodic, Periodic}: PolicyPeriodic,
}

func resolvePair(name string, a, b Kind) (Policy, error) {
	if p, ok := pairPolicies[[2]Kind{a, b}]; ok {
		return p, nil
	}
	if a == Sponge || b == Sponge {
		return 0, fmt.Errorf("%s edges: %w", name, ErrUnsupported)
	}
	return 0, fmt.Errorf("%s edges (%s/%s): %w", name, a, b, ErrAsymmetric)
}

// Resolve maps the descriptor onto one policy per axis: ns for the north and
// south edges, ew for the east and west edges.
func (c Conditions) Resolve() (ns, ew Policy, err error) {
	if ns, err = resolvePair("north/south", c.North, c.South); err != nil {
		return 0, 0, err
	}
	if ew, err = resolvePair("east/west", c.East, c.West); err != nil {
		return 0, 0, err
	}
	return ns, ew, nil
}
