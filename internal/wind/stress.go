// Package wind evaluates surface wind-stress forcing for the momentum
// equations. Every profile is a pure function of position and time.
package wind

import (
	"fmt"
	"math"
	"strings"
)

// Type selects the wind-stress profile.
type Type int32

const (
	None Type = iota
	UniformAlongshore
	BellShapedAlongshore
	Ramped
	MovingCyclone
)

// bellShapedDuration is how long the bell-shaped alongshore stress blows.
const bellShapedDuration = 48 * 3600

var typeNames = map[Type]string{
	None:                 "none",
	UniformAlongshore:    "uniform",
	BellShapedAlongshore: "bell",
	Ramped:               "ramped",
	MovingCyclone:        "cyclone",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int32(t))
}

// ParseType accepts the names printed by Type.String.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown wind stress type %q", s)
}

// Stress describes a wind forcing profile. Fields that the selected Type does
// not use are ignored.
type Stress struct {
	Type Type

	Tau0  float32 // peak stress magnitude [N/m^2]
	Rho   float32 // water density [kg/m^3]
	Alpha float32 // offshore decay rate [1/m]
	Xm    float32 // bell centre along x [m]
	Rc    float32 // cyclone radius [m]
	X0    float32 // cyclone start position [m]
	Y0    float32
	U0    float32 // cyclone translation velocity [m/s]
	V0    float32
	Ramp  float32 // ramp-up time of the Ramped profile [s]
}

// Validate reports descriptors that would divide by zero.
func (s Stress) Validate() error {
	switch s.Type {
	case None:
		return nil
	case UniformAlongshore, BellShapedAlongshore, Ramped, MovingCyclone:
	default:
		return fmt.Errorf("wind stress: unknown type %d", int32(s.Type))
	}
	if s.Rho <= 0 {
		return fmt.Errorf("wind stress %s: rho must be positive", s.Type)
	}
	if s.Type == MovingCyclone && s.Rc <= 0 {
		return fmt.Errorf("wind stress %s: Rc must be positive", s.Type)
	}
	if s.Type == Ramped && s.Ramp < 0 {
		return fmt.Errorf("wind stress %s: ramp time must not be negative", s.Type)
	}
	return nil
}

// X returns the x component of stress divided by density at (x, y) and time t.
// dt is the step length; the cyclone centre is evaluated at t+dt.
func (s Stress) X(x, y, t, dt float32) float32 {
	switch s.Type {
	case UniformAlongshore:
		return s.Tau0 / s.Rho * exp32(-s.Alpha*y)
	case BellShapedAlongshore:
		if t > bellShapedDuration {
			return 0
		}
		a := s.Alpha * (x - s.Xm)
		return s.Tau0 / s.Rho * exp32(-a*a) * exp32(-s.Alpha*y)
	case Ramped:
		return s.Tau0 / s.Rho * s.rampFactor(t) * exp32(-s.Alpha*y)
	case MovingCyclone:
		_, b, xi := s.cyclone(x, y, t, dt)
		return -(s.Tau0 / s.Rho) * (b / s.Rc) * exp32(-0.5*xi)
	}
	return 0
}

// Y returns the y component of stress divided by density.
func (s Stress) Y(x, y, t, dt float32) float32 {
	if s.Type != MovingCyclone {
		return 0
	}
	a, _, xi := s.cyclone(x, y, t, dt)
	return (s.Tau0 / s.Rho) * (a / s.Rc) * exp32(-0.5*xi)
}

func (s Stress) rampFactor(t float32) float32 {
	if s.Ramp <= 0 || t >= s.Ramp {
		return 1
	}
	if t <= 0 {
		return 0
	}
	return t / s.Ramp
}

// cyclone returns the offsets from the storm centre and the squared radial
// shape term.
func (s Stress) cyclone(x, y, t, dt float32) (a, b, xi float32) {
	a = x - s.X0 - s.U0*(t+dt)
	b = y - s.Y0 - s.V0*(t+dt)
	r := float32(math.Sqrt(float64(a*a + b*b)))
	c := 1 - r/s.Rc
	return a, b, c * c
}

func exp32(v float32) float32 { return float32(math.Exp(float64(v))) }
