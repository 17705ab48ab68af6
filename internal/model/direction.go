package model

import (
	"fmt"
	"strings"
)

// Direction names the side of the bubble the arrow protrudes from. Top and
// Bottom describe the arrow, so a Top bubble sits below its reference element
// and a Bottom bubble sits above it. Left and Right work the same way on the
// horizontal axis.
type Direction int

const (
	DirectionAuto Direction = iota
	DirectionTop
	DirectionBottom
	DirectionLeft
	DirectionRight
)

// FallbackOrder is the order in which concrete directions are tried when the
// preferred one does not fit.
var FallbackOrder = []Direction{DirectionTop, DirectionBottom, DirectionRight, DirectionLeft}

var directionNames = map[Direction]string{
	DirectionAuto:   "auto",
	DirectionTop:    "top",
	DirectionBottom: "bottom",
	DirectionLeft:   "left",
	DirectionRight:  "right",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Vertical reports whether the arrow points up or down, i.e. the bubble sits
// above or below the reference. Auto lays out like Top.
func (d Direction) Vertical() bool {
	return d == DirectionTop || d == DirectionBottom || d == DirectionAuto
}

// Valid reports whether d is one of the declared directions.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

// ParseDirection converts a case-insensitive name into a Direction.
// "any" is accepted as an alias for auto.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "any" || name == "" {
		return DirectionAuto, nil
	}
	for d, n := range directionNames {
		if n == name {
			return d, nil
		}
	}
	return DirectionAuto, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
