package shared

import (
	"fmt"
	"strconv"
)

// An RGB colour as used by the map for town fill and outline.
type Colour struct {
	Red, Green, Blue uint8
}

// Parses a colour from exactly "#RRGGBB". Hex digits may be either case.
func ParseColour(s string) (Colour, error) {
	if len(s) != 7 || s[0] != '#' {
		return Colour{}, NewParseError("colour %q is not in the form #RRGGBB", s)
	}

	channels := [3]uint8{}
	for i := range channels {
		part := s[1+i*2 : 3+i*2]

		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return Colour{}, NewParseError("colour %q has invalid hex digits %q", s, part)
		}

		channels[i] = uint8(v)
	}

	return Colour{Red: channels[0], Green: channels[1], Blue: channels[2]}, nil
}

// Formats the colour as uppercase "#RRGGBB".
func (c Colour) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.Red, c.Green, c.Blue)
}

func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Colour) UnmarshalText(text []byte) error {
	parsed, err := ParseColour(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}
