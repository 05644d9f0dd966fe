package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestColourRoundTrip(t *testing.T) {
	cases := map[string]string{
		"#ff00aa": "#FF00AA",
		"#FF00AA": "#FF00AA",
		"#a1B2c3": "#A1B2C3",
		"#000000": "#000000",
		"#ffffff": "#FFFFFF",
	}

	for input, expected := range cases {
		c, err := ParseColour(input)
		if err != nil {
			t.Fatalf("unexpected error parsing %s: %v", input, err)
		}

		if actual := c.String(); actual != expected {
			t.Errorf("Expected '%v' but got '%v'", expected, actual)
		}
	}
}

func TestColourChannels(t *testing.T) {
	c, err := ParseColour("#10203f")
	if err != nil {
		t.Fatal(err)
	}

	expected := Colour{Red: 0x10, Green: 0x20, Blue: 0x3f}
	if c != expected {
		t.Errorf("Expected '%v' but got '%v'", expected, c)
	}
}

func TestColourRejectsInvalid(t *testing.T) {
	invalid := []string{"", "ff00aa", "#ff00a", "#ff00aaa", "#gg00aa", "#ff 0aa", "0xff00aa", "#+f00aa"}
	for _, s := range invalid {
		t.Run(s, func(t *testing.T) {
			_, err := ParseColour(s)
			if !IsParseError(err) {
				t.Errorf("expected ParseError for %q, got %v", s, err)
			}
		})
	}
}

func TestColourText(t *testing.T) {
	var c Colour
	if err := c.UnmarshalText([]byte("#0a0B0c")); err != nil {
		t.Fatal(err)
	}

	text, _ := c.MarshalText()
	if string(text) != "#0A0B0C" {
		t.Errorf("Expected '%v' but got '%v'", "#0A0B0C", string(text))
	}
}

func TestColourJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Fill Colour `json:"fill"`
	}{Fill: Colour{Red: 0x0a, Green: 0x0b, Blue: 0x0c}})
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != `{"fill":"#0A0B0C"}` {
		t.Errorf("Expected '%v' but got '%v'", `{"fill":"#0A0B0C"}`, string(data))
	}
}

func TestMapLink(t *testing.T) {
	pos := Position{X: 32943, Y: 64, Z: -13297}

	expected := "https://earthmc.net/map/?zoom=6&x=32943&z=-13297"
	if actual := pos.MapLink(6); actual != expected {
		t.Errorf("Expected '%v' but got '%v'", expected, actual)
	}

	expected = "http://localhost/?zoom=0&x=0&z=0"
	if actual := MapLink("http://localhost", Position{}, ZOOM_LEVELS.WORLD); actual != expected {
		t.Errorf("Expected '%v' but got '%v'", expected, actual)
	}
}

func TestPositionString(t *testing.T) {
	if actual := (Position{X: 1, Y: -2, Z: 3}).String(); actual != "1/-2/3" {
		t.Errorf("Expected '%v' but got '%v'", "1/-2/3", actual)
	}
}

func TestErrorKinds(t *testing.T) {
	inner := errors.New("connection refused")
	err := fmt.Errorf("building snapshot: %w", &TransportError{Source: "http://x", Err: inner})

	if !IsTransportError(err) {
		t.Error("expected wrapped TransportError to be detected")
	}

	if !errors.Is(err, inner) {
		t.Error("expected TransportError to unwrap to its cause")
	}

	if IsParseError(err) {
		t.Error("TransportError must not be reported as ParseError")
	}

	wrapped := fmt.Errorf("town Venice: %w", ErrTownNotFound)
	if !errors.Is(wrapped, ErrTownNotFound) {
		t.Error("expected ErrTownNotFound to survive wrapping")
	}
}
