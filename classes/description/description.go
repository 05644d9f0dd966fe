// Package description extracts the town details the map embeds in each town marker's popup HTML.
//
// Only the exact popup layout produced by the server's Towny integration is understood. This is not an HTML parser.
package description

import (
	"regexp"
	"strings"

	"emcmap/shared"
)

const descPattern = `>[^<>]+ \((?P<nation>[^<>)]+)\)<.+> Mayor <.+>(?P<mayor>[^<>]+)<.+> Members <.+>(?P<residents>[^<>]+)<.+>Flags<.+>` +
	`hasUpkeep: (?P<upkeep>true|false)<.+>pvp: (?P<pvp>true|false)<.+>mobs: (?P<mobs>true|false)<.+>public: (?P<public>true|false)<.+>` +
	`explosion: (?P<explosion>true|false)<.+>fire: (?P<fire>true|false)<.+>capital: (?P<capital>true|false)`

// Only the "Label (Nation)" heading, so a nation can be read without the rest of the popup being valid.
const nationPattern = `>[^<>(]+ \((?P<nation>[^<>)]+)\)`

// Compiled patterns for reading town popups. Build once with [NewGrammar] (or use [Default]) and share it,
// a Grammar is read-only and safe for concurrent use.
type Grammar struct {
	desc   *regexp.Regexp
	nation *regexp.Regexp
}

func NewGrammar() *Grammar {
	return &Grammar{
		desc:   regexp.MustCompile(descPattern),
		nation: regexp.MustCompile(nationPattern),
	}
}

var Default = NewGrammar()

type Captures struct {
	Nation    string
	Mayor     string
	Residents []string

	Upkeep    bool
	PvP       bool
	Mobs      bool
	Public    bool
	Explosion bool
	Fire      bool
	Capital   bool
}

// Reads every field from a town popup. Any missing group or non-boolean flag fails the whole parse.
func (g *Grammar) Parse(desc string) (Captures, error) {
	m := g.desc.FindStringSubmatch(desc)
	if m == nil {
		return Captures{}, shared.NewParseError("town description does not match the expected layout")
	}

	group := func(name string) string {
		return m[g.desc.SubexpIndex(name)]
	}

	c := Captures{
		Nation:    group("nation"),
		Mayor:     strings.TrimSpace(group("mayor")),
		Residents: SplitResidents(group("residents")),
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"upkeep", &c.Upkeep},
		{"pvp", &c.PvP},
		{"mobs", &c.Mobs},
		{"public", &c.Public},
		{"explosion", &c.Explosion},
		{"fire", &c.Fire},
		{"capital", &c.Capital},
	}

	for _, f := range flags {
		v, err := parseFlag(f.name, group(f.name))
		if err != nil {
			return Captures{}, err
		}

		*f.dst = v
	}

	return c, nil
}

// Reads only the nation from the popup heading.
func (g *Grammar) ParseNation(desc string) (string, error) {
	m := g.nation.FindStringSubmatch(desc)
	if m == nil {
		return "", shared.NewParseError("town description has no nation heading")
	}

	return m[g.nation.SubexpIndex("nation")], nil
}

func Parse(desc string) (Captures, error) {
	return Default.Parse(desc)
}

func ParseNation(desc string) (string, error) {
	return Default.ParseNation(desc)
}

// Splits the comma separated member list, dropping blanks.
func SplitResidents(list string) []string {
	parts := strings.Split(list, ",")

	residents := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			residents = append(residents, p)
		}
	}

	return residents
}

func parseFlag(name, v string) (bool, error) {
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	return false, shared.NewParseError("flag %s is %q, expected true or false", name, v)
}
