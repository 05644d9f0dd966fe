package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"emcmap/classes/nations"
	"emcmap/classes/residents"
	"emcmap/classes/towns"
	"emcmap/database"
	"emcmap/shared"
	"emcmap/utils"
	"emcmap/utils/requests"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

// Label/value rows, aligned the same way for every lookup.
type fields struct {
	tw *tabwriter.Writer
}

func newFields(w io.Writer) *fields {
	return &fields{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (f *fields) add(name string, format string, args ...any) {
	fmt.Fprintf(f.tw, "%s\t"+format+"\n", append([]any{name}, args...)...)
}

func (f *fields) flush() error {
	return f.tw.Flush()
}

func yesNo(b bool) string {
	return lo.Ternary(b, "Yes", "No")
}

func printTown(w io.Writer, t towns.Town, mapURL string) error {
	f := newFields(w)
	f.add("Town", "%s", t.Name)
	f.add("Nation", "%s", t.Nation)
	f.add("Mayor", "%s", t.Mayor)
	f.add("Residents", "%s", humanize.Comma(int64(len(t.Residents))))
	f.add("Area", "%s blocks²", humanize.CommafWithDigits(t.Area, 0))
	f.add("Centre", "%s", t.Position)
	f.add("Bounds", "%d x %d", t.Bounds.Width(), t.Bounds.Depth())
	f.add("Colours", "fill %s, stroke %s", t.FillColour, t.StrokeColour)
	f.add("Capital", "%s", yesNo(t.Flags.Capital))
	f.add("PvP", "%s", yesNo(t.Flags.PvP))
	f.add("Mobs", "%s", yesNo(t.Flags.Mobs))
	f.add("Explosions", "%s", yesNo(t.Flags.Explosions))
	f.add("Fire", "%s", yesNo(t.Flags.Fire))
	f.add("Map", "%s", shared.MapLink(mapURL, t.Position, shared.ZOOM_LEVELS.TOWN))

	return f.flush()
}

func printNation(w io.Writer, n nations.Nation, members []towns.Town) error {
	capital, hasCapital := lo.Find(members, func(t towns.Town) bool {
		return t.Flags.Capital
	})

	residentCount := lo.SumBy(members, func(t towns.Town) int {
		return len(t.Residents)
	})

	area := lo.SumBy(members, func(t towns.Town) float64 {
		return t.Area
	})

	f := newFields(w)
	f.add("Nation", "%s", n)
	f.add("Capital", "%s", lo.Ternary(hasCapital, capital.Name, "None"))
	f.add("Towns", "%s", humanize.Comma(int64(len(members))))
	f.add("Residents", "%s", humanize.Comma(int64(residentCount)))
	f.add("Area", "%s blocks²", humanize.CommafWithDigits(area, 0))

	for _, t := range members {
		f.add("", "%s (%s)", t.Name, t.Mayor)
	}

	return f.flush()
}

func printResident(w io.Writer, r residents.Resident, mapURL string) error {
	f := newFields(w)
	f.add("Resident", "%s", r.Name)
	f.add("Online", "%s", yesNo(r.Online))

	if r.Town != nil {
		f.add("Town", "%s", r.Town.Name)
	} else {
		f.add("Town", "None")
	}

	if r.Nation != nil && r.Nation.Name != "" {
		f.add("Nation", "%s", r.Nation)
	} else {
		f.add("Nation", "None")
	}

	if r.NPC {
		f.add("NPC", "Yes")
	}

	switch {
	case r.Position == nil:
		f.add("Position", "Unknown (offline)")
	case r.Hidden:
		f.add("Position", "Hidden")
	default:
		f.add("Position", "%s", r.Position)
		f.add("Map", "%s", shared.MapLink(mapURL, *r.Position, shared.ZOOM_LEVELS.PLOT))
	}

	return f.flush()
}

func printDump(w io.Writer, v any) error {
	_, err := fmt.Fprintln(w, utils.Prettify(v))
	return err
}

var statusNames = map[requests.ResponseStatus]string{
	requests.RESPONSE_STATUS_OK:      "OK",
	requests.RESPONSE_STATUS_PARTIAL: "Partial",
	requests.RESPONSE_STATUS_DOWN:    "Down",
	requests.RESPONSE_STATUS_FAILED:  "Unreachable",
}

func printStatus(w io.Writer, url string, status requests.ResponseStatus) error {
	_, err := fmt.Fprintf(w, "%-12s %s\n", statusNames[status], url)
	return err
}

func printArchive(w io.Writer, entries []database.ArchiveEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No recorded feeds.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFETCHED\tSIZE")

	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s (%s)\t%s\n",
			e.ID,
			e.FetchedAt.UTC().Format("2006-01-02 15:04:05"),
			humanize.Time(e.FetchedAt),
			humanize.Bytes(uint64(e.Size)),
		)
	}

	return tw.Flush()
}
