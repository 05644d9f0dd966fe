package utils

import (
	"github.com/sanity-io/litter"
)

var dumpOpts = litter.Options{
	HidePrivateFields: true,
	StripPackageNames: true,
	Separator:         " ",
}

// Dumps v as readable Go-like text. Unexported fields are hidden.
func Prettify(v any) string {
	return dumpOpts.Sdump(v)
}

type Loggable interface {
	Log(args ...any)
}

// Logs err if non-nil, otherwise the prettified value.
func CustomLog(t Loggable, v any, err error) {
	if err != nil {
		t.Log(err)
	} else {
		t.Log(Prettify(v))
	}
}
