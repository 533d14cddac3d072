package report

import (
	"github.com/sanity-io/litter"
)

var dumpOptions = litter.Options{
	HidePrivateFields: true,
	Separator:         " ",
}

func encodeDump(r Report) []byte {
	return []byte(dumpOptions.Sdump(r) + "\n")
}
