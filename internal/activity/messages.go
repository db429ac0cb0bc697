package activity

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	msgOtherCommits = "%d other commits"
	msgOtherPages   = "%d other pages"
)

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	must(b.Set(language.English, msgOtherCommits,
		plural.Selectf(1, "%d", "=1", "%d other commit", "other", "%d other commits")))
	must(b.Set(language.English, msgOtherPages,
		plural.Selectf(1, "%d", "=1", "%d other page", "other", "%d other pages")))
	return b
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// sprintf formats a catalog message in English. Printers are not safe for
// concurrent use, so one is built per call.
func sprintf(key string, args ...any) string {
	return message.NewPrinter(language.English, message.Catalog(messages)).Sprintf(key, args...)
}
