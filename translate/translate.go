// Package translate holds the message printer used for every diagnostic and
// listing string the linker produces.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("tplink: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the printer language from a list of BCP 47 tags,
// falling back to en-US when none are given.
func SetLanguage(tags ...string) {
	if len(tags) == 0 {
		tags = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(tags...))
}

// From an en-US Sprintf() format, translate to string.
//
// Numbers are localised by the printer, so callers that need plain digits
// (addresses, memory words) pass them pre-formatted as strings.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Message is an error with an en-US text that is translated each time it is
// read, so it follows SetLanguage calls made after package init.
type Message string

func (msg Message) Error() string {
	return printer.Sprintf(string(msg))
}
