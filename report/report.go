// Package report renders a link report as a text listing.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ezrec/tplink/link"
	"github.com/ezrec/tplink/translate"
)

var f = translate.From

// Listing writes a report to an output stream.
type Listing struct {
	// If set, the memory map also shows the module and source word.
	Source bool
}

// diagnostic formats an error as a listing annotation.
func diagnostic(err error) string {
	return f("Error: %v.", err.Error())
}

// warning formats a warning line.
func warning(warn error) string {
	return f("Warning: %v.", warn.Error())
}

// Write renders the report.
func (ls *Listing) Write(output io.Writer, rep *link.Report) (err error) {
	w := bufio.NewWriter(output)

	fmt.Fprintln(w, f("Symbol Table"))
	for _, sym := range rep.Symbols {
		fmt.Fprintf(w, "%v=%v", sym.Name, strconv.Itoa(sym.Address))
		if sym.MultiplyDefined {
			fmt.Fprintf(w, " %v", diagnostic(link.ErrSymbolMultiplyDefined(sym.Name)))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, f("Memory Map"))
	for _, entry := range rep.Memory {
		fmt.Fprintf(w, "%-3s %v", strconv.Itoa(entry.Index)+":", strconv.Itoa(entry.Value()))
		if ls.Source {
			fmt.Fprintf(w, " [%v %v]", strconv.Itoa(entry.Module), entry.Instruction)
		}
		if entry.Diagnostic != nil {
			fmt.Fprintf(w, " %v", diagnostic(entry.Diagnostic))
		}
		fmt.Fprintln(w)
	}

	for _, warn := range rep.UnusedUses {
		fmt.Fprintln(w, warning(warn))
	}
	fmt.Fprintln(w)

	for _, warn := range rep.UnusedSymbols {
		fmt.Fprintln(w, warning(warn))
	}
	fmt.Fprintln(w)

	for _, oversized := range rep.Oversized {
		fmt.Fprintln(w, diagnostic(oversized))
	}

	err = w.Flush()

	return
}

// Write renders the report in the default listing format.
func Write(output io.Writer, rep *link.Report) error {
	ls := &Listing{}
	return ls.Write(output, rep)
}
