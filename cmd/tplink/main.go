// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/tplink/link"
	"github.com/ezrec/tplink/reader"
	"github.com/ezrec/tplink/report"
	"github.com/ezrec/tplink/translate"
)

func main() {
	var machine int
	var output string
	var lang string
	var source bool
	var strict bool
	var verbose bool

	rd := &reader.Reader{}

	flag.IntVar(&machine, "m", link.MACHINE_SIZE, "Machine memory size, in words")
	flag.StringVar(&output, "o", "-", "Listing output")
	flag.StringVar(&lang, "lang", "", "Listing language (BCP 47 tag)")
	flag.BoolVar(&source, "source", false, "Show source words in the memory map")
	flag.BoolVar(&strict, "strict", false, "Exit with status 1 if the link has errors")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate, as NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", arg)
		}
		rd.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one input file, got %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	rd.Verbose = verbose
	rd.Predefine("MACHINE_SIZE", fmt.Sprintf("%d", machine))

	input := flag.Arg(0)
	inf := os.Stdin
	if input != "-" {
		var err error
		inf, err = os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
	}

	sources, err := rd.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	ln := link.NewLinker()
	ln.MachineSize = machine
	ln.Verbose = verbose

	rep := ln.Link(sources)

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	listing := &report.Listing{Source: source}
	err = listing.Write(ouf, rep)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if strict && rep.HasErrors() {
		ouf.Close()
		os.Exit(1)
	}
}
