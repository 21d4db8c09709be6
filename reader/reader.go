// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package reader reads linker input: a module count followed, for each
// module, by its definition list, use list and program text.
//
// Tokens are separated by whitespace and may span lines freely. A ';'
// starts a comment. Any $(expr) is replaced by the value of the integer
// expression before the line is split into tokens; equates such as
// MACHINE_SIZE may appear in the expression.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/tplink/internal"
	"github.com/ezrec/tplink/link"
)

// Predefined system equates
var sysEquate = map[string]string{
	"MACHINE_SIZE": fmt.Sprintf("%d", link.MACHINE_SIZE),
}

var reExpr = regexp.MustCompile(`\$\([^\$]*\)`)

// token is a single word of input.
type token struct {
	text   string
	lineNo int
}

// Reader parses linker input into module sources.
type Reader struct {
	Verbose bool // If set, verbosely logs the reader actions.

	predefine map[string]string // Predefines
	tokens    []token
	pos       int
	lastLine  int
}

// Predefine defines a new equate or redefines an existing equate.
func (rd *Reader) Predefine(equ string, value string) {
	if rd.predefine == nil {
		rd.predefine = map[string]string{equ: value}
	} else {
		rd.predefine[equ] = value
	}
}

// Equates iterates over the system equates, then the predefines.
func (rd *Reader) Equates() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(sysEquate), maps.All(rd.predefine))
}

// parenEval does $(...) evaluations
func (rd *Reader) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range rd.Equates() {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Only integer equates are visible to expressions.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// scan splits the input into tokens.
func (rd *Reader) scan(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Token: line, Err: err}
		}
	}()

	rd.tokens = rd.tokens[:0]
	rd.pos = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		expanded := reExpr.ReplaceAllStringFunc(line, func(str string) string {
			value, _err := rd.parenEval(str[2 : len(str)-1])
			if _err != nil {
				err = _err
			}
			return strconv.FormatInt(value, 10)
		})
		if err != nil {
			return
		}

		for _, word := range strings.Fields(expanded) {
			rd.tokens = append(rd.tokens, token{text: word, lineNo: lineno})
		}
	}
	rd.lastLine = lineno

	err = scanner.Err()

	return
}

// next consumes the next token.
func (rd *Reader) next() (tok token, err error) {
	if rd.pos >= len(rd.tokens) {
		err = ErrSyntax{LineNo: rd.lastLine, Err: ErrTruncated}
		return
	}
	tok = rd.tokens[rd.pos]
	rd.pos++
	return
}

// number consumes a non-negative decimal number.
func (rd *Reader) number() (value int, err error) {
	tok, err := rd.next()
	if err != nil {
		return
	}
	value, err = strconv.Atoi(tok.text)
	if err != nil || value < 0 {
		err = ErrSyntax{LineNo: tok.lineNo, Token: tok.text, Err: ErrParseNumber(tok.text)}
	}
	return
}

// word consumes a symbol name.
func (rd *Reader) word() (name string, err error) {
	tok, err := rd.next()
	if err != nil {
		return
	}
	name = tok.text
	return
}

// instruction consumes a mode letter and instruction word.
func (rd *Reader) instruction() (inst link.Instruction, err error) {
	tok, err := rd.next()
	if err != nil {
		return
	}
	mode, err := link.ParseMode(tok.text)
	if err != nil {
		err = ErrSyntax{LineNo: tok.lineNo, Token: tok.text, Err: err}
		return
	}

	word, err := rd.number()
	if err != nil {
		return
	}
	inst, err = link.MakeInstruction(mode, word)
	if err != nil {
		tok = rd.tokens[rd.pos-1]
		err = ErrSyntax{LineNo: tok.lineNo, Token: tok.text, Err: err}
		return
	}

	return
}

// module consumes one module description.
func (rd *Reader) module() (src link.Source, err error) {
	count, err := rd.number()
	if err != nil {
		return
	}
	for range count {
		var def link.Definition
		def.Name, err = rd.word()
		if err != nil {
			return
		}
		def.Offset, err = rd.number()
		if err != nil {
			return
		}
		src.Definitions = append(src.Definitions, def)
	}

	count, err = rd.number()
	if err != nil {
		return
	}
	for range count {
		var name string
		name, err = rd.word()
		if err != nil {
			return
		}
		src.Uses = append(src.Uses, name)
	}

	count, err = rd.number()
	if err != nil {
		return
	}
	for range count {
		var inst link.Instruction
		inst, err = rd.instruction()
		if err != nil {
			return
		}
		src.Instructions = append(src.Instructions, inst)
	}

	return
}

// Parse reads every module of an input stream.
func (rd *Reader) Parse(input io.Reader) (sources []link.Source, err error) {
	defer func() {
		if err != nil {
			sources = nil
		}
	}()

	err = rd.scan(input)
	if err != nil {
		return
	}

	count, err := rd.number()
	if err != nil {
		return
	}

	for n := range count {
		var src link.Source
		src, err = rd.module()
		if err != nil {
			return
		}
		if rd.Verbose {
			log.Printf("module %d: %d defs, %d uses, %d words",
				n, len(src.Definitions), len(src.Uses), len(src.Instructions))
		}
		sources = append(sources, src)
	}

	if rd.pos < len(rd.tokens) {
		tok := rd.tokens[rd.pos]
		err = ErrSyntax{LineNo: tok.lineNo, Token: tok.text, Err: ErrTrailing}
		return
	}

	return
}
