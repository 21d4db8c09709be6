package reader

import (
	"github.com/ezrec/tplink/translate"
)

var f = translate.From

var (
	ErrTruncated = translate.Message("input truncated")
	ErrTrailing  = translate.Message("unexpected input after last module")
)

// ErrSyntax is a fatal input error, located by line.
type ErrSyntax struct {
	LineNo int
	Token  string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Token, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a non-negative number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
