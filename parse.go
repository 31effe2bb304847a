package simvalue

import "fmt"

// Parser builds a Value from its textual form (see Value.String). The
// expression language, and therefore the parser, live outside this package.
type Parser interface {
	Parse(text string) (Value, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(text string) (Value, error)

func (f ParserFunc) Parse(text string) (Value, error) { return f(text) }

// ParseError reports a failure to parse text into a Value (of the requested
// type). It matches ErrParse as well as the underlying error.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// Parse parses text with p.
func Parse(p Parser, text string) (Value, error) {
	v, err := p.Parse(text)
	if err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	return v, nil
}

// ParseAs parses text with p and converts the result to type t, as when
// reading a literal into a port of a declared type.
func ParseAs(p Parser, text string, t Type) (Value, error) {
	v, err := Parse(p, text)
	if err != nil {
		return nil, err
	}
	c, err := Convert(t, v)
	if err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	return c, nil
}
