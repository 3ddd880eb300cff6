// Package script parses and runs line-oriented cache operation scripts.
//
// One operation per line:
//
//	# comment
//	echo <text...>
//	put <key> <value...>
//	get <key>
//	dump
//	stats
//
// The value of a put is the rest of the line and may contain spaces.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind identifies an operation.
type Kind int

const (
	KindEcho Kind = iota + 1
	KindPut
	KindGet
	KindDump
	KindStats
)

var verbs = map[string]Kind{
	"echo":  KindEcho,
	"put":   KindPut,
	"get":   KindGet,
	"dump":  KindDump,
	"stats": KindStats,
}

func (k Kind) String() string {
	for verb, kind := range verbs {
		if kind == k {
			return verb
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op is one parsed script line.
type Op struct {
	Kind  Kind
	Key   string
	Value string // put value or echo text
	Line  int
}

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	ErrUnknownVerb     = errors.New("unknown operation")
	ErrMissingArgument = errors.New("missing argument")
	ErrExtraArgument   = errors.New("unexpected argument")
)

// Parse reads a whole script. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		op, err := parseLine(text)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ops, nil
}

func parseLine(text string) (Op, error) {
	verb, rest, _ := strings.Cut(text, " ")
	kind, ok := verbs[strings.ToLower(verb)]
	if !ok {
		return Op{}, fmt.Errorf("%w %q", ErrUnknownVerb, verb)
	}
	rest = strings.TrimSpace(rest)

	switch kind {
	case KindEcho:
		return Op{Kind: kind, Value: rest}, nil
	case KindPut:
		key, value, _ := strings.Cut(rest, " ")
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			return Op{}, fmt.Errorf("%w: put needs a key and a value", ErrMissingArgument)
		}
		return Op{Kind: kind, Key: key, Value: value}, nil
	case KindGet:
		if rest == "" {
			return Op{}, fmt.Errorf("%w: get needs a key", ErrMissingArgument)
		}
		if strings.ContainsAny(rest, " \t") {
			return Op{}, fmt.Errorf("%w: get takes a single key", ErrExtraArgument)
		}
		return Op{Kind: kind, Key: rest}, nil
	default:
		if rest != "" {
			return Op{}, fmt.Errorf("%w: %s takes no arguments", ErrExtraArgument, verb)
		}
		return Op{Kind: kind}, nil
	}
}
