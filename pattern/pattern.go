// Package pattern compiles text patterns into regular expressions.
//
// Compiled patterns always let "." match line separators. It is a
// standalone utility with no ties to the combinators in package wrap.
package pattern

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	flagDotAll     = "(?s)"
	flagIgnoreCase = "(?i)"
)

type compileError struct {
	pattern string
	cause   error
}

func (c compileError) Error() string {
	return "compile pattern " + strconv.Quote(c.pattern) + ": " + c.cause.Error()
}
func (c compileError) Unwrap() error { return c.cause }
func (c compileError) Cause() error  { return c.cause }
func (c compileError) Is(err error) bool {
	_, ok := err.(compileError)
	return ok
}

// IsCompileError reports whether err comes from a malformed pattern.
func IsCompileError(err error) bool {
	var c compileError
	return errors.Is(err, c)
}

// Compile compiles p, case-insensitively when ignoreCase is set.
func Compile(p string, ignoreCase bool) (*regexp.Regexp, error) {
	flags := flagDotAll
	if ignoreCase {
		flags = flagIgnoreCase + flags
	}
	re, err := regexp.Compile(flags + p)
	if err != nil {
		return nil, compileError{
			pattern: p,
			cause:   errors.WithStack(err),
		}
	}
	return re, nil
}

// MustCompile is like Compile but panics on a malformed pattern.
func MustCompile(p string, ignoreCase bool) *regexp.Regexp {
	re, err := Compile(p, ignoreCase)
	if err != nil {
		panic(err)
	}
	return re
}

// CompileAll compiles every pattern. The result is index-aligned with ps and
// holds nil for each malformed pattern; all failures are combined into the
// returned error.
func CompileAll(ps []string, ignoreCase bool) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, len(ps))
	var err error
	for i, p := range ps {
		re, cErr := Compile(p, ignoreCase)
		if cErr != nil {
			err = multierr.Append(err, cErr)
			continue
		}
		res[i] = re
	}
	return res, err
}
