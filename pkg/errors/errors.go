// Package errors provides errors carrying a short summary for humans
// and a verbose description for logs.
//
// The console shows Error() on error panels and toasts, and writes Verbose() into logs.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

type Verbose interface {
	Verbose() string
}

type CUIError interface {
	error
	Verbose
}

type cuierror struct {
	summary     string
	verbose     string
	printDetail func(summary string) (string, error)
	base        error
}

func (ce *cuierror) Unwrap() error {
	return ce.base
}

func (ce *cuierror) Error() string {
	if ce.printDetail == nil {
		return ce.summary
	}
	message, err := ce.printDetail(ce.summary)
	if err != nil {
		message = fmt.Sprintf(
			"%s\n(building detailed message causes error: %s)",
			ce.summary, err.Error(),
		)
	}
	return message
}

// Summary returns the summary without detail.
func (ce *cuierror) Summary() string {
	return ce.summary
}

func (ce *cuierror) Verbose() string {
	message := []string{ce.Error()}
	if ce.verbose != "" {
		message = append(message, " ("+ce.verbose+") ")
	}

	switch base := ce.base.(type) {
	case nil:
	case Verbose:
		message = append(message, "caused by: ", base.Verbose())
	default:
		message = append(message, "caused by: ", base.Error())
	}
	return strings.Join(message, "\n")
}

type CuiErrorOption func(cerr *cuierror) *cuierror

func NewCuiError(summary string, options ...CuiErrorOption) CUIError {
	err := &cuierror{summary: summary}
	for _, o := range options {
		err = o(err)
	}
	return err
}

func WithVerbose(verbose string) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.verbose = verbose
		return cerr
	}
}

func WithDetail(printer func(summary string) (string, error)) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.printDetail = printer
		return cerr
	}
}

func WithCause(err error) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.base = err
		return cerr
	}
}

// Summary returns a one-line message of err.
//
// For errors made with NewCuiError, it is the summary. Otherwise the first line of Error(),
// so messages of wrapping errors are kept.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	if s, ok := err.(interface{ Summary() string }); ok {
		return s.Summary()
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}

// VerboseOf returns Verbose() if err implements it. Otherwise Error().
func VerboseOf(err error) string {
	if err == nil {
		return ""
	}
	var v Verbose
	if errors.As(err, &v) {
		return v.Verbose()
	}
	return err.Error()
}
