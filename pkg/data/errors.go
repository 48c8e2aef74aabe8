package data

import "github.com/pkg/errors"

// Error classes shared by every stage that reads a table. Stages wrap them
// with context, match with errors.Is.
var (
	ErrSchema     = errors.New("schema error")
	ErrParse      = errors.New("parse error")
	ErrDegenerate = errors.New("degenerate statistics")
)
