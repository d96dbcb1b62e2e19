package command

import "errors"

// Sentinel parse errors, turned into the exact wire-level messages spec §7
// names by the caller that owns frame encoding.
var (
	ErrUnknownCommand = errors.New("ERR unknown command")
	ErrWrongArity     = errors.New("ERR wrong number of arguments for command")
	ErrSyntax         = errors.New("ERR syntax error")
	ErrNotArray       = errors.New("ERR protocol error: expected array of bulk strings")
)
