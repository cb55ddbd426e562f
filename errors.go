// seehuhn.de/go/xmpmeta - Extensible Metadata Platform in Go
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package xmpmeta

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the errors returned by this package.
type ErrorCode int

// These are the error codes used in [Error].
const (
	Unknown          ErrorCode = 0
	TBD              ErrorCode = 1
	Unavailable      ErrorCode = 2
	BadObject        ErrorCode = 3
	BadParam         ErrorCode = 4
	BadValue         ErrorCode = 5
	UnknownException ErrorCode = 14
	IndexOutOfRange  ErrorCode = 104
)

func (c ErrorCode) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case TBD:
		return "not yet implemented"
	case Unavailable:
		return "unavailable"
	case BadObject:
		return "bad object"
	case BadParam:
		return "bad parameter"
	case BadValue:
		return "bad value"
	case UnknownException:
		return "unknown exception"
	case IndexOutOfRange:
		return "index out of range"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Error is the error type returned by all operations in this package
// (except for [ErrNotFound]).
type Error struct {
	Code ErrorCode
	Op   string // the operation which failed, e.g. "SetProperty"
	Msg  string
	Err  error // optional underlying error
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Op != "" {
		return "xmp: " + e.Op + ": " + msg
	}
	return "xmp: " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
// This allows to write errors.Is(err, &Error{Code: BadParam}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the error code of err.  If err is not an [*Error],
// [UnknownException] is returned.  CodeOf(nil) returns [Unknown].
func CodeOf(err error) ErrorCode {
	if err == nil {
		return Unknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UnknownException
}

// ErrNotFound is returned by read operations when the requested property
// does not exist.
var ErrNotFound = errors.New("xmp: property not found")

func newError(code ErrorCode, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// withOp fills in the operation name of err, if err is an *Error without
// one.
func withOp(op string, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Op == "" {
		e2 := *e
		e2.Op = op
		return &e2
	}
	return err
}
