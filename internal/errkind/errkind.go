// seehuhn.de/go/epwing - a library for reading EPWING dictionaries
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package errkind defines the single error type shared by every parsing
// package in this module. Its only dependency within the module is
// internal/bitreader, so that catalog, index, tree and text can report errors of the
// same shape the root package re-exports, without an import cycle.
package errkind

import (
	"fmt"

	"seehuhn.de/go/epwing/internal/bitreader"
)

// Kind classifies the ways a read of an EPWING dictionary can fail.
type Kind int

const (
	// Io indicates a genuine failure of the underlying byte stream.
	Io Kind = iota
	// InvalidEncoding indicates a JIS X 0208 byte pair without a mapping,
	// in a context where one is required (e.g. a subbook title).
	InvalidEncoding
	// InvalidFormat indicates a structurally impossible or unsupported
	// on-disk layout: an unexpected control byte, an unknown group tag,
	// an empty directory name, or premature end of file.
	InvalidFormat
	// IndexNotAvailable indicates the caller asked for an index kind that
	// this subbook does not carry.
	IndexNotAvailable
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "I/O error"
	case InvalidEncoding:
		return "invalid JIS X 0208 encoding"
	case InvalidFormat:
		return "malformed EPWING data"
	case IndexNotAvailable:
		return "index not available"
	default:
		return "unknown error"
	}
}

// Error is the error type returned from every function in this module.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "catalog.Read"
	Err  error  // the underlying error, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("epwing: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("epwing: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap constructs an *Error of the given kind, attributed to op.
func Wrap(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// FromRead classifies an error returned by the bitreader package: a
// premature end of file is a data-format error, anything else is a
// genuine I/O failure. Per spec, unexpected end-of-file from the
// underlying reader is mapped to InvalidFormat rather than Io.
func FromRead(op string, err error) *Error {
	if err == bitreader.ErrUnexpectedEOF {
		return Wrap(op, InvalidFormat, err)
	}
	return Wrap(op, Io, err)
}
