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

package epwing

import "seehuhn.de/go/epwing/internal/errkind"

// ErrorKind classifies the ways a read of an EPWING dictionary can fail.
type ErrorKind = errkind.Kind

const (
	Io                = errkind.Io
	InvalidEncoding   = errkind.InvalidEncoding
	InvalidFormat     = errkind.InvalidFormat
	IndexNotAvailable = errkind.IndexNotAvailable
)

// Error is the one error type returned from every function in this
// package and its sub-packages. The library never retries and never
// panics on data-driven paths; every failure is reported through a value
// of this type.
type Error = errkind.Error
