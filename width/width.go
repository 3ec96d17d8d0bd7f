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

// Package width folds between the narrow (half-width) and standard
// (full-width) forms of a character. The conversion tables themselves are
// an external collaborator of the core spec; this package is a thin
// adapter over golang.org/x/text/width.
package width

import "golang.org/x/text/width"

const (
	ideographicSpace = '　'
	asciiSpace       = ' '
)

// ToStandardWidth folds a narrow/half-width character to its standard
// form. U+3000 IDEOGRAPHIC SPACE is special-cased to ASCII space; any
// character with no narrow-form table entry is returned unchanged.
func ToStandardWidth(ch rune) rune {
	if ch == ideographicSpace {
		return asciiSpace
	}
	folded := []rune(width.Narrow.String(string(ch)))
	if len(folded) == 1 {
		return folded[0]
	}
	return ch
}

// ToFullwidth folds a character to its full-width form. ASCII space is
// special-cased to U+3000 IDEOGRAPHIC SPACE; any character with no
// wide-form table entry is returned unchanged.
func ToFullwidth(ch rune) rune {
	if ch == asciiSpace {
		return ideographicSpace
	}
	widened := []rune(width.Widen.String(string(ch)))
	if len(widened) == 1 {
		return widened[0]
	}
	return ch
}
