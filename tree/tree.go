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

// Package tree descends the B+-tree-like search structure that backs
// every EPWING index: a sequence of fixed 2048-byte pages, each either an
// internal node (a sorted array of (name, child page) pairs) or a leaf
// node in one of three encodings.
package tree

import (
	"bytes"
	"io"

	"seehuhn.de/go/epwing/internal/bitreader"
	"seehuhn.de/go/epwing/internal/errkind"
)

// PageSize is the fixed size, in bytes, of every index tree page.
const PageSize = 2048

// Location addresses a span of text within a subbook's data file.
type Location struct {
	// Page is the 0-based page number.
	Page uint32
	// Offset is the byte offset within the page.
	Offset uint16
}

// AtPage returns the Location at the start of the given 0-based page.
func AtPage(page uint32) Location {
	return Location{Page: page}
}

// Search descends the index tree rooted at rootPage, looking for query
// (already canonicalized and JIS X 0208-encoded). Results are returned in
// on-disk order; a nil slice with a nil error means the word was not
// found.
func Search(r io.ReadSeeker, rootPage uint32, query []byte) ([]Location, error) {
	br := bitreader.New(r)
	if err := br.SeekTo(int64(rootPage) * PageSize); err != nil {
		return nil, errkind.Wrap("tree.Search", errkind.Io, err)
	}
	return descend(br, query)
}

func descend(br *bitreader.Reader, query []byte) ([]Location, error) {
	pageID, err := br.U8()
	if err != nil {
		return nil, errkind.FromRead("tree.Search", err)
	}
	entryLen, err := br.U8()
	if err != nil {
		return nil, errkind.FromRead("tree.Search", err)
	}
	entryCount, err := br.U16BE()
	if err != nil {
		return nil, errkind.FromRead("tree.Search", err)
	}

	isLeaf := pageID&0x80 != 0
	hasGroups := pageID&0x10 != 0
	variable := entryLen == 0

	if !isLeaf {
		return descendInternal(br, int(entryLen), int(entryCount), query)
	}
	return descendLeaf(br, hasGroups, variable, int(entryCount), query)
}

func descendInternal(br *bitreader.Reader, entryLen, entryCount int, query []byte) ([]Location, error) {
	for i := 0; i < entryCount; i++ {
		name, err := br.Bytes(entryLen)
		if err != nil {
			return nil, errkind.FromRead("tree.Search", err)
		}
		child, err := br.U32BE()
		if err != nil {
			return nil, errkind.FromRead("tree.Search", err)
		}
		if bytes.Compare(name, query) >= 0 {
			if err := br.SeekTo(int64(child-1) * PageSize); err != nil {
				return nil, errkind.Wrap("tree.Search", errkind.Io, err)
			}
			return descend(br, query)
		}
	}
	return nil, nil
}

func descendLeaf(br *bitreader.Reader, hasGroups, variable bool, entryCount int, query []byte) ([]Location, error) {
	var results []Location
	matched := false

	for i := 0; i < entryCount; i++ {
		switch {
		case hasGroups:
			groupID, err := br.U8()
			if err != nil {
				return nil, errkind.FromRead("tree.Search", err)
			}
			switch groupID {
			case 0x80: // START
				nameLen, err := br.U8()
				if err != nil {
					return nil, errkind.FromRead("tree.Search", err)
				}
				if _, err := br.U32BE(); err != nil {
					return nil, errkind.FromRead("tree.Search", err)
				}
				name, err := br.Bytes(int(nameLen))
				if err != nil {
					return nil, errkind.FromRead("tree.Search", err)
				}
				matched = bytes.Equal(name, query)
			case 0xC0: // ENTRY
				textPage, err := br.U32BE()
				if err != nil {
					return nil, errkind.FromRead("tree.Search", err)
				}
				textOffset, err := br.U16BE()
				if err != nil {
					return nil, errkind.FromRead("tree.Search", err)
				}
				if matched {
					results = append(results, Location{Page: textPage - 1, Offset: textOffset})
				}
			case 0x00: // SINGLE: unimplemented, see spec open question
				return nil, errkind.Wrap("tree.Search", errkind.InvalidFormat, nil)
			default:
				return nil, errkind.Wrap("tree.Search", errkind.InvalidFormat, nil)
			}

		case variable:
			nameLen, err := br.U8()
			if err != nil {
				return nil, errkind.FromRead("tree.Search", err)
			}
			name, err := br.Bytes(int(nameLen))
			if err != nil {
				return nil, errkind.FromRead("tree.Search", err)
			}
			textPage, err := br.U32BE()
			if err != nil {
				return nil, errkind.FromRead("tree.Search", err)
			}
			textOffset, err := br.U16BE()
			if err != nil {
				return nil, errkind.FromRead("tree.Search", err)
			}
			if err := br.Skip(6); err != nil { // head_page (u32) + head_offset (u16), discarded
				return nil, errkind.Wrap("tree.Search", errkind.Io, err)
			}
			if bytes.Equal(name, query) {
				results = append(results, Location{Page: textPage - 1, Offset: textOffset})
			}

		default: // fixed-length, no groups: unimplemented, see spec open question
			return nil, errkind.Wrap("tree.Search", errkind.InvalidFormat, nil)
		}
	}

	return results, nil
}
