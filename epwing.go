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

// Package epwing reads EPWING-format Japanese electronic dictionaries: a
// directory rooted at a CATALOGS manifest, containing one or more
// subbooks, each a fixed-layout binary file of paginated text and
// B+-tree-like search indices. The library is read-only; it never
// modifies, and has no facility for writing, EPWING data.
package epwing

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/epwing/catalog"
	"seehuhn.de/go/epwing/index"
	"seehuhn.de/go/epwing/internal/errkind"
	"seehuhn.de/go/epwing/jis0208"
	"seehuhn.de/go/epwing/text"
	"seehuhn.de/go/epwing/tree"
)

// ReadSeekCloser is a seekable byte stream that can be closed; subbook
// data files, and anything substituted for one in a test, satisfy it.
type ReadSeekCloser interface {
	io.ReadSeeker
	io.Closer
}

// Book is an opened EPWING dictionary directory. It is read-only and safe
// to share by reference after Open returns; each OpenSubbook call
// produces an independent stream.
type Book struct {
	root    string
	catalog *catalog.Catalog
	byTitle map[string]int
}

// Open reads root/CATALOGS and returns the dictionary it describes.
func Open(root string) (*Book, error) {
	f, err := os.Open(filepath.Join(root, "CATALOGS"))
	if err != nil {
		return nil, errkind.Wrap("Open", Io, err)
	}
	defer f.Close()

	cat, err := catalog.Read(f)
	if err != nil {
		return nil, err
	}

	byTitle := make(map[string]int, len(cat.Subbooks))
	for i, sb := range cat.Subbooks {
		byTitle[sb.Title] = i
	}

	return &Book{root: root, catalog: cat, byTitle: byTitle}, nil
}

// Subbooks returns the dictionary's subbook descriptors, in catalog
// order.
func (b *Book) Subbooks() []catalog.Subbook {
	return b.catalog.Subbooks
}

// TitleIndex returns a snapshot of the subbook title-to-index lookup
// built at Open time: the caller's copy can be mutated freely without
// affecting the Book.
func (b *Book) TitleIndex() map[string]int {
	return maps.Clone(b.byTitle)
}

// OpenSubbook opens the data file for desc and parses its index
// descriptor table, transferring ownership of the resulting file handle
// to the returned Subbook.
func (b *Book) OpenSubbook(desc *catalog.Subbook) (*Subbook, error) {
	dir := desc.TrimmedDirectory()
	if len(dir) == 0 {
		return nil, errkind.Wrap("OpenSubbook", InvalidFormat, nil)
	}

	path := filepath.Join(b.root, string(dir), "DATA", string(desc.TextFile))
	f, err := os.Open(path)
	if err != nil {
		return nil, errkind.Wrap("OpenSubbook", Io, err)
	}

	sb, err := newSubbook(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return sb, nil
}

// Subbook is one dictionary's text and search indices. It mutably owns a
// seekable byte stream: it is not safe for concurrent use, since reads
// and searches both seek the underlying stream.
type Subbook struct {
	f       ReadSeekCloser
	indices *index.Indices
}

// newSubbook parses the index descriptor table from the first page of
// f. The subbook descriptor's IndexPage is not consulted here: per
// original_source/src/lib.rs's Book::open_subbook, the header page is
// always the data file's first page, regardless of the catalog's
// IndexPage field.
func newSubbook(f ReadSeekCloser) (*Subbook, error) {
	indices, err := index.Read(f)
	if err != nil {
		return nil, err
	}
	return &Subbook{f: f, indices: indices}, nil
}

// Close releases the subbook's underlying file handle.
func (s *Subbook) Close() error {
	return s.f.Close()
}

// ReadText decodes the text run starting at loc.
func (s *Subbook) ReadText(loc tree.Location) (text.Text, error) {
	offset := int64(loc.Page)*tree.PageSize + int64(loc.Offset)
	if _, err := s.f.Seek(offset, io.SeekStart); err != nil {
		return nil, errkind.Wrap("ReadText", Io, err)
	}
	return text.Read(s.f)
}

// Search canonicalizes query against kind's rules and descends kind's
// index tree for it, returning the matching Locations in on-disk order.
func (s *Subbook) Search(kind index.Kind, query string) ([]tree.Location, error) {
	desc := s.indices.Get(kind)
	if desc == nil {
		return nil, errkind.Wrap("Search", IndexNotAvailable, nil)
	}

	canonical := desc.Canon.Canonicalize(query)
	encoded := jis0208.EncodeString(canonical)

	return tree.Search(s.f, desc.Page, encoded)
}
