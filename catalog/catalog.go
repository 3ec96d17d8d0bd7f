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

// Package catalog decodes the CATALOGS file at the root of an EPWING
// dictionary directory into an ordered list of subbook descriptors.
package catalog

import (
	"io"

	"seehuhn.de/go/epwing/internal/bitreader"
	"seehuhn.de/go/epwing/internal/errkind"
	"seehuhn.de/go/epwing/jis0208"
)

// Catalog is the decoded content of a CATALOGS file.
type Catalog struct {
	EpwingVersion uint16
	Subbooks      []Subbook
}

// Subbook describes one dictionary within a Catalog.
type Subbook struct {
	// Title is the subbook's display title, decoded from JIS X 0208.
	Title string
	// Directory is the 8-byte, right-space-padded subbook directory
	// name, as stored on disk. Use TrimmedDirectory for the bytes with
	// trailing spaces removed.
	Directory [8]byte
	// IndexPage is the raw page number field read from the catalog
	// entry. It is not consulted when opening a subbook: the index
	// descriptor table is always read from the data file's first page
	// (see (*epwing.Book).OpenSubbook).
	IndexPage uint16
	// TextFile is the filename of the subbook's data file, relative to
	// its DATA directory. It is always "HONMON": the EPWING v2 filename
	// section that could override this is not implemented.
	TextFile []byte
}

// TrimmedDirectory returns Directory with trailing space bytes (0x20)
// removed.
func (s *Subbook) TrimmedDirectory() []byte {
	end := len(s.Directory)
	for end > 0 && s.Directory[end-1] == ' ' {
		end--
	}
	return s.Directory[:end]
}

const (
	titleLen     = 80
	directoryLen = 8
)

// Read decodes a CATALOGS file from r.
func Read(r io.ReadSeeker) (*Catalog, error) {
	br := bitreader.New(r)

	nSubbooks, err := br.U16BE()
	if err != nil {
		return nil, errkind.FromRead("catalog.Read", err)
	}
	epwingVersion, err := br.U16BE()
	if err != nil {
		return nil, errkind.FromRead("catalog.Read", err)
	}
	if err := br.Skip(12); err != nil {
		return nil, errkind.Wrap("catalog.Read", errkind.Io, err)
	}

	subbooks := make([]Subbook, 0, nSubbooks)
	for i := 0; i < int(nSubbooks); i++ {
		sb, err := readSubbook(br)
		if err != nil {
			return nil, err
		}
		subbooks = append(subbooks, sb)
	}

	return &Catalog{EpwingVersion: epwingVersion, Subbooks: subbooks}, nil
}

func readSubbook(br *bitreader.Reader) (Subbook, error) {
	if err := br.Skip(2); err != nil {
		return Subbook{}, errkind.Wrap("catalog.Read", errkind.Io, err)
	}

	titleJIS, err := br.Bytes(titleLen)
	if err != nil {
		return Subbook{}, errkind.FromRead("catalog.Read", err)
	}
	title, ok := jis0208.DecodeString(trimZeroPair(titleJIS))
	if !ok {
		return Subbook{}, errkind.Wrap("catalog.Read", errkind.InvalidEncoding, nil)
	}

	dirBytes, err := br.Bytes(directoryLen)
	if err != nil {
		return Subbook{}, errkind.FromRead("catalog.Read", err)
	}
	var directory [directoryLen]byte
	copy(directory[:], dirBytes)

	if err := br.Skip(4); err != nil {
		return Subbook{}, errkind.Wrap("catalog.Read", errkind.Io, err)
	}

	indexPage, err := br.U16BE()
	if err != nil {
		return Subbook{}, errkind.FromRead("catalog.Read", err)
	}

	return Subbook{
		Title:     title,
		Directory: directory,
		IndexPage: indexPage,
		TextFile:  []byte("HONMON"),
	}, nil
}

// trimZeroPair returns the prefix of data up to (but not including) the
// first (0x00, 0x00) byte pair, discarding the rest.
func trimZeroPair(data []byte) []byte {
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return data[:i]
		}
	}
	return data
}
