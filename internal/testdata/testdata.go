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

// Package testdata builds a small, synthetic EPWING dictionary directory
// in memory: a CATALOGS manifest plus one subbook's HONMON data file,
// laid out exactly as the wire formats in this module expect, but never
// captured from a real disc. It exists so the root package and its
// sub-packages can exercise the end-to-end scenarios in isolation,
// without shipping a real (and license-encumbered) dictionary image.
package testdata

import (
	"seehuhn.de/go/epwing/canon"
	"seehuhn.de/go/epwing/jis0208"
)

// PageSize is the fixed EPWING page size, duplicated here (rather than
// imported from package tree) so this package stays leaf-level and free
// of a dependency on the rest of the module's search-tree code.
const PageSize = 2048

// Fixture is a generated dictionary directory together with the values a
// test should expect to observe when reading it back.
type Fixture struct {
	// Catalogs is the content of the directory's CATALOGS file.
	Catalogs []byte
	// Honmon is the content of the single subbook's DATA/HONMON file.
	Honmon []byte

	// Directory is the subbook's directory name, trimmed.
	Directory string
	// Title is the subbook's decoded title.
	Title string

	// SearchWord is a query that, once canonicalized and encoded, matches
	// the single entry planted in the WordAsIs index.
	SearchWord string
	// SearchLocation is the Location the WordAsIs search for SearchWord
	// resolves to.
	SearchLocation struct {
		Page   uint32
		Offset uint16
	}

	// TitleTextLocation addresses the text run planted at the front of
	// the text area, decodable with (*epwing.Subbook).ReadText.
	TitleTextLocation struct {
		Page   uint32
		Offset uint16
	}
	// TitleText is the plaintext (*text.Text).ToPlaintext of the run at
	// TitleTextLocation.
	TitleText string
}

func putU16BE(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

func putU32BE(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func pad(buf []byte, n int) []byte {
	return append(buf, make([]byte, n)...)
}

// Build assembles a one-subbook fixture: a header page (page 0 of
// HONMON) carrying a Menu and a WordAsIs index descriptor, a one-page
// WordAsIs tree with a single variable-encoding leaf entry, and a text
// area holding two decodable runs (the title run and the search hit).
func Build() Fixture {
	const (
		directory  = "JMDICT"
		title      = "ＪＭＤＩＣＴ"
		searchWord = "environmental stress"
	)

	var fx Fixture
	fx.Directory = directory
	fx.Title = title
	fx.SearchWord = searchWord

	// --- HONMON layout -----------------------------------------------
	//
	// page 0: subbook header (index descriptor table)
	// page 1: WordAsIs index tree root (single leaf page)
	// page 2: text area

	wordAsIsRules := canon.Rules{
		Katakana: canon.Convert, Lower: canon.Convert, Mark: canon.Delete,
		LongVowel: canon.Convert, DoubleConsonant: canon.Convert,
		ContractedSound: canon.Convert, SmallVowel: canon.Convert,
		VoicedConsonant: canon.Convert, PSound: canon.Convert,
		Space: canon.Delete,
	}
	canonicalWord := wordAsIsRules.Canonicalize(searchWord)
	wordJIS := jis0208.EncodeString(canonicalWord)

	const (
		wordAsIsTreePage = 1 // 0-based
		textPage         = 2 // 0-based
	)
	fx.SearchLocation.Page = textPage
	fx.TitleTextLocation.Page = textPage
	fx.TitleTextLocation.Offset = 0

	header := make([]byte, 0, PageSize)
	header = append(header, 0x00)        // reserved
	header = append(header, 0x02)        // n_indices = 2
	header = pad(header, 2)              // bytes 2-3: reserved
	header = append(header, 0x00)        // global_avail = 0
	header = pad(header, 16-len(header)) // pad to descriptor table base

	// descriptor 0: Menu, unused by the tests but present so Indices.Get
	// exercises the "not all descriptors are WordAsIs" path. Each
	// 16-byte descriptor slot carries 14 bytes of fields (index_id,
	// skip, start_page, page_count, avail, flags24) plus 2 trailing
	// unused bytes; index.Read seeks to each slot by its fixed stride,
	// so the unused tail must be padded explicitly rather than left to
	// fall out of sequential appends.
	const descriptorSize = 16
	descBase := len(header)
	header = append(header, 0x01)              // index_id = Menu
	header = append(header, 0x00)              // skipped
	header = putU32BE(header, wordAsIsTreePage) // start_page (1-based == tree page + 0, unused)
	header = putU32BE(header, 1)               // page_count
	header = append(header, 0x01)              // avail
	header = append(header, 0x00, 0x00, 0x00)  // flags24
	header = pad(header, descBase+descriptorSize-len(header))

	// descriptor 1: WordAsIs, root at wordAsIsTreePage (1-based on disk).
	descBase = len(header)
	header = append(header, 0x91)
	header = append(header, 0x00)
	header = putU32BE(header, wordAsIsTreePage+1) // on-disk 1-based
	header = putU32BE(header, 1)
	header = append(header, 0x01)
	header = append(header, 0x00, 0x00, 0x00)
	header = pad(header, descBase+descriptorSize-len(header))

	header = pad(header, PageSize-len(header))

	// Text area: a short run decodable by package text, planted at
	// offset 0 of the text page (TitleTextLocation), followed directly
	// by the run the WordAsIs search resolves to (SearchLocation); the
	// offset of the latter is computed from the length of the former
	// rather than hardcoded, so the two stay consistent by construction.
	// The message is pure katakana: plain ASCII (including the space
	// character) has no JIS X 0208 mapping (see
	// jis0208.TestEncodeUnmappable), so any run meant to survive an
	// Encode/Decode round trip has to stay out of it, the same
	// constraint package jis0208's own round-trip test observes.
	const message = "ジャパニーズジショ"
	fx.TitleText = " <ref>" + message + "</ref>\n"

	var text []byte
	text = append(text, 0x1F, 0x02)             // start text
	text = append(text, 0x1F, 0x09, 0x00, 0x01) // indent 1
	text = append(text, 0x1F, 0x42)             // begin ref
	text = append(text, jis0208.EncodeString(message)...)
	text = append(text, 0x1F, 0x62, 0, 0, 0, 0, 0, 0) // end ref
	text = append(text, 0x1F, 0x0A)                   // newline
	text = append(text, 0x1F, 0x03)                   // end text

	textOffset := uint16(len(text))
	fx.SearchLocation.Offset = textOffset

	text = append(text, 0x1F, 0x02) // start text (search hit run)
	text = append(text, jis0208.EncodeString(canonicalWord)...)
	text = append(text, 0x1F, 0x03) // end text
	text = pad(text, PageSize-len(text))

	// WordAsIs tree: one leaf page, variable encoding, one entry.
	leaf := make([]byte, 0, PageSize)
	leaf = append(leaf, 0x80) // leaf, no groups
	leaf = append(leaf, 0x00) // entry_len = 0: variable encoding
	leaf = putU16BE(leaf, 1)  // entry_count = 1
	leaf = append(leaf, byte(len(wordJIS)))
	leaf = append(leaf, wordJIS...)
	leaf = putU32BE(leaf, textPage+1) // 1-based text page
	leaf = putU16BE(leaf, textOffset)
	leaf = pad(leaf, 6) // head_page, head_offset: discarded
	leaf = pad(leaf, PageSize-len(leaf))

	honmon := make([]byte, 0, PageSize*3)
	honmon = append(honmon, header...)
	honmon = append(honmon, leaf...)
	honmon = append(honmon, text...)
	fx.Honmon = honmon

	// --- CATALOGS ------------------------------------------------------

	const titleLen = 80
	const directoryLen = 8

	cat := make([]byte, 0, 16+96)
	cat = putU16BE(cat, 1) // n_subbooks
	cat = putU16BE(cat, 1) // epwing_version
	cat = pad(cat, 12)     // reserved

	cat = pad(cat, 2) // per-subbook reserved
	titleJIS := jis0208.EncodeString(title)
	cat = append(cat, titleJIS...)
	cat = pad(cat, titleLen-len(titleJIS))
	dirField := directory
	for len(dirField) < directoryLen {
		dirField += " "
	}
	cat = append(cat, dirField...)
	cat = pad(cat, 4) // reserved
	cat = putU16BE(cat, 0) // index_page = 0 (header is HONMON's first page)

	fx.Catalogs = cat

	return fx
}
