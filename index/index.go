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

// Package index decodes a subbook's index descriptor table from its
// header page and derives the canonicalization rules each index was
// built with.
package index

import (
	"io"

	"seehuhn.de/go/epwing/canon"
	"seehuhn.de/go/epwing/internal/bitreader"
	"seehuhn.de/go/epwing/internal/errkind"
)

// Kind identifies a recognized index by its on-disk tag.
type Kind uint8

const (
	// Menu is the subbook's menu/table-of-contents locator index.
	Menu Kind = 0x01
	// Copyright is the subbook's copyright-statement locator index.
	Copyright Kind = 0x02
	// WordAsIs is the headword search index.
	WordAsIs Kind = 0x91
)

// Descriptor is one entry of the subbook's index descriptor table.
type Descriptor struct {
	Kind Kind
	// Page is the 0-based root page of this index's search tree.
	Page uint32
	// Length is the extent of the index, in pages.
	Length uint32
	// Availability is the raw per-index availability byte.
	Availability uint8
	// Flags24 is the raw 24-bit flag field the canonicalization rules
	// were derived from.
	Flags24 uint32
	// Canon holds the canonicalization rules derived for this index.
	Canon canon.Rules
}

// Indices holds the subset of a subbook's index descriptors recognized by
// this library: the menu, copyright and word-as-is indices. Other
// descriptor kinds are parsed (to keep the cursor advancing correctly)
// but discarded.
type Indices struct {
	Menu      *Descriptor
	Copyright *Descriptor
	WordAsIs  *Descriptor
}

// Get returns the descriptor for kind, or nil if this subbook does not
// carry it.
func (ix *Indices) Get(kind Kind) *Descriptor {
	switch kind {
	case Menu:
		return ix.Menu
	case Copyright:
		return ix.Copyright
	case WordAsIs:
		return ix.WordAsIs
	default:
		return nil
	}
}

const descriptorTableBase = 16
const descriptorSize = 16

// Read decodes the index descriptor table from a subbook's header page.
// r must be positioned so that offset 0 is the start of the header page;
// Read seeks freely within it.
func Read(r io.ReadSeeker) (*Indices, error) {
	br := bitreader.New(r)

	if err := br.SeekTo(1); err != nil {
		return nil, errkind.Wrap("index.Read", errkind.Io, err)
	}
	nIndices, err := br.U8()
	if err != nil {
		return nil, errkind.FromRead("index.Read", err)
	}

	if err := br.SeekTo(4); err != nil {
		return nil, errkind.Wrap("index.Read", errkind.Io, err)
	}
	globalAvail, err := br.U8()
	if err != nil {
		return nil, errkind.FromRead("index.Read", err)
	}
	if globalAvail > 0x02 {
		globalAvail = 0
	}

	ix := &Indices{}
	for i := 0; i < int(nIndices); i++ {
		if err := br.SeekTo(int64(descriptorTableBase + i*descriptorSize)); err != nil {
			return nil, errkind.Wrap("index.Read", errkind.Io, err)
		}
		desc, kind, err := readDescriptor(br, globalAvail)
		if err != nil {
			return nil, err
		}
		switch kind {
		case Menu:
			ix.Menu = desc
		case Copyright:
			ix.Copyright = desc
		case WordAsIs:
			ix.WordAsIs = desc
		}
	}

	return ix, nil
}

func readDescriptor(br *bitreader.Reader, globalAvail uint8) (*Descriptor, Kind, error) {
	indexID, err := br.U8()
	if err != nil {
		return nil, 0, errkind.FromRead("index.Read", err)
	}
	if err := br.Skip(1); err != nil {
		return nil, 0, errkind.Wrap("index.Read", errkind.Io, err)
	}
	startPage, err := br.U32BE()
	if err != nil {
		return nil, 0, errkind.FromRead("index.Read", err)
	}
	pageCount, err := br.U32BE()
	if err != nil {
		return nil, 0, errkind.FromRead("index.Read", err)
	}
	avail, err := br.U8()
	if err != nil {
		return nil, 0, errkind.FromRead("index.Read", err)
	}
	b0, err := br.U8()
	if err != nil {
		return nil, 0, errkind.FromRead("index.Read", err)
	}
	b1, err := br.U8()
	if err != nil {
		return nil, 0, errkind.FromRead("index.Read", err)
	}
	b2, err := br.U8()
	if err != nil {
		return nil, 0, errkind.FromRead("index.Read", err)
	}
	flags24 := uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)

	rules, err := deriveRules(indexID, globalAvail, avail, flags24)
	if err != nil {
		return nil, 0, err
	}

	page := startPage
	if page >= 1 {
		page--
	}

	return &Descriptor{
		Kind:         Kind(indexID),
		Page:         page,
		Length:       pageCount,
		Availability: avail,
		Flags24:      flags24,
		Canon:        rules,
	}, Kind(indexID), nil
}

func deriveRules(indexID, globalAvail, avail uint8, flags24 uint32) (canon.Rules, error) {
	spaceCanon := canon.Delete
	if indexID == 0x72 || indexID == 0x92 {
		spaceCanon = canon.AsIs
	}

	field := func(mask uint32, shift uint) (canon.Mode, error) {
		m, ok := canon.ModeFromField(uint8((flags24 & mask) >> shift))
		if !ok {
			return 0, errkind.Wrap("index.Read", errkind.InvalidFormat, nil)
		}
		return m, nil
	}

	switch {
	case globalAvail == 0x00 || avail == 0x02 || globalAvail == 0x02:
		katakana, err := field(0xC00000, 22)
		if err != nil {
			return canon.Rules{}, err
		}
		lower, err := field(0x300000, 20)
		if err != nil {
			return canon.Rules{}, err
		}
		mark := canon.Delete
		if (flags24&0x0C0000)>>18 != 0 {
			mark = canon.AsIs
		}
		longVowel, err := field(0x030000, 16)
		if err != nil {
			return canon.Rules{}, err
		}
		doubleConsonant, err := field(0x00C000, 14)
		if err != nil {
			return canon.Rules{}, err
		}
		contractedSound, err := field(0x003000, 12)
		if err != nil {
			return canon.Rules{}, err
		}
		smallVowel, err := field(0x000C00, 10)
		if err != nil {
			return canon.Rules{}, err
		}
		voicedConsonant, err := field(0x000300, 8)
		if err != nil {
			return canon.Rules{}, err
		}
		pSound, err := field(0x0000C0, 6)
		if err != nil {
			return canon.Rules{}, err
		}
		return canon.Rules{
			Katakana:        katakana,
			Lower:           lower,
			Mark:            mark,
			LongVowel:       longVowel,
			DoubleConsonant: doubleConsonant,
			ContractedSound: contractedSound,
			SmallVowel:      smallVowel,
			VoicedConsonant: voicedConsonant,
			PSound:          pSound,
			Space:           spaceCanon,
		}, nil

	case indexID == 0x70 || indexID == 0x90:
		return canon.Rules{
			Katakana:        canon.Convert,
			Lower:           canon.Convert,
			Mark:            canon.Delete,
			LongVowel:       canon.Convert,
			DoubleConsonant: canon.Convert,
			ContractedSound: canon.Convert,
			SmallVowel:      canon.Convert,
			VoicedConsonant: canon.Convert,
			PSound:          canon.Convert,
			Space:           spaceCanon,
		}, nil

	default:
		return canon.Rules{
			Katakana:        canon.AsIs,
			Lower:           canon.Convert,
			Mark:            canon.AsIs,
			LongVowel:       canon.AsIs,
			DoubleConsonant: canon.AsIs,
			ContractedSound: canon.AsIs,
			SmallVowel:      canon.AsIs,
			VoicedConsonant: canon.AsIs,
			PSound:          canon.AsIs,
			Space:           spaceCanon,
		}, nil
	}
}
