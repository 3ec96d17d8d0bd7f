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

// Package jis0208 is the pure codec between JIS X 0208 16-bit codepoints
// (as they appear on EPWING disks, one byte pair per character) and Go
// runes. The codepoint table itself is not reimplemented here: JIS X 0208
// is byte-for-byte the graphic character set of EUC-JP once each byte has
// its high bit set, so the table lookup is delegated to
// golang.org/x/text/encoding/japanese, the same way the core spec treats
// jis_to_char as an external collaborator.
package jis0208

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var (
	decoder = japanese.EUCJP.NewDecoder()
	encoder = japanese.EUCJP.NewEncoder()
)

// Decode maps a 16-bit JIS X 0208 codepoint to the character it denotes.
// It reports ok=false for codepoints with no assigned character, such as
// 0x3000.
func Decode(cp uint16) (ch rune, ok bool) {
	euc := [2]byte{byte(cp>>8) | 0x80, byte(cp) | 0x80}
	out, _, err := transform.Bytes(decoder, euc[:])
	if err != nil || len(out) == 0 {
		return 0, false
	}
	r, size := utf8.DecodeRune(out)
	if size != len(out) || r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

// DecodeString decodes a sequence of big-endian JIS X 0208 byte pairs.
// It reports ok=false if any pair in the sequence has no mapping, in
// which case the returned string is unspecified.
func DecodeString(data []byte) (s string, ok bool) {
	if len(data)%2 != 0 {
		panic("jis0208: odd-length byte sequence")
	}
	var out []rune
	for i := 0; i < len(data); i += 2 {
		cp := uint16(data[i])<<8 | uint16(data[i+1])
		ch, ok := Decode(cp)
		if !ok {
			return "", false
		}
		out = append(out, ch)
	}
	return string(out), true
}

// Encode maps a character to its 16-bit JIS X 0208 codepoint. It reports
// ok=false if the character has no JIS X 0208 representation.
func Encode(ch rune) (cp uint16, ok bool) {
	out, _, err := transform.Bytes(encoder, []byte(string(ch)))
	if err != nil || len(out) != 2 {
		return 0, false
	}
	return uint16(out[0]&^0x80)<<8 | uint16(out[1]&^0x80), true
}

// EncodeString encodes every character of s to its big-endian JIS X 0208
// byte pair, in order, skipping characters with no JIS X 0208
// representation.
func EncodeString(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, ch := range s {
		cp, ok := Encode(ch)
		if !ok {
			continue
		}
		out = append(out, byte(cp>>8), byte(cp))
	}
	return out
}
