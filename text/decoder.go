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

package text

import (
	"bufio"
	"io"

	"seehuhn.de/go/epwing/internal/bitreader"
	"seehuhn.de/go/epwing/internal/errkind"
	"seehuhn.de/go/epwing/jis0208"
	"seehuhn.de/go/epwing/width"
)

// decoder holds the small amount of state the EPWING text control codes
// can mutate: whether we are inside a narrow-width run, and the keyword
// that delimits the current entry (set by the first 0x1F 0x41 seen, and
// the signal to stop when it repeats).
type decoder struct {
	src       *bufio.Reader
	out       Text
	narrow    bool
	delimiter *uint16
}

// Read decodes one text run from r, starting at the current position,
// and stops at 0x1F 0x03 (end of text) or at a repeated 0x1F 0x41 k
// keyword boundary.
func Read(r io.Reader) (Text, error) {
	d := &decoder{src: bufio.NewReader(r)}
	for {
		done, err := d.step()
		if err != nil {
			return nil, err
		}
		if done {
			return d.out, nil
		}
	}
}

func (d *decoder) step() (done bool, err error) {
	b, err := d.readByte()
	if err != nil {
		return false, err
	}

	if b != 0x1F {
		b2, err := d.readByte()
		if err != nil {
			return false, err
		}
		cp := uint16(b)<<8 | uint16(b2)
		if ch, ok := jis0208.Decode(cp); ok {
			if d.narrow {
				ch = width.ToStandardWidth(ch)
			}
			d.out = d.out.append(UnicodeString(string(ch)))
		} else {
			d.out = d.out.append(CustomCharacter(cp))
		}
		return false, nil
	}

	op, err := d.readByte()
	if err != nil {
		return false, err
	}
	switch op {
	case 0x02: // start text
	case 0x03: // end text
		return true, nil
	case 0x04: // start narrow text
		d.narrow = true
	case 0x05: // end narrow text
		d.narrow = false
	case 0x06:
		d.out = d.out.append(Unsupported("sub"))
	case 0x07:
		d.out = d.out.append(Unsupported("/sub"))
	case 0x09:
		n, err := d.readU16BE()
		if err != nil {
			return false, err
		}
		d.out = d.out.append(Indent(n))
	case 0x0A:
		d.out = d.out.append(Newline{})
	case 0x0E:
		d.out = d.out.append(Unsupported("sup"))
	case 0x0F:
		d.out = d.out.append(Unsupported("/sup"))
	case 0x10:
		d.out = d.out.append(NoNewline(true))
	case 0x11:
		d.out = d.out.append(NoNewline(false))
	case 0x41:
		k, err := d.readU16BE()
		if err != nil {
			return false, err
		}
		if d.delimiter != nil && *d.delimiter == k {
			return true, nil
		}
		if d.delimiter == nil {
			d.delimiter = &k
		}
	case 0x42:
		d.out = d.out.append(Unsupported("ref"))
	case 0x61: // end keyword
	case 0x62:
		if _, err := d.readU32BE(); err != nil {
			return false, err
		}
		if _, err := d.readU16BE(); err != nil {
			return false, err
		}
		d.out = d.out.append(Unsupported("/ref"))
	case 0xE0:
		n, err := d.readU16BE()
		if err != nil {
			return false, err
		}
		d.out = d.out.append(BeginDecoration(n))
	case 0xE1:
		d.out = d.out.append(EndDecoration{})
	default:
		return false, errkind.Wrap("text.Read", errkind.InvalidFormat, errUnknownOp(op))
	}
	return false, nil
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return 0, errkind.FromRead("text.Read", mapEOF(err))
	}
	return b, nil
}

func (d *decoder) readU16BE() (uint16, error) {
	hi, err := d.readByte()
	if err != nil {
		return 0, err
	}
	lo, err := d.readByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (d *decoder) readU32BE() (uint32, error) {
	hi, err := d.readU16BE()
	if err != nil {
		return 0, err
	}
	lo, err := d.readU16BE()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

func mapEOF(err error) error {
	if err == io.EOF {
		return bitreader.ErrUnexpectedEOF
	}
	return err
}
