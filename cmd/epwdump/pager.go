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

package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// pagerWriter returns a writer that wraps long lines to the connected
// terminal's width, when stdout is a terminal; otherwise it returns
// cmd's output stream unchanged.
func pagerWriter(cmd *cobra.Command) io.Writer {
	out := cmd.OutOrStdout()
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return out
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return out
	}
	return &wrapWriter{dst: out, width: width}
}

// wrapWriter inserts a newline before any line would exceed width
// columns, splitting only at existing whitespace boundaries.
type wrapWriter struct {
	dst   io.Writer
	width int
	col   int
}

func (w *wrapWriter) Write(p []byte) (int, error) {
	n := len(p)
	for _, line := range strings.SplitAfter(string(p), "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimSuffix(line, "\n")
		for _, word := range strings.SplitAfter(trimmed, " ") {
			if w.col+len(word) > w.width && w.col > 0 {
				if _, err := io.WriteString(w.dst, "\n"); err != nil {
					return 0, err
				}
				w.col = 0
			}
			if _, err := io.WriteString(w.dst, word); err != nil {
				return 0, err
			}
			w.col += len(word)
		}
		if strings.HasSuffix(line, "\n") {
			if _, err := io.WriteString(w.dst, "\n"); err != nil {
				return 0, err
			}
			w.col = 0
		}
	}
	return n, nil
}
