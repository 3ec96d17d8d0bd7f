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

// Command epwdump is a thin inspection tool over package epwing: list a
// dictionary's subbooks, dump the plaintext of a page, or run a headword
// search. It is a demonstration of the library, not part of its API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"seehuhn.de/go/epwing"
	"seehuhn.de/go/epwing/index"
	"seehuhn.de/go/epwing/tree"
)

var reportLang = language.Japanese

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "epwdump",
		Short:         "Inspect EPWING dictionary directories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(), newCatCmd(), newSearchCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <root>",
		Short: "List the subbooks in a dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := epwing.Open(args[0])
			if err != nil {
				return err
			}
			w := pagerWriter(cmd)
			fmt.Fprintf(w, "dictionary (%s report): %d subbook(s)\n", reportLang, len(book.Subbooks()))
			for i, sb := range book.Subbooks() {
				fmt.Fprintf(w, "%2d  %-8s  %s\n", i, sb.TrimmedDirectory(), sb.Title)
			}
			return nil
		},
	}
}

func newCatCmd() *cobra.Command {
	var page uint32
	var offset uint16
	cmd := &cobra.Command{
		Use:   "cat <root> <subbook-index>",
		Short: "Decode and print the text at a page/offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sb, err := openIndexedSubbook(args[0], args[1])
			if err != nil {
				return err
			}
			defer sb.Close()

			loc := tree.Location{Page: page, Offset: offset}
			txt, err := sb.ReadText(loc)
			if err != nil {
				return err
			}
			fmt.Fprintln(pagerWriter(cmd), txt.ToPlaintext())
			return nil
		},
	}
	cmd.Flags().Uint32Var(&page, "page", 0, "page number")
	cmd.Flags().Uint16Var(&offset, "offset", 0, "byte offset within the page")
	return cmd
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <root> <subbook-index> <word>",
		Short: "Look up a headword in the word-as-is index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sb, err := openIndexedSubbook(args[0], args[1])
			if err != nil {
				return err
			}
			defer sb.Close()

			locs, err := sb.Search(index.WordAsIs, args[2])
			if err != nil {
				return err
			}
			w := pagerWriter(cmd)
			for _, loc := range locs {
				fmt.Fprintf(w, "page=%d offset=%d\n", loc.Page, loc.Offset)
			}
			return nil
		},
	}
	return cmd
}

func openIndexedSubbook(root, indexArg string) (*epwing.Book, *epwing.Subbook, error) {
	book, err := epwing.Open(root)
	if err != nil {
		return nil, nil, err
	}
	var i int
	if _, err := fmt.Sscanf(indexArg, "%d", &i); err != nil {
		return nil, nil, fmt.Errorf("invalid subbook index %q", indexArg)
	}
	subbooks := book.Subbooks()
	if i < 0 || i >= len(subbooks) {
		return nil, nil, fmt.Errorf("subbook index %d out of range (have %d)", i, len(subbooks))
	}
	sb, err := book.OpenSubbook(&subbooks[i])
	if err != nil {
		return nil, nil, err
	}
	return book, sb, nil
}
