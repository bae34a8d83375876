// Copyright 2026 Charles Halifax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package dump writes a block tree as an S-expression,
// one block per line.
// The output is meant for tests and debugging and is stable:
//
//	(SidebarBlock :id "aside"
//	  (Paragraph "Some text"))
//
// Metadata is written after the block's head as keyword pairs.
// The first positional attribute is written as the shorthand fields
// it sets. Later ones are written as :pos "N" "value" and named
// attributes as :attr "name" "value", each sorted.
// Inline values are written as their words joined by single spaces.
package dump

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charles-halifax/asciidoc"
)

// Dump writes the given blocks to w.
func Dump(w io.Writer, blocks []asciidoc.Block) error {
	ww := &errWriter{w: w}
	for _, b := range blocks {
		writeTree(ww, "", b)
	}
	if ww.hasWritten {
		ww.WriteString("\n")
	}
	return ww.err
}

// String returns the dump of blocks.
func String(blocks []asciidoc.Block) string {
	sb := new(strings.Builder)
	Dump(sb, blocks)
	return sb.String()
}

func writeTree(w *errWriter, indent string, root asciidoc.Block) {
	indents := make(map[asciidoc.Block]string)
	asciidoc.Walk(root, &asciidoc.WalkOptions{
		Pre: func(c *asciidoc.Cursor) bool {
			curr := indent
			if c.Parent() != nil {
				curr = indents[c.Parent()] + "  "
			}
			if c.Item() != nil {
				curr += "  "
			}
			indents[c.Block()] = curr
			if w.hasWritten {
				w.WriteString("\n")
			}
			w.WriteString(curr)
			w.WriteString("(")
			writeHead(w, c.Block())
			return true
		},
		Post: func(c *asciidoc.Cursor) bool {
			w.WriteString(")")
			return true
		},
		Item: func(c *asciidoc.Cursor, enter bool) {
			if !enter {
				w.WriteString(")")
				return
			}
			writeItem(w, indents[c.Block()]+"  ", c.Item())
		},
	})
}

// writeItem opens an item. Its blocks and the closing paren follow.
func writeItem(w *errWriter, indent string, item *asciidoc.ListItem) {
	w.WriteString("\n")
	w.WriteString(indent)
	w.WriteString("(Item ")
	w.WriteString(strconv.Quote(item.Marker))
	if item.Checkbox != asciidoc.NoCheckbox {
		keyword(w, "checkbox", item.Checkbox.String())
	}
	if item.Term != nil {
		keyword(w, "term", item.Term.Text())
	}
}

// writeHead writes the block's name, metadata, and leaf content.
func writeHead(w *errWriter, b asciidoc.Block) {
	switch b := b.(type) {
	case *asciidoc.Paragraph:
		w.WriteString("Paragraph")
		writeMetadata(w, b.Meta)
		for _, line := range b.Lines {
			if line.Comment {
				w.WriteString(" (Comment ")
				w.WriteString(strconv.Quote(line.Text))
				w.WriteString(")")
				continue
			}
			w.WriteString(" ")
			w.WriteString(strconv.Quote(line.Text))
		}
	case *asciidoc.Section:
		w.WriteString("Section ")
		w.WriteString(strconv.Itoa(b.Level))
		w.WriteString(" ")
		w.WriteString(strconv.Quote(b.Title.Text()))
		writeMetadata(w, b.Meta)
	case *asciidoc.SectionHeader:
		w.WriteString("SectionHeader ")
		w.WriteString(strconv.Itoa(b.Level))
		w.WriteString(" ")
		w.WriteString(strconv.Quote(b.Title.Text()))
		writeMetadata(w, b.Meta)
	case *asciidoc.List:
		w.WriteString(b.Type.String())
		writeMetadata(w, b.Meta)
	case *asciidoc.ThematicBreak:
		w.WriteString("ThematicBreak")
		writeMetadata(w, b.Meta)
	case *asciidoc.PageBreak:
		w.WriteString("PageBreak")
		writeMetadata(w, b.Meta)
	case *asciidoc.Nestable:
		w.WriteString(b.Kind.String())
		if b.Name != "" {
			keyword(w, "name", b.Name)
		}
		writeMetadata(w, b.Meta)
	case *asciidoc.Verse:
		w.WriteString("Verse")
		writeMetadata(w, b.Meta)
		writeStrings(w, b.Lines)
	case *asciidoc.Literal:
		w.WriteString(b.Kind.String())
		if b.Language != "" {
			keyword(w, "language", b.Language)
		}
		writeMetadata(w, b.Meta)
		writeStrings(w, b.Lines)
	case *asciidoc.BlockMacro:
		w.WriteString(b.Kind.String())
		w.WriteString(" ")
		w.WriteString(strconv.Quote(b.Name))
		w.WriteString(" ")
		w.WriteString(strconv.Quote(b.Target))
		w.WriteString(" ")
		w.WriteString(strconv.Quote(b.Text))
		writeMetadata(w, b.Meta)
	case *asciidoc.DanglingPrefix:
		w.WriteString("DanglingPrefix")
		writeMetadata(w, b.Meta)
	}
}

func writeMetadata(w *errWriter, m asciidoc.Metadata) {
	for _, id := range m.IDs {
		keyword(w, "id", id)
	}
	if m.Style != "" {
		keyword(w, "style", m.Style)
	}
	for _, role := range m.Roles {
		keyword(w, "role", role)
	}
	for _, opt := range m.Options {
		keyword(w, "option", opt)
	}
	if m.Title != nil {
		keyword(w, "title", m.Title.Text())
	}

	positions := make([]int, 0, len(m.Positional))
	for i := range m.Positional {
		if i > 1 {
			positions = append(positions, i)
		}
	}
	sort.Ints(positions)
	for _, i := range positions {
		keyword(w, "pos", strconv.Itoa(i))
		w.WriteString(" ")
		w.WriteString(strconv.Quote(m.Positional[i]))
	}

	names := make([]string, 0, len(m.Named))
	for name := range m.Named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keyword(w, "attr", name)
		w.WriteString(" ")
		w.WriteString(strconv.Quote(m.Named[name]))
	}
}

func keyword(w *errWriter, name, value string) {
	w.WriteString(" :")
	w.WriteString(name)
	w.WriteString(" ")
	w.WriteString(strconv.Quote(value))
}

func writeStrings(w *errWriter, lines []string) {
	for _, line := range lines {
		w.WriteString(" ")
		w.WriteString(strconv.Quote(line))
	}
}

type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}
