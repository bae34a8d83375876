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

package asciidoc

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charles-halifax/asciidoc/attrlist"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestInsecureCharacters(t *testing.T) {
	const input = "Hello,\x00World"
	const want = "Hello,\ufffdWorld"

	source := []byte(input)
	doc, err := Parse(source)
	if err != nil {
		t.Fatal(err)
	}
	if string(source) != input {
		t.Errorf("Parse modified its input: %q", source)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("len(doc.Blocks) = %d; want 1", len(doc.Blocks))
	}
	para, ok := doc.Blocks[0].(*Paragraph)
	if !ok {
		t.Fatalf("doc.Blocks[0] = %T; want *Paragraph", doc.Blocks[0])
	}
	if got := para.Lines[0].Text; got != want {
		t.Errorf("para.Lines[0].Text = %q; want %q", got, want)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb\rc\nd", []string{"a", "b", "c", "d"}},
		{"\n", []string{""}},
		{"a\r", []string{"a"}},
	}
	for _, test := range tests {
		got := splitLines([]byte(test.source))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("splitLines(%q) (-want +got):\n%s", test.source, diff)
		}
	}
}

// parseBlocks parses source and fails the test on error.
func parseBlocks(tb testing.TB, p *Parser, source string) *Document {
	tb.Helper()
	doc, err := p.Parse([]byte(source))
	if err != nil {
		tb.Fatalf("Parse(%q): %v", source, err)
	}
	return doc
}

func TestIdenticalDelimitersDoNotNest(t *testing.T) {
	p := new(Parser).newBlockParser(splitLines([]byte("****\n****\n****\n****\n")))
	blocks, err := p.parseDocument()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d; want 2", len(blocks))
	}
	for i, b := range blocks {
		n, ok := b.(*Nestable)
		if !ok || n.Kind != SidebarBlock || len(n.Blocks) != 0 {
			t.Errorf("blocks[%d] = %#v; want empty sidebar", i, b)
		}
	}
	if p.st.inNestable() {
		t.Errorf("stack has %d frames after parsing; want only the sentinel", len(p.st.frames))
	}
}

func TestSectionHeaderContext(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   func(Block) bool
	}{
		{
			name:   "TopLevel",
			source: "=== Title\n",
			want: func(b Block) bool {
				h, ok := b.(*SectionHeader)
				return ok && h.Level == 2 && h.Title.Text() == "Title"
			},
		},
		{
			name:   "InsideSidebar",
			source: "****\n=== Title\n****\n",
			want: func(b Block) bool {
				n, ok := b.(*Nestable)
				if !ok || len(n.Blocks) != 1 {
					return false
				}
				para, ok := n.Blocks[0].(*Paragraph)
				return ok && para.Lines[0].Text == "=== Title"
			},
		},
		{
			name:   "DiscreteInsideSidebar",
			source: "****\n[discrete]\n=== Title\n****\n",
			want: func(b Block) bool {
				n, ok := b.(*Nestable)
				if !ok || len(n.Blocks) != 1 {
					return false
				}
				h, ok := n.Blocks[0].(*SectionHeader)
				return ok && h.Level == 2
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := parseBlocks(t, new(Parser), test.source)
			if len(doc.Blocks) != 1 {
				t.Fatalf("len(doc.Blocks) = %d; want 1", len(doc.Blocks))
			}
			if !test.want(doc.Blocks[0]) {
				t.Errorf("doc.Blocks[0] = %#v", doc.Blocks[0])
			}
		})
	}
}

func TestImplicitClose(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"EnclosingDelimiter", "====\n****\ninner\n====\n"},
		{"EndOfInput", "====\n****\ninner\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			logger, hook := logtest.NewNullLogger()
			logger.SetLevel(logrus.DebugLevel)
			doc := parseBlocks(t, &Parser{Logger: logger}, test.source)
			if len(doc.Blocks) != 1 {
				t.Fatalf("len(doc.Blocks) = %d; want 1", len(doc.Blocks))
			}
			example, ok := doc.Blocks[0].(*Nestable)
			if !ok || example.Kind != ExampleBlock || len(example.Blocks) != 1 {
				t.Fatalf("doc.Blocks[0] = %#v; want example with one child", doc.Blocks[0])
			}
			sidebar, ok := example.Blocks[0].(*Nestable)
			if !ok || sidebar.Kind != SidebarBlock || len(sidebar.Blocks) != 1 {
				t.Errorf("example.Blocks[0] = %#v; want sidebar with one child", example.Blocks[0])
			}
			if len(hook.AllEntries()) == 0 {
				t.Error("no debug entries logged")
			}
		})
	}
}

func TestDebugLineNumbers(t *testing.T) {
	const source = "intro\n" +
		"\n" +
		":toc: left\n" +
		"\n" +
		"* one\n" +
		"* two\n" +
		"\n" +
		"====\n" +
		"inner\n" +
		"====\n"
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	parseBlocks(t, &Parser{Logger: logger}, source)

	want := map[string]int{
		"attribute entry":      3,
		"list":                 5,
		"open nestable block":  8,
		"close nestable block": 10,
	}
	got := make(map[string]int)
	for _, entry := range hook.AllEntries() {
		if _, ok := want[entry.Message]; !ok {
			continue
		}
		line, ok := entry.Data["line"].(int)
		if !ok {
			t.Errorf("%q entry has line field %#v; want an int", entry.Message, entry.Data["line"])
			continue
		}
		got[entry.Message] = line
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("logged line numbers (-want +got):\n%s", diff)
	}
}

func TestParseScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}
	measure := func(n int) time.Duration {
		source := []byte(strings.Repeat("para\n\n", n))
		var best time.Duration
		for i := 0; i < 3; i++ {
			start := time.Now()
			if _, err := Parse(source); err != nil {
				t.Fatal(err)
			}
			if d := time.Since(start); i == 0 || d < best {
				best = d
			}
		}
		return best
	}
	const n = 2000
	small := measure(n)
	large := measure(8 * n)
	// Linear growth puts the ratio near 8 and quadratic growth near 64.
	if ratio := float64(large) / float64(small); ratio > 24 {
		t.Errorf("parsing %d paragraphs took %v, %d took %v (%.1fx); want roughly linear growth",
			n, small, 8*n, large, ratio)
	}
}

func TestVerbatimIgnoresDelimiters(t *testing.T) {
	const source = "****\n----\n****\n====\n----\n****\n"
	doc := parseBlocks(t, new(Parser), source)
	if len(doc.Blocks) != 1 {
		t.Fatalf("len(doc.Blocks) = %d; want 1", len(doc.Blocks))
	}
	sidebar := doc.Blocks[0].(*Nestable)
	if len(sidebar.Blocks) != 1 {
		t.Fatalf("len(sidebar.Blocks) = %d; want 1", len(sidebar.Blocks))
	}
	listing, ok := sidebar.Blocks[0].(*Literal)
	if !ok || listing.Kind != ListingLiteral {
		t.Fatalf("sidebar.Blocks[0] = %#v; want listing", sidebar.Blocks[0])
	}
	if diff := cmp.Diff([]string{"****", "===="}, listing.Lines); diff != "" {
		t.Errorf("listing.Lines (-want +got):\n%s", diff)
	}
}

func TestAttributeEntries(t *testing.T) {
	const source = ":Author: Jane Doe\n:toc: left\n:draft:\n:toc!:\n\nText\n"
	p := &Parser{Attributes: map[string]string{"lang": "en", "draft": "yes"}}
	doc := parseBlocks(t, p, source)

	if diff := cmp.Diff([]string{"author", "draft", "lang"}, doc.Attributes.Names()); diff != "" {
		t.Errorf("doc.Attributes.Names() (-want +got):\n%s", diff)
	}
	if got, _ := doc.Attributes.Get("AUTHOR"); got.Text() != "Jane Doe" {
		t.Errorf("Get(AUTHOR) = %q; want %q", got.Text(), "Jane Doe")
	}
	if got, _ := doc.Attributes.Get("draft"); !got.IsEmpty() {
		t.Errorf("Get(draft) = %q; want empty", got.Text())
	}

	para := doc.Blocks[0].(*Paragraph)
	var entries []string
	for _, item := range para.Items {
		if e, ok := item.(*AttributeEntry); ok {
			entries = append(entries, e.Name)
		}
	}
	if diff := cmp.Diff([]string{"Author", "toc", "draft", "toc"}, entries); diff != "" {
		t.Errorf("attribute entries (-want +got):\n%s", diff)
	}
	if !para.Meta.IsEmpty() {
		t.Errorf("para.Meta = %+v; want empty", para.Meta)
	}
}

func TestDanglingPrefix(t *testing.T) {
	tests := []struct {
		name   string
		source string
		get    func(doc *Document) Block
	}{
		{
			name:   "EndOfInput",
			source: "text\n\n[[anchor]]\n.Title\n",
			get:    func(doc *Document) Block { return doc.Blocks[1] },
		},
		{
			name:   "BeforeClosingDelimiter",
			source: "****\ntext\n\n[[anchor]]\n.Title\n****\n",
			get:    func(doc *Document) Block { return doc.Blocks[0].(*Nestable).Blocks[1] },
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := parseBlocks(t, new(Parser), test.source)
			b, ok := test.get(doc).(*DanglingPrefix)
			if !ok {
				t.Fatalf("block = %#v; want *DanglingPrefix", test.get(doc))
			}
			if got := len(b.Items); got != 2 {
				t.Errorf("len(Items) = %d; want 2", got)
			}
			if got := b.Meta.ID(); got != "anchor" {
				t.Errorf("Meta.ID() = %q; want %q", got, "anchor")
			}
		})
	}
}

func TestInvalidAttributeList(t *testing.T) {
	_, err := Parse([]byte("[a=\"b]\ntext\n"))
	var ierr *InvariantError
	if !errors.As(err, &ierr) {
		t.Fatalf("Parse(...) error = %v; want *InvariantError", err)
	}
	var perr *attrlist.Error
	if !errors.As(err, &perr) {
		t.Errorf("Parse(...) error = %v; want to wrap *attrlist.Error", err)
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Errorf("Parse(...) error = %q; want to mention internal error", err)
	}
}

func TestLists(t *testing.T) {
	const source = "* [x] one\n" +
		"continued\n" +
		"+\n" +
		"attached\n" +
		"** nested\n" +
		"\n" +
		"* two\n" +
		"\n" +
		"Term:: Definition\n"
	doc := parseBlocks(t, new(Parser), source)
	if len(doc.Blocks) != 1 {
		t.Fatalf("len(doc.Blocks) = %d; want 1", len(doc.Blocks))
	}

	list := doc.Blocks[0].(*List)
	if list.Type != UnorderedList || len(list.Items) != 2 {
		t.Fatalf("doc.Blocks[0] = %v list with %d items; want UnorderedList with 2 items", list.Type, len(list.Items))
	}
	first := list.Items[0]
	if first.Checkbox != Checked {
		t.Errorf("first.Checkbox = %v; want %v", first.Checkbox, Checked)
	}
	if len(first.Blocks) != 3 {
		t.Fatalf("len(first.Blocks) = %d; want 3", len(first.Blocks))
	}
	principal := first.Blocks[0].(*Paragraph)
	if diff := cmp.Diff([]string{"one", "continued"}, paragraphTexts(principal)); diff != "" {
		t.Errorf("principal text (-want +got):\n%s", diff)
	}
	attached := first.Blocks[1].(*Paragraph)
	if diff := cmp.Diff([]string{"attached"}, paragraphTexts(attached)); diff != "" {
		t.Errorf("attached text (-want +got):\n%s", diff)
	}
	nested := first.Blocks[2].(*List)
	if len(nested.Items) != 1 || nested.Items[0].Marker != "**" {
		t.Errorf("nested list = %#v; want one \"**\" item", nested)
	}

	// A list with a different marker nests under the preceding item,
	// even across a blank line.
	second := list.Items[1]
	if len(second.Blocks) != 2 {
		t.Fatalf("len(second.Blocks) = %d; want 2", len(second.Blocks))
	}
	desc := second.Blocks[1].(*List)
	if desc.Type != DescriptionList || len(desc.Items) != 1 {
		t.Fatalf("second.Blocks[1] = %v list with %d items; want DescriptionList with 1 item", desc.Type, len(desc.Items))
	}
	if got := desc.Items[0].Term.Text(); got != "Term" {
		t.Errorf("term = %q; want %q", got, "Term")
	}
}

func paragraphTexts(p *Paragraph) []string {
	var texts []string
	for _, line := range p.Lines {
		texts = append(texts, line.Text)
	}
	return texts
}

func TestIncludes(t *testing.T) {
	includes := IncludeMap{
		"chapter.adoc": {"== Chapter", "", "include::nested.adoc[]"},
		"nested.adoc":  {"nested text"},
	}
	lines := splitLines([]byte("include::chapter.adoc[]\n\nafter\n"))
	original := append([]string(nil), lines...)
	p := (&Parser{Includes: includes}).newBlockParser(lines)
	blocks, err := p.parseDocument()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(original, lines); diff != "" {
		t.Errorf("include expansion modified the caller's lines (-want +got):\n%s", diff)
	}
	if len(blocks) != 3 {
		t.Fatalf("len(blocks) = %d; want 3", len(blocks))
	}
	if _, ok := blocks[0].(*SectionHeader); !ok {
		t.Errorf("blocks[0] = %T; want *SectionHeader", blocks[0])
	}
	if para, ok := blocks[1].(*Paragraph); !ok || para.Lines[0].Text != "nested text" {
		t.Errorf("blocks[1] = %#v; want paragraph \"nested text\"", blocks[1])
	}
}

func TestUnresolvedInclude(t *testing.T) {
	doc := parseBlocks(t, new(Parser), "include::missing.adoc[]\n")
	macro, ok := doc.Blocks[0].(*BlockMacro)
	if !ok || macro.Kind != CustomMacro || macro.Target != "missing.adoc" {
		t.Errorf("doc.Blocks[0] = %#v; want include macro", doc.Blocks[0])
	}
}

func TestCatalog(t *testing.T) {
	const source = "[[a]]\nfirst\n\n****\n[#b]\ninside\n****\n\n[[a]]\nduplicate\n"
	doc := parseBlocks(t, new(Parser), source)
	a, ok := doc.Catalog.Lookup("a")
	if !ok || a != doc.Blocks[0] {
		t.Errorf("Catalog[a] = %#v; want first paragraph", a)
	}
	b, ok := doc.Catalog.Lookup("b")
	if !ok || b != doc.Blocks[1].(*Nestable).Blocks[0] {
		t.Errorf("Catalog[b] = %#v; want paragraph inside sidebar", b)
	}
	if len(doc.Catalog) != 2 {
		t.Errorf("len(Catalog) = %d; want 2", len(doc.Catalog))
	}
}

func TestParseReader(t *testing.T) {
	doc, err := new(Parser).ParseReader(bytes.NewReader([]byte("para\n")))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Blocks) != 1 {
		t.Errorf("len(doc.Blocks) = %d; want 1", len(doc.Blocks))
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&SyntaxError{Line: 3, Msg: "unexpected \"x\""}, "line 3: unexpected \"x\""},
		{&InvariantError{Invariant: "stack balanced", Line: 7}, "line 7: internal error: stack balanced"},
		{
			&InvariantError{Invariant: "inline text resolves", Line: 2, Err: errLeadingComment},
			"line 2: internal error: inline text resolves: first line is a comment",
		},
	}
	for _, test := range tests {
		if got := test.err.Error(); got != test.want {
			t.Errorf("%#v.Error() = %q; want %q", test.err, got, test.want)
		}
	}
}
