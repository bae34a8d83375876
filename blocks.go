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
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// blockParser is a cursor over the logical lines of a document,
// used while splitting a document into blocks.
//
// Every rule either succeeds, advancing the cursor and updating st,
// or fails and leaves the parser untouched.
// Rules that can fail after consuming input are run with [attempt].
type blockParser struct {
	lines []string
	pos   int // index of the next unread line
	st    parserState

	// lists holds the marker keys of the enclosing lists, innermost last.
	// It is reset inside delimited blocks.
	lists []string

	inlines  InlineResolver
	includes IncludeResolver
	log      logrus.FieldLogger
}

// attempt runs f and rewinds the parser if f fails.
// Include expansion replaces p.lines rather than modifying it,
// so restoring the slice undoes any expansion f performed.
func attempt[T any](p *blockParser, f func() (T, bool)) (T, bool) {
	pos, lines, st := p.pos, p.lines, p.st.snapshot()
	v, ok := f()
	if !ok {
		p.pos, p.lines, p.st = pos, lines, st
		var zero T
		return zero, false
	}
	return v, true
}

// try is [attempt] for rules without a result value.
func (p *blockParser) try(f func() bool) bool {
	_, ok := attempt(p, func() (struct{}, bool) {
		return struct{}{}, f()
	})
	return ok
}

func (p *blockParser) atEnd() bool {
	return p.pos >= len(p.lines)
}

// lineNumber returns the 1-based number of the next unread line.
func (p *blockParser) lineNumber() int {
	return p.pos + 1
}

func (p *blockParser) peekLine() (string, bool) {
	if p.atEnd() {
		return "", false
	}
	return p.lines[p.pos], true
}

// lookahead reports whether the next line satisfies pred
// without consuming it.
func (p *blockParser) lookahead(pred func(string) bool) bool {
	line, ok := p.peekLine()
	return ok && pred(line)
}

// acceptLine consumes the next line if it satisfies pred.
func (p *blockParser) acceptLine(pred func(string) bool) (string, bool) {
	line, ok := p.peekLine()
	if !ok || !pred(line) {
		return "", false
	}
	p.pos++
	p.st.record(line)
	p.expandInclude()
	return line, true
}

// acceptAny consumes the next line if any of the grammars matches it.
// It returns the index of the first matching grammar.
func (p *blockParser) acceptAny(grammars ...func(string) bool) (int, string, bool) {
	line, ok := p.peekLine()
	if !ok {
		return -1, "", false
	}
	for i, g := range grammars {
		if g(line) {
			p.acceptLine(anyLine)
			return i, line, true
		}
	}
	return -1, "", false
}

// acceptNone consumes the next line if none of the grammars match it.
func (p *blockParser) acceptNone(grammars ...func(string) bool) (string, bool) {
	return p.acceptLine(func(line string) bool {
		for _, g := range grammars {
			if g(line) {
				return false
			}
		}
		return true
	})
}

func anyLine(string) bool { return true }

func (p *blockParser) skipBlankLines() {
	for {
		if _, ok := p.acceptLine(isBlankLine); !ok {
			return
		}
	}
}

// violate aborts the parse with an [*InvariantError].
func (p *blockParser) violate(invariant string, err error) {
	panic(&InvariantError{
		Invariant: invariant,
		Line:      p.lineNumber(),
		Err:       err,
	})
}

func (p *blockParser) parseDocument() ([]Block, error) {
	p.expandInclude()
	p.skipBlankLines()
	var blocks []Block
	for !p.atEnd() {
		b, ok := p.parseBlock()
		if !ok {
			return nil, &SyntaxError{
				Line: p.lineNumber(),
				Msg:  fmt.Sprintf("unexpected %q", p.lines[p.pos]),
			}
		}
		blocks = append(blocks, b)
		p.skipBlankLines()
	}
	return blocks, nil
}

// parseBlock parses a block prefix followed by a block body.
func (p *blockParser) parseBlock() (Block, bool) {
	return attempt(p, func() (Block, bool) {
		items := p.parsePrefix()
		return p.parseBody(items)
	})
}

// blockRule parses a block body after its prefix.
type blockRule func(p *blockParser, prefix BlockPrefix) (Block, bool)

func (p *blockParser) parseBody(items []PrefixItem) (Block, bool) {
	meta, err := FoldPrefix(items, p.inlines)
	if err != nil {
		p.violate("validated block attribute list parses", err)
	}
	prefix := BlockPrefix{Items: items, Meta: meta}

	// Rules are tried in order; the first rule that succeeds wins.
	rules := [...]blockRule{
		(*blockParser).parseNestable,
		(*blockParser).parseVerbatim,
		(*blockParser).parseSectionHeader,
		(*blockParser).parseBreak,
		(*blockParser).parseBlockMacro,
		(*blockParser).parseList,
		(*blockParser).parseParagraph,
		(*blockParser).parseDangling,
	}
	for _, rule := range rules {
		b, ok := attempt(p, func() (Block, bool) {
			return rule(p, prefix)
		})
		if ok {
			return b, true
		}
	}
	return nil, false
}

// parsePrefix parses zero or more prefix items,
// each followed by any number of blank lines.
func (p *blockParser) parsePrefix() []PrefixItem {
	var items []PrefixItem
	for {
		item, ok := p.parsePrefixItem()
		if !ok {
			return items
		}
		items = append(items, item)
		p.skipBlankLines()
	}
}

// prefixRules are tried in order; the first rule that succeeds wins.
var prefixRules = []func(p *blockParser) (PrefixItem, bool){
	(*blockParser).parseBlockComment,
	(*blockParser).parseLineComments,
	(*blockParser).parseAttributeEntry,
	(*blockParser).parseBlockID,
	(*blockParser).parseBlockAttributeList,
	(*blockParser).parseBlockTitle,
}

func (p *blockParser) parsePrefixItem() (PrefixItem, bool) {
	for _, rule := range prefixRules {
		item, ok := attempt(p, func() (PrefixItem, bool) {
			return rule(p)
		})
		if ok {
			return item, true
		}
	}
	return nil, false
}

func (p *blockParser) parseBlockComment() (PrefixItem, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	d, ok := parseBlockCommentDelimiter(line)
	if !ok {
		return nil, false
	}
	p.acceptLine(anyLine)
	comment := &Comment{Delimited: true}
	for !p.atEnd() {
		if _, ok := p.acceptLine(closesRun(d)); ok {
			break
		}
		line, _ := p.acceptLine(anyLine)
		comment.Lines = append(comment.Lines, line)
	}
	return comment, true
}

func (p *blockParser) parseLineComments() (PrefixItem, bool) {
	comment := new(Comment)
	for {
		line, ok := p.acceptLine(isLineComment)
		if !ok {
			break
		}
		comment.Lines = append(comment.Lines, strings.TrimPrefix(line, "//"))
	}
	if len(comment.Lines) == 0 {
		return nil, false
	}
	return comment, true
}

func (p *blockParser) parseAttributeEntry() (PrefixItem, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	ae, ok := parseAttributeEntry(line)
	if !ok {
		return nil, false
	}
	lineno := p.lineNumber()
	p.acceptLine(anyLine)
	entry := &AttributeEntry{Name: ae.name}
	if ae.unset {
		p.st.env = p.st.env.without(ae.name)
	} else {
		value := p.resolveText(ae.value)
		entry.Value = &value
		p.st.env = p.st.env.with(ae.name, value)
	}
	p.log.WithFields(logrus.Fields{
		"line":  lineno,
		"name":  ae.name,
		"unset": ae.unset,
	}).Debug("attribute entry")
	return entry, true
}

func (p *blockParser) parseBlockID() (PrefixItem, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	id, refText, ok := parseBlockID(line)
	if !ok {
		return nil, false
	}
	p.acceptLine(anyLine)
	return &BlockID{ID: id, RefText: refText}, true
}

func (p *blockParser) parseBlockAttributeList() (PrefixItem, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	text, ok := parseBlockAttributeList(line)
	if !ok {
		return nil, false
	}
	p.acceptLine(anyLine)
	return &BlockAttributeList{Text: text}, true
}

func (p *blockParser) parseBlockTitle() (PrefixItem, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	text, ok := parseBlockTitle(line)
	if !ok {
		return nil, false
	}
	p.acceptLine(anyLine)
	return &BlockTitle{Title: p.resolveText(text)}, true
}

// closesRun returns a grammar matching a line that is exactly d.
func closesRun(d delimiter) func(string) bool {
	return func(line string) bool {
		got, ok := parseRun(line)
		return ok && got == d
	}
}

// closesAny reports whether line is the delimiter of any open nestable block.
func (p *blockParser) closesAny(line string) bool {
	d, ok := parseRun(line)
	return ok && p.st.onStack(d)
}

// admonitionStyles are the block styles that turn
// example and open blocks into admonitions.
var admonitionStyles = map[string]bool{
	"NOTE":      true,
	"TIP":       true,
	"IMPORTANT": true,
	"CAUTION":   true,
	"WARNING":   true,
}

// verseStyle marks quote blocks and paragraphs as verse.
const verseStyle = "verse"

func (p *blockParser) parseNestable(prefix BlockPrefix) (Block, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	d, ok := parseNestableDelimiter(line)
	if !ok {
		return nil, false
	}
	if d.char == '_' && prefix.Meta.Style == verseStyle {
		// Verse content is kept verbatim.
		return nil, false
	}
	if p.st.onStack(d) {
		return nil, false
	}
	logger := p.log.WithFields(logrus.Fields{"line": p.lineNumber(), "delimiter": d.String()})
	p.st.push(d)
	p.acceptLine(anyLine)
	p.skipBlankLines()
	logger.Debug("open nestable block")

	savedLists := p.lists
	p.lists = nil
	defer func() { p.lists = savedLists }()

	b := &Nestable{BlockPrefix: prefix}
	b.Kind, b.Name = nestableKind(d, prefix.Meta.Style)
	for !p.closeNestable() {
		if p.atEnd() {
			logger.Debug("unterminated nestable block closed at end of input")
			p.st.pop()
			break
		}
		child, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		b.Blocks = append(b.Blocks, child)
		p.skipBlankLines()
	}
	return b, true
}

func nestableKind(d delimiter, style string) (NestableKind, string) {
	kind := nestableKinds[d.char]
	switch {
	case admonitionStyles[style] && (kind == ExampleBlock || kind == OpenBlock):
		return AdmonitionBlock, style
	case kind == OpenBlock:
		return OpenBlock, style
	default:
		return kind, ""
	}
}

// closeNestable consumes the closing delimiter of the innermost nestable block
// and reports whether the block is closed.
// A line that closes an enclosing block closes the innermost block
// without being consumed.
func (p *blockParser) closeNestable() bool {
	if !p.st.inNestable() {
		return true
	}
	top := p.st.top()
	lineno := p.lineNumber()
	if _, ok := p.acceptLine(closesRun(top)); ok {
		p.st.pop()
		p.log.WithFields(logrus.Fields{"line": lineno, "delimiter": top.String()}).Debug("close nestable block")
		return true
	}
	if p.lookahead(p.closesAny) {
		p.st.pop()
		p.log.WithFields(logrus.Fields{"line": p.lineNumber(), "delimiter": top.String()}).Debug("implicitly close nestable block")
		return true
	}
	return false
}

func (p *blockParser) parseVerbatim(prefix BlockPrefix) (Block, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	style := prefix.Meta.Style
	b := &Literal{BlockPrefix: prefix}
	d, lang, ok := parseVerbatimDelimiter(line)
	switch {
	case ok:
		b.Kind = verbatimKinds[d.char]
		b.Language = lang
	default:
		d, ok = parseNestableDelimiter(line)
		if !ok || d.char != '_' || style != verseStyle {
			return nil, false
		}
		b.Kind = VerseLiteral
	}
	switch {
	case b.Kind == ListingLiteral && style == "source":
		b.Kind = SourceLiteral
	case b.Kind == PassthroughLiteral && isStemStyle(style):
		b.Kind = StemLiteral
	}
	if b.Kind == SourceLiteral || b.Kind == FencedLiteral {
		if lang := prefix.Meta.Positional[2]; b.Language == "" && lang != "" {
			b.Language = lang
		}
	}

	p.acceptLine(anyLine)
	for !p.atEnd() {
		if _, ok := p.acceptLine(closesRun(d)); ok {
			break
		}
		line, _ := p.acceptLine(anyLine)
		b.Lines = append(b.Lines, line)
	}
	p.skipBlankLines()
	return b, true
}

func isStemStyle(style string) bool {
	return style == "stem" || style == "latexmath" || style == "asciimath"
}

// discreteStyle marks a section header that may appear inside a nestable block.
const discreteStyle = "discrete"

func (p *blockParser) parseSectionHeader(prefix BlockPrefix) (Block, bool) {
	if p.st.inNestable() && prefix.Meta.Style != discreteStyle {
		return nil, false
	}
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	h, ok := parseSectionHeader(line)
	if !ok {
		return nil, false
	}
	p.acceptLine(anyLine)
	b := &SectionHeader{
		BlockPrefix: prefix,
		Level:       h.level,
		Title:       p.resolveText(h.text),
	}
	p.skipBlankLines()
	return b, true
}

// parseBreak parses a thematic break or a page break.
func (p *blockParser) parseBreak(prefix BlockPrefix) (Block, bool) {
	i, _, ok := p.acceptAny(isThematicBreak, isPageBreak)
	if !ok {
		return nil, false
	}
	p.skipBlankLines()
	if i == 0 {
		return &ThematicBreak{BlockPrefix: prefix}, true
	}
	return &PageBreak{BlockPrefix: prefix}, true
}

func (p *blockParser) parseBlockMacro(prefix BlockPrefix) (Block, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	bm, ok := parseBlockMacro(line)
	if !ok {
		return nil, false
	}
	p.acceptLine(anyLine)
	b := &BlockMacro{
		BlockPrefix: prefix,
		Name:        bm.name,
		Target:      bm.target,
		Text:        bm.text,
	}
	switch bm.name {
	case "image":
		b.Kind = ImageMacro
	case "toc":
		b.Kind = TableOfContentsMacro
	default:
		b.Kind = CustomMacro
	}
	p.skipBlankLines()
	return b, true
}

// paragraphBreaks are the lines that end a paragraph.
var paragraphBreaks = []func(string) bool{
	isAnyDelimiter,
	isBlockCommentOpen,
	isBlockIDLine,
	isBlockAttributeListLine,
	isBlankLine,
}

// listParagraphBreaks additionally end a paragraph inside a list item.
var listParagraphBreaks = append(append([]func(string) bool{}, paragraphBreaks...),
	isListItemLine,
	isListContinuation,
)

func isBlockCommentOpen(line string) bool {
	_, ok := parseBlockCommentDelimiter(line)
	return ok
}

func isBlockIDLine(line string) bool {
	_, _, ok := parseBlockID(line)
	return ok
}

func isBlockAttributeListLine(line string) bool {
	_, ok := parseBlockAttributeList(line)
	return ok
}

func isListItemLine(line string) bool {
	_, ok := parseListMarker(line)
	return ok
}

func (p *blockParser) parseParagraph(prefix BlockPrefix) (Block, bool) {
	first, ok := p.acceptLine(func(line string) bool {
		return !isAnyDelimiter(line) && !isBlankLine(line)
	})
	if !ok {
		return nil, false
	}
	lines := []Line{{Text: first}}
	lines = append(lines, p.parseParagraphLines()...)
	p.skipBlankLines()
	return styleParagraph(prefix, lines), true
}

// parseParagraphLines consumes the lines following the first line of a paragraph.
func (p *blockParser) parseParagraphLines() []Line {
	breaks := paragraphBreaks
	if len(p.lists) > 0 {
		breaks = listParagraphBreaks
	}
	var lines []Line
	for {
		if line, ok := p.acceptLine(isLineComment); ok {
			lines = append(lines, Line{Text: line, Comment: true})
			continue
		}
		line, ok := p.acceptNone(breaks...)
		if !ok {
			return lines
		}
		lines = append(lines, Line{Text: line})
	}
}

// styleParagraph turns a paragraph into the block its style asks for.
func styleParagraph(prefix BlockPrefix, lines []Line) Block {
	switch prefix.Meta.Style {
	case verseStyle:
		return &Verse{BlockPrefix: prefix, Lines: lineTexts(lines)}
	case "literal":
		return &Literal{BlockPrefix: prefix, Kind: PlainLiteral, Lines: lineTexts(lines)}
	case "listing":
		return &Literal{BlockPrefix: prefix, Kind: ListingLiteral, Lines: lineTexts(lines)}
	case "source":
		return &Literal{
			BlockPrefix: prefix,
			Kind:        SourceLiteral,
			Language:    prefix.Meta.Positional[2],
			Lines:       lineTexts(lines),
		}
	case "pass":
		return &Literal{BlockPrefix: prefix, Kind: PassthroughLiteral, Lines: lineTexts(lines)}
	case "stem", "latexmath", "asciimath":
		return &Literal{BlockPrefix: prefix, Kind: StemLiteral, Lines: lineTexts(lines)}
	}
	if first := lines[0].Text; first[0] == ' ' || first[0] == '\t' {
		return &Literal{BlockPrefix: prefix, Kind: IndentedLiteral, Lines: lineTexts(lines)}
	}
	return &Paragraph{BlockPrefix: prefix, Lines: lines}
}

func lineTexts(lines []Line) []string {
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, line.Text)
	}
	return texts
}

// parseDangling accepts a non-empty prefix that no block follows.
func (p *blockParser) parseDangling(prefix BlockPrefix) (Block, bool) {
	if len(prefix.Items) == 0 {
		return nil, false
	}
	if !p.atEnd() && !p.lookahead(p.closesAny) {
		return nil, false
	}
	return &DanglingPrefix{BlockPrefix: prefix}, true
}
