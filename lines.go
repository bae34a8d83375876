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
	"regexp"
	"strings"
)

// This file holds the line classifier:
// pure functions that recognize a single logical line.
// A recognizer only matches if the entire line is consumed,
// allowing trailing whitespace.

func trimTrailing(line string) string {
	return strings.TrimRight(line, " \t")
}

func isBlankLine(line string) bool {
	return trimTrailing(line) == ""
}

// parseRun reports whether the line consists of a single character
// repeated one or more times.
func parseRun(line string) (d delimiter, ok bool) {
	line = trimTrailing(line)
	if line == "" {
		return delimiter{}, false
	}
	c := line[0]
	for i := 1; i < len(line); i++ {
		if line[i] != c {
			return delimiter{}, false
		}
	}
	return delimiter{length: len(line), char: c}, true
}

// nestableKinds maps delimiter characters of nestable blocks to their kind.
var nestableKinds = map[byte]NestableKind{
	'=': ExampleBlock,
	'*': SidebarBlock,
	'_': QuoteBlock,
	'-': OpenBlock,
}

// minDelimiterLength is the shortest run of a block delimiter.
const minDelimiterLength = 4

// parseNestableDelimiter recognizes the opening or closing line
// of a block that contains other blocks.
func parseNestableDelimiter(line string) (delimiter, bool) {
	d, ok := parseRun(line)
	if !ok {
		return delimiter{}, false
	}
	switch d.char {
	case '=', '*', '_':
		return d, d.length >= minDelimiterLength
	case '-':
		// Open blocks are exactly two hyphens;
		// longer runs are listing blocks.
		return d, d.length == 2
	default:
		return delimiter{}, false
	}
}

// verbatimKinds maps delimiter characters of verbatim blocks to their kind.
var verbatimKinds = map[byte]LiteralKind{
	'-': ListingLiteral,
	'.': PlainLiteral,
	'+': PassthroughLiteral,
	'`': FencedLiteral,
}

// parseVerbatimDelimiter recognizes the opening line of a block
// whose content is kept as raw text.
// Fenced blocks may carry a language after the opening fence,
// which is returned as lang.
func parseVerbatimDelimiter(line string) (d delimiter, lang string, ok bool) {
	line = trimTrailing(line)
	if strings.HasPrefix(line, "```") {
		lang = strings.TrimSpace(line[3:])
		if strings.ContainsAny(lang, "` \t") {
			return delimiter{}, "", false
		}
		return delimiter{length: 3, char: '`'}, lang, true
	}
	d, ok = parseRun(line)
	if !ok {
		return delimiter{}, "", false
	}
	switch d.char {
	case '-', '.', '+':
		return d, "", d.length >= minDelimiterLength
	default:
		return delimiter{}, "", false
	}
}

// parseBlockCommentDelimiter recognizes a "////" line.
func parseBlockCommentDelimiter(line string) (delimiter, bool) {
	d, ok := parseRun(line)
	if !ok || d.char != '/' || d.length < minDelimiterLength {
		return delimiter{}, false
	}
	return d, true
}

// isLineComment reports whether line starts with exactly two slashes.
func isLineComment(line string) bool {
	return strings.HasPrefix(line, "//") && !strings.HasPrefix(line, "///")
}

// isAnyDelimiter reports whether line opens any delimited block.
func isAnyDelimiter(line string) bool {
	if _, ok := parseNestableDelimiter(line); ok {
		return true
	}
	if _, _, ok := parseVerbatimDelimiter(line); ok {
		return true
	}
	return false
}

var attributeEntryRx = regexp.MustCompile(`^:(!?)(\w[\w-]*)(!?):(?:[ \t]+(.*))?$`)

type attributeEntry struct {
	name  string
	value string
	unset bool
}

// parseAttributeEntry recognizes ":name: value", ":name!:", and ":!name:".
func parseAttributeEntry(line string) (attributeEntry, bool) {
	m := attributeEntryRx.FindStringSubmatch(trimTrailing(line))
	if m == nil {
		return attributeEntry{}, false
	}
	if m[1] != "" && m[3] != "" {
		return attributeEntry{}, false
	}
	return attributeEntry{
		name:  m[2],
		value: strings.TrimSpace(m[4]),
		unset: m[1] != "" || m[3] != "",
	}, true
}

var blockIDRx = regexp.MustCompile(`^\[\[([\pL_:][\w:.-]*)(?:,[ \t]*(.+))?\]\]$`)

// parseBlockID recognizes "[[id]]" and "[[id,reftext]]".
func parseBlockID(line string) (id, refText string, ok bool) {
	m := blockIDRx.FindStringSubmatch(trimTrailing(line))
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

var blockAttributeListRx = regexp.MustCompile(`^\[(|[\w#.%"',{ -][^\[\]]*)\]$`)

// parseBlockAttributeList recognizes a "[...]" line
// and returns the text between the brackets.
func parseBlockAttributeList(line string) (string, bool) {
	m := blockAttributeListRx.FindStringSubmatch(trimTrailing(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

var blockTitleRx = regexp.MustCompile(`^\.(\.?[^ \t.].*)$`)

// parseBlockTitle recognizes ".Title".
// Lines starting with ". " (list items)
// or "...." (literal delimiters) are not titles.
func parseBlockTitle(line string) (string, bool) {
	m := blockTitleRx.FindStringSubmatch(trimTrailing(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

type sectionHeader struct {
	level int
	text  string
}

// parseSectionHeader recognizes "= Title", "== Title", and so on.
// The level is the number of equal signs minus one.
func parseSectionHeader(line string) (sectionHeader, bool) {
	n := 0
	for n < len(line) && line[n] == '=' {
		n++
	}
	if n == 0 || n == len(line) || (line[n] != ' ' && line[n] != '\t') {
		return sectionHeader{}, false
	}
	text := strings.TrimSpace(line[n:])
	if text == "" {
		return sectionHeader{}, false
	}
	return sectionHeader{level: n - 1, text: text}, true
}

// isThematicBreak recognizes "'''" and the Markdown-style
// "---", "- - -", "***", and "* * *".
func isThematicBreak(line string) bool {
	switch trimTrailing(line) {
	case "'''", "---", "- - -", "***", "* * *":
		return true
	default:
		return false
	}
}

// isPageBreak recognizes "<<<".
func isPageBreak(line string) bool {
	return trimTrailing(line) == "<<<"
}

var blockMacroRx = regexp.MustCompile(`^(\w[\w-]*)::([^\[\s]*)\[(.*)\]$`)

type blockMacro struct {
	name   string
	target string
	text   string
}

// parseBlockMacro recognizes "name::target[attributes]".
func parseBlockMacro(line string) (blockMacro, bool) {
	m := blockMacroRx.FindStringSubmatch(trimTrailing(line))
	if m == nil {
		return blockMacro{}, false
	}
	return blockMacro{name: m[1], target: m[2], text: m[3]}, true
}

// parseIncludeDirective recognizes "include::target[attributes]".
func parseIncludeDirective(line string) (target, attrs string, ok bool) {
	bm, ok := parseBlockMacro(line)
	if !ok || bm.name != "include" || bm.target == "" {
		return "", "", false
	}
	return bm.target, bm.text, true
}

// isListContinuation recognizes a lone "+".
func isListContinuation(line string) bool {
	return trimTrailing(line) == "+"
}

type listMarker struct {
	typ ListType
	// marker is the marker as written, normalized for comparisons:
	// "1." for any numbered marker and "<1>" for any callout.
	marker string
	// raw is the marker as written.
	raw      string
	checkbox CheckState
	// term is the description list term.
	term string
	text string
}

var (
	unorderedRx   = regexp.MustCompile(`^[ \t]*(-|\*{1,5})[ \t]+(.*)$`)
	orderedRx     = regexp.MustCompile(`^[ \t]*(\.{1,5}|\d+\.)[ \t]+(.*)$`)
	calloutRx     = regexp.MustCompile(`^<(\d+|\.)>[ \t]+(.*)$`)
	descriptionRx = regexp.MustCompile(`^(?:[ \t]*)([^ \t].*?)(:{2,4}|;;)(?:$|[ \t]+(.*)$)`)
	checkboxRx    = regexp.MustCompile(`^\[([ xX*])\][ \t]+(.*)$`)
)

// parseListMarker recognizes the first line of a list item.
func parseListMarker(line string) (listMarker, bool) {
	line = trimTrailing(line)
	if m := unorderedRx.FindStringSubmatch(line); m != nil && m[2] != "" {
		lm := listMarker{typ: UnorderedList, marker: m[1], raw: m[1], text: m[2]}
		if c := checkboxRx.FindStringSubmatch(lm.text); c != nil {
			lm.checkbox = Checked
			if c[1] == " " {
				lm.checkbox = Unchecked
			}
			lm.text = c[2]
		}
		return lm, true
	}
	if m := orderedRx.FindStringSubmatch(line); m != nil && m[2] != "" {
		lm := listMarker{typ: OrderedList, marker: m[1], raw: m[1], text: m[2]}
		if m[1][0] != '.' {
			lm.marker = "1."
		}
		return lm, true
	}
	if m := calloutRx.FindStringSubmatch(line); m != nil && m[2] != "" {
		return listMarker{typ: CalloutList, marker: "<1>", raw: "<" + m[1] + ">", text: m[2]}, true
	}
	if m := descriptionRx.FindStringSubmatch(line); m != nil && !strings.HasPrefix(m[1], "//") {
		return listMarker{
			typ:    DescriptionList,
			marker: m[2],
			raw:    m[2],
			term:   strings.TrimSpace(m[1]),
			text:   m[3],
		}, true
	}
	return listMarker{}, false
}
