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

// Package attrlist parses the content of AsciiDoc attribute lists,
// the comma-separated values between "[" and "]"
// that appear in block attribute lines and macros.
package attrlist

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Entry is a single attribute of a list.
type Entry struct {
	// Name is empty for positional attributes.
	Name  string
	Value string
}

// IsPositional reports whether the entry has no name.
func (e Entry) IsPositional() bool {
	return e.Name == ""
}

// Error is returned by [Parse] for malformed attribute lists.
type Error struct {
	Pos lexer.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("attribute list: column %d: %s", e.Pos.Column, e.Msg)
}

var listLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "DQuoted", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "SQuoted", Pattern: `'(?:\\.|[^'\\])*'`},
	// A quote that does not start a complete quoted value.
	{Name: "Stray", Pattern: `["']`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Assign", Pattern: `=`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Name", Pattern: `[A-Za-z0-9_][A-Za-z0-9_-]*`},
	{Name: "Text", Pattern: `[^,="' \t\w]+`},
})

var (
	symbols    = listLexer.Symbols()
	tokDQuoted = symbols["DQuoted"]
	tokSQuoted = symbols["SQuoted"]
	tokStray   = symbols["Stray"]
	tokComma   = symbols["Comma"]
	tokAssign  = symbols["Assign"]
	tokSpace   = symbols["Whitespace"]
	tokName    = symbols["Name"]
)

// Parse splits text into attribute entries.
// text is the content of an attribute list without the enclosing brackets.
// Positional entries are returned in source order
// interleaved with named entries;
// an empty positional value (as in "[,foo]") is kept as an empty Entry.
// Parse returns an [*Error] for unbalanced quotes,
// empty attribute names,
// or text following a quoted value.
func Parse(text string) ([]Entry, error) {
	lex, err := listLexer.LexString("", text)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		if lerr, ok := err.(*lexer.Error); ok {
			return nil, &Error{Pos: lerr.Pos, Msg: lerr.Msg}
		}
		return nil, err
	}
	p := &listParser{tokens: tokens}
	return p.parse()
}

type listParser struct {
	tokens []lexer.Token
	i      int
}

func (p *listParser) peek() lexer.Token {
	return p.tokens[p.i]
}

func (p *listParser) peekType() lexer.TokenType {
	return p.tokens[p.i].Type
}

func (p *listParser) next() lexer.Token {
	tok := p.tokens[p.i]
	if tok.Type != lexer.EOF {
		p.i++
	}
	return tok
}

func (p *listParser) skipSpace() {
	for p.peekType() == tokSpace {
		p.i++
	}
}

func (p *listParser) parse() ([]Entry, error) {
	p.skipSpace()
	if p.peekType() == lexer.EOF {
		return nil, nil
	}
	var entries []Entry
	for {
		entry, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		switch tok := p.next(); tok.Type {
		case lexer.EOF:
			return entries, nil
		case tokComma:
			p.skipSpace()
			if p.peekType() == lexer.EOF {
				// Trailing comma.
				return entries, nil
			}
		default:
			return nil, &Error{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %q", tok.Value)}
		}
	}
}

func (p *listParser) parseEntry() (Entry, error) {
	p.skipSpace()
	var entry Entry
	switch tok := p.peek(); tok.Type {
	case tokAssign:
		return Entry{}, &Error{Pos: tok.Pos, Msg: "empty attribute name"}
	case tokName:
		if p.isNamed() {
			entry.Name = tok.Value
			p.next()
			p.skipSpace()
			p.next() // "="
			p.skipSpace()
		}
	}

	switch tok := p.peek(); tok.Type {
	case tokDQuoted, tokSQuoted:
		p.next()
		entry.Value = unquote(tok.Value)
		p.skipSpace()
		if t := p.peekType(); t != tokComma && t != lexer.EOF {
			return Entry{}, &Error{Pos: p.peek().Pos, Msg: "text after quoted value"}
		}
		return entry, nil
	case tokStray:
		return Entry{}, &Error{Pos: tok.Pos, Msg: "unterminated quoted value"}
	}

	sb := new(strings.Builder)
	for {
		t := p.peekType()
		if t == tokComma || t == lexer.EOF {
			break
		}
		sb.WriteString(p.next().Value)
	}
	entry.Value = strings.TrimRight(sb.String(), " \t")
	return entry, nil
}

// isNamed reports whether the entry at the current position
// has the form "name =".
func (p *listParser) isNamed() bool {
	j := p.i + 1
	for p.tokens[j].Type == tokSpace {
		j++
	}
	return p.tokens[j].Type == tokAssign
}

func unquote(s string) string {
	q := s[:1]
	s = s[1 : len(s)-1]
	return strings.ReplaceAll(s, `\`+q, q)
}
