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

// Package asciidoc parses [AsciiDoc] source into a tree of blocks.
//
// The parser works at the block level:
// paragraphs, section headers, lists, delimited blocks, and macros
// are recognized, and the metadata lines preceding each block
// (IDs, titles, attribute lists) are resolved into [Metadata].
// Inline markup is not interpreted;
// it is handed to an [InlineResolver] where a resolved value is needed.
//
// [AsciiDoc]: https://docs.asciidoctor.org/asciidoc/latest/
package asciidoc

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"go4.org/bytereplacer"
)

// Parser holds the configuration for parsing documents.
// The zero value is ready to use.
// A Parser may be used for concurrent calls to [*Parser.Parse]:
// each call owns its parsing state.
type Parser struct {
	// Inlines resolves titles and attribute values.
	// If nil, [WordResolver] is used.
	Inlines InlineResolver
	// Includes expands include directives.
	// If nil, include directives are left in place
	// and parse as block macros.
	Includes IncludeResolver
	// Attributes is the initial attribute environment.
	Attributes map[string]string
	// Logger receives debug traces of parsing decisions.
	// If nil, nothing is logged.
	Logger logrus.FieldLogger
}

// Document is the result of parsing.
type Document struct {
	Blocks []Block
	// Attributes is the attribute environment after the last line.
	Attributes Env
	// Catalog maps block IDs to blocks.
	Catalog Catalog
}

// Parse parses source with the default configuration.
func Parse(source []byte) (*Document, error) {
	return new(Parser).Parse(source)
}

// ParseReader reads all of r and parses it.
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse asciidoc: %w", err)
	}
	return p.Parse(source)
}

// Parse parses an AsciiDoc document.
// The returned error is a [*SyntaxError] if some input could not be parsed
// or an [*InvariantError] if the parser reached an inconsistent state.
func (p *Parser) Parse(source []byte) (doc *Document, err error) {
	bp := p.newBlockParser(splitLines(source))
	defer bp.recoverInvariant(&err)
	names := make([]string, 0, len(p.Attributes))
	for name := range p.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		bp.st.env = bp.st.env.with(name, bp.resolveText(p.Attributes[name]))
	}

	blocks, err := bp.parseDocument()
	if err != nil {
		return nil, err
	}
	doc = &Document{
		Blocks:     blocks,
		Attributes: bp.st.env,
		Catalog:    make(Catalog),
	}
	doc.Catalog.Extract(blocks)
	return doc, nil
}

func (p *Parser) newBlockParser(lines []string) *blockParser {
	bp := &blockParser{
		lines:    lines,
		inlines:  p.Inlines,
		includes: p.Includes,
		log:      p.Logger,
	}
	if bp.inlines == nil {
		bp.inlines = WordResolver{}
	}
	if bp.includes == nil {
		bp.includes = NoIncludes{}
	}
	if bp.log == nil {
		bp.log = discardLogger()
	}
	bp.st = newParserState(Env{})
	return bp
}

// recoverInvariant converts an [*InvariantError] panic into an error.
// It must be called directly by a deferred call.
func (p *blockParser) recoverInvariant(err *error) {
	v := recover()
	if v == nil {
		return
	}
	ierr, ok := v.(*InvariantError)
	if !ok {
		panic(v)
	}
	p.log.WithField("line", ierr.Line).Debugf("invariant violated: %v", ierr)
	*err = ierr
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SyntaxError reports input that no block rule accepts.
type SyntaxError struct {
	// Line is the 1-based line number.
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// InvariantError reports a condition that well-formed input cannot produce.
// It indicates a bug in the parser or one of its collaborators.
type InvariantError struct {
	// Invariant describes the condition that failed to hold.
	Invariant string
	// Line is the 1-based line number where the violation was detected.
	Line int
	Err  error
}

func (e *InvariantError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("line %d: internal error: %s", e.Line, e.Invariant)
	}
	return fmt.Sprintf("line %d: internal error: %s: %v", e.Line, e.Invariant, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// nulReplacer replaces NUL bytes with the Unicode replacement character.
var nulReplacer = bytereplacer.New("\x00", "\ufffd")

// splitLines splits source into logical lines without line endings.
// Lines end at "\n", "\r\n", or "\r".
// A line ending at the end of source does not start another line.
func splitLines(source []byte) []string {
	if bytes.IndexByte(source, 0) >= 0 {
		source = nulReplacer.Replace(bytes.Clone(source))
	}
	var lines []string
	for len(source) > 0 {
		i := bytes.IndexAny(source, "\r\n")
		if i < 0 {
			lines = append(lines, string(source))
			break
		}
		lines = append(lines, string(source[:i]))
		eolEnd := i + 1
		if source[i] == '\r' && eolEnd < len(source) && source[eolEnd] == '\n' {
			eolEnd++
		}
		source = source[eolEnd:]
	}
	return lines
}
