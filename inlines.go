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
	"errors"
	"strings"
)

// Inline is the resolved value of a run of inline text.
// Inline markup is not interpreted:
// the text is kept as a sequence of whitespace-separated words.
type Inline struct {
	Words []string
}

// Text joins the words with single spaces.
func (inline Inline) Text() string {
	return strings.Join(inline.Words, " ")
}

// IsEmpty reports whether the inline has no words.
func (inline Inline) IsEmpty() bool {
	return len(inline.Words) == 0
}

// An InlineResolver converts lines of unparsed text into an [Inline].
// The first line passed to ResolveInline is never a comment;
// implementations should report an error if it is.
type InlineResolver interface {
	ResolveInline(lines []Line) (Inline, error)
}

// WordResolver is the default [InlineResolver].
// It splits text lines into words and drops comment lines.
type WordResolver struct{}

// errLeadingComment is returned by [WordResolver]
// when asked to resolve lines that start with a comment.
var errLeadingComment = errors.New("first line is a comment")

// ResolveInline implements [InlineResolver].
func (WordResolver) ResolveInline(lines []Line) (Inline, error) {
	if len(lines) == 0 {
		return Inline{}, errors.New("no lines")
	}
	if lines[0].Comment {
		return Inline{}, errLeadingComment
	}
	var words []string
	for _, line := range lines {
		if line.Comment {
			continue
		}
		words = append(words, strings.Fields(line.Text)...)
	}
	return Inline{Words: words}, nil
}

// resolveText resolves a single line of text,
// treating a resolver failure as an invariant violation.
func (p *blockParser) resolveText(text string) Inline {
	inline, err := p.inlines.ResolveInline([]Line{{Text: text}})
	if err != nil {
		p.violate("inline text resolves", err)
	}
	return inline
}
