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
	"strings"

	"github.com/sirupsen/logrus"
)

// listKey identifies the marker shared by the items of one list.
func listKey(lm listMarker) string {
	return lm.typ.String() + " " + lm.marker
}

// listOpen reports whether key belongs to the current list
// or to one of its ancestors.
func (p *blockParser) listOpen(key string) bool {
	for _, k := range p.lists {
		if k == key {
			return true
		}
	}
	return false
}

func (p *blockParser) parseList(prefix BlockPrefix) (Block, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	lm, ok := parseListMarker(line)
	if !ok {
		return nil, false
	}
	key := listKey(lm)
	lineno := p.lineNumber()
	p.lists = append(p.lists, key)
	defer func() { p.lists = p.lists[:len(p.lists)-1] }()

	list := &List{BlockPrefix: prefix, Type: lm.typ}
	for {
		item, ok := attempt(p, func() (*ListItem, bool) {
			if len(list.Items) > 0 {
				p.skipBlankLines()
			}
			return p.parseListItem(key)
		})
		if !ok {
			break
		}
		list.Items = append(list.Items, item)
	}
	if len(list.Items) == 0 {
		return nil, false
	}
	p.log.WithFields(logrus.Fields{
		"line":  lineno,
		"type":  list.Type.String(),
		"items": len(list.Items),
	}).Debug("list")
	p.skipBlankLines()
	return list, true
}

// parseListItem parses an item whose marker matches key,
// along with its attached blocks and nested lists.
func (p *blockParser) parseListItem(key string) (*ListItem, bool) {
	line, ok := p.peekLine()
	if !ok {
		return nil, false
	}
	lm, ok := parseListMarker(line)
	if !ok || listKey(lm) != key {
		return nil, false
	}
	p.acceptLine(anyLine)
	item := &ListItem{Marker: lm.raw, Checkbox: lm.checkbox}
	if lm.typ == DescriptionList {
		term := p.resolveText(lm.term)
		item.Term = &term
	}

	var text []Line
	if lm.text != "" {
		text = append(text, Line{Text: lm.text})
	}
	for {
		if line, ok := p.acceptLine(isLineComment); ok {
			text = append(text, Line{Text: line, Comment: true})
			continue
		}
		line, ok := p.acceptNone(listParagraphBreaks...)
		if !ok {
			break
		}
		text = append(text, Line{Text: strings.TrimLeft(line, " \t")})
	}
	if len(text) > 0 {
		item.Blocks = append(item.Blocks, &Paragraph{Lines: text})
	}

	for {
		if b, ok := p.parseAttachedBlock(); ok {
			item.Blocks = append(item.Blocks, b)
			continue
		}
		if b, ok := p.parseNestedList(); ok {
			item.Blocks = append(item.Blocks, b)
			continue
		}
		return item, true
	}
}

// parseAttachedBlock parses a list continuation line
// followed by the block it attaches to the current item.
func (p *blockParser) parseAttachedBlock() (Block, bool) {
	return attempt(p, func() (Block, bool) {
		if _, ok := p.acceptLine(isListContinuation); !ok {
			return nil, false
		}
		return p.parseBlock()
	})
}

// parseNestedList parses a list whose marker differs
// from those of the current list and its ancestors.
func (p *blockParser) parseNestedList() (Block, bool) {
	return attempt(p, func() (Block, bool) {
		p.skipBlankLines()
		line, ok := p.peekLine()
		if !ok {
			return nil, false
		}
		lm, ok := parseListMarker(line)
		if !ok || p.listOpen(listKey(lm)) {
			return nil, false
		}
		return p.parseList(BlockPrefix{})
	})
}
