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

	"github.com/charles-halifax/asciidoc/attrlist"
	"golang.org/x/text/cases"
)

// Metadata is the set of attributes attached to a block,
// accumulated from the block's prefix lines with [Combine].
type Metadata struct {
	// Style is the block style (e.g. "source", "NOTE", "discrete").
	// An empty string means no style was given.
	Style   string
	IDs     []string
	Roles   []string
	Options []string
	// Title is nil if the block has no title.
	Title *Inline
	// Positional maps 1-based positions to positional attribute values.
	Positional map[int]string
	// Named maps attribute names to values.
	// The names "id", "role", "opts", "options", and "title"
	// are folded into the other fields and never appear here.
	Named map[string]string
	// RoleAttr is the value of an explicit "role" attribute.
	// It is only meaningful if HasRoleAttr is true.
	RoleAttr    []string
	HasRoleAttr bool
}

// IsEmpty reports whether m is the identity element of [Combine].
func (m Metadata) IsEmpty() bool {
	return m.Style == "" &&
		len(m.IDs) == 0 &&
		len(m.Roles) == 0 &&
		len(m.Options) == 0 &&
		m.Title == nil &&
		len(m.Positional) == 0 &&
		len(m.Named) == 0 &&
		!m.HasRoleAttr
}

// ID returns the first block ID or the empty string.
func (m Metadata) ID() string {
	if len(m.IDs) == 0 {
		return ""
	}
	return m.IDs[0]
}

// HasOption reports whether name is among the block options.
func (m Metadata) HasOption(name string) bool {
	for _, opt := range m.Options {
		if opt == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of m.
func (m Metadata) Clone() Metadata {
	c := Combine(Metadata{}, m)
	c.RoleAttr = cloneStrings(m.RoleAttr)
	if m.Title != nil {
		title := Inline{Words: cloneStrings(m.Title.Words)}
		c.Title = &title
	}
	return c
}

// Combine returns the metadata of a block that has prefix a applied before prefix b.
// Combine is associative and the zero Metadata is its identity.
//
// Single values (style, title, explicit role attribute) are taken from b if present.
// IDs and options accumulate.
// Roles accumulate unless b carries an explicit role attribute,
// in which case b's roles replace all earlier ones.
// Positional and named attributes of b override those of a.
// The result shares no slices or maps with a or b.
func Combine(a, b Metadata) Metadata {
	c := Metadata{
		Style:       a.Style,
		IDs:         concat(a.IDs, b.IDs),
		Options:     concat(a.Options, b.Options),
		Title:       a.Title,
		Positional:  mergePositional(a.Positional, b.Positional),
		Named:       mergeNamed(a.Named, b.Named),
		RoleAttr:    cloneStrings(a.RoleAttr),
		HasRoleAttr: a.HasRoleAttr,
	}
	if b.Style != "" {
		c.Style = b.Style
	}
	if b.Title != nil {
		c.Title = b.Title
	}
	if b.HasRoleAttr {
		c.Roles = cloneStrings(b.Roles)
		c.RoleAttr = cloneStrings(b.RoleAttr)
		c.HasRoleAttr = true
	} else {
		c.Roles = concat(a.Roles, b.Roles)
	}
	return c
}

// mergePositional returns the union of a and b,
// with b's value winning for an index present in both.
func mergePositional(a, b map[int]string) map[int]string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	m := make(map[int]string, len(a)+len(b))
	for i, v := range a {
		m[i] = v
	}
	for i, v := range b {
		m[i] = v
	}
	return m
}

// mergeNamed returns the union of a and b,
// with b's value winning for a name present in both.
func mergeNamed(a, b map[string]string) map[string]string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	m := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		m[k] = v
	}
	for k, v := range b {
		m[k] = v
	}
	return m
}

func concat(a, b []string) []string {
	if len(a)+len(b) == 0 {
		return nil
	}
	c := make([]string, 0, len(a)+len(b))
	c = append(c, a...)
	return append(c, b...)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// FoldPrefix combines the metadata of each item in source order.
// It returns an error if an attribute list cannot be parsed
// or a title cannot be resolved.
func FoldPrefix(items []PrefixItem, r InlineResolver) (Metadata, error) {
	var m Metadata
	for _, item := range items {
		im, err := itemMetadata(item, r)
		if err != nil {
			return Metadata{}, err
		}
		m = Combine(m, im)
	}
	return m, nil
}

func itemMetadata(item PrefixItem, r InlineResolver) (Metadata, error) {
	switch item := item.(type) {
	case *BlockID:
		return Metadata{IDs: []string{item.ID}}, nil
	case *BlockTitle:
		title := item.Title
		return Metadata{Title: &title}, nil
	case *BlockAttributeList:
		return attributeListMetadata(item.Text, r)
	case *AttributeEntry, *Comment:
		return Metadata{}, nil
	default:
		panic(fmt.Sprintf("unhandled prefix item %T", item))
	}
}

var folder = cases.Fold()

// foldName normalizes an attribute name.
// Attribute names are case-insensitive.
func foldName(name string) string {
	return folder.String(name)
}

func attributeListMetadata(text string, r InlineResolver) (Metadata, error) {
	if strings.TrimSpace(text) == "" {
		return Metadata{}, nil
	}
	entries, err := attrlist.Parse(text)
	if err != nil {
		return Metadata{}, fmt.Errorf("block attribute list [%s]: %w", text, err)
	}
	var m Metadata
	pos := 0
	for _, e := range entries {
		if e.IsPositional() {
			pos++
			if e.Value == "" {
				continue
			}
			if m.Positional == nil {
				m.Positional = make(map[int]string)
			}
			m.Positional[pos] = e.Value
			if pos == 1 {
				applyShorthand(&m, e.Value)
			}
			continue
		}
		switch name := foldName(e.Name); name {
		case "id":
			m.IDs = append(m.IDs, e.Value)
		case "role":
			roles := strings.Fields(e.Value)
			m.Roles = roles
			m.RoleAttr = cloneStrings(roles)
			if m.RoleAttr == nil {
				m.RoleAttr = []string{}
			}
			m.HasRoleAttr = true
		case "opts", "options":
			for _, opt := range strings.Split(e.Value, ",") {
				if opt = strings.TrimSpace(opt); opt != "" {
					m.Options = append(m.Options, opt)
				}
			}
		case "title":
			title, err := r.ResolveInline([]Line{{Text: e.Value}})
			if err != nil {
				return Metadata{}, fmt.Errorf("block attribute list [%s]: title: %w", text, err)
			}
			m.Title = &title
		default:
			if m.Named == nil {
				m.Named = make(map[string]string)
			}
			m.Named[name] = e.Value
		}
	}
	return m, nil
}

// applyShorthand interprets the first positional attribute,
// "style#id.role1.role2%option".
// Shorthand roles never override an explicit role attribute.
func applyShorthand(m *Metadata, s string) {
	i := strings.IndexAny(s, "#.%")
	if i < 0 {
		m.Style = strings.TrimSpace(s)
		return
	}
	m.Style = strings.TrimSpace(s[:i])
	for s = s[i:]; s != ""; {
		marker := s[0]
		s = s[1:]
		end := strings.IndexAny(s, "#.%")
		if end < 0 {
			end = len(s)
		}
		value := strings.TrimSpace(s[:end])
		s = s[end:]
		if value == "" {
			continue
		}
		switch marker {
		case '#':
			m.IDs = append(m.IDs, value)
		case '.':
			if !m.HasRoleAttr {
				m.Roles = append(m.Roles, value)
			}
		case '%':
			m.Options = append(m.Options, value)
		}
	}
}
