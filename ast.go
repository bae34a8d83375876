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

import "strconv"

// A Block is a structural element in an AsciiDoc document.
// The set of implementations is closed:
// [*Paragraph], [*Section], [*SectionHeader], [*List],
// [*ThematicBreak], [*PageBreak], [*Nestable], [*Verse],
// [*Literal], [*BlockMacro], and [*DanglingPrefix].
type Block interface {
	// Prefix returns the metadata lines that preceded the block
	// along with their resolved [Metadata].
	Prefix() *BlockPrefix
	block()
}

// BlockPrefix is embedded in every [Block].
type BlockPrefix struct {
	// Items are the prefix lines in source order.
	Items []PrefixItem
	// Meta is the left fold of Items through [Combine].
	Meta Metadata
}

// Prefix returns p.
func (p *BlockPrefix) Prefix() *BlockPrefix { return p }

// Line is a logical line of paragraph text.
type Line struct {
	Text string
	// Comment is true for a line comment ("// ...") kept inside a paragraph.
	Comment bool
}

// Paragraph is a run of non-blank lines.
type Paragraph struct {
	BlockPrefix
	Lines []Line
}

// Section is a section header together with the blocks it owns.
// The block engine never produces sections directly:
// it emits flat [*SectionHeader] blocks.
type Section struct {
	BlockPrefix
	Level  int
	Title  Inline
	Blocks []Block
}

// SectionHeader is a single "== Title" line.
// Level 0 is the document title.
type SectionHeader struct {
	BlockPrefix
	Level int
	Title Inline
}

// List is a run of list items sharing a marker.
type List struct {
	BlockPrefix
	Type  ListType
	Items []*ListItem
}

// ListItem is a single entry of a [List].
type ListItem struct {
	// Marker is the list marker as written (e.g. "**", ".", "<1>", "::").
	Marker   string
	Checkbox CheckState
	// Term is the description list term, nil for other list types.
	Term *Inline
	// Blocks holds the item's principal text (as a paragraph, if any)
	// followed by attached and nested blocks.
	Blocks []Block
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct {
	BlockPrefix
}

// PageBreak is a "<<<" line.
type PageBreak struct {
	BlockPrefix
}

// Nestable is a delimited block that contains other blocks.
type Nestable struct {
	BlockPrefix
	Kind NestableKind
	// Name is the admonition label (e.g. "NOTE") for admonitions
	// or the block style of a named open block.
	Name   string
	Blocks []Block
}

// Verse is a paragraph styled as verse.
type Verse struct {
	BlockPrefix
	Lines []string
}

// Literal is a block whose content is kept as raw text.
type Literal struct {
	BlockPrefix
	Kind LiteralKind
	// Language is the source language of a source or fenced block, if given.
	Language string
	Lines    []string
}

// BlockMacro is a "name::target[attributes]" line.
type BlockMacro struct {
	BlockPrefix
	Kind MacroKind
	// Name is the macro name as written.
	Name   string
	Target string
	// Text is the unparsed content between the brackets.
	Text string
}

// DanglingPrefix holds metadata lines that are not followed by a block,
// either at the end of input or right before a closing delimiter.
type DanglingPrefix struct {
	BlockPrefix
}

func (*Paragraph) block()      {}
func (*Section) block()        {}
func (*SectionHeader) block()  {}
func (*List) block()           {}
func (*ThematicBreak) block()  {}
func (*PageBreak) block()      {}
func (*Nestable) block()       {}
func (*Verse) block()          {}
func (*Literal) block()        {}
func (*BlockMacro) block()     {}
func (*DanglingPrefix) block() {}

// Children returns the blocks nested directly inside b.
// Blocks of list items are returned in item order.
func Children(b Block) []Block {
	switch b := b.(type) {
	case *Section:
		return b.Blocks
	case *Nestable:
		return b.Blocks
	case *List:
		var children []Block
		for _, item := range b.Items {
			children = append(children, item.Blocks...)
		}
		return children
	case *Paragraph, *SectionHeader, *ThematicBreak, *PageBreak,
		*Verse, *Literal, *BlockMacro, *DanglingPrefix:
		return nil
	default:
		return nil
	}
}

// A PrefixItem is one metadata line preceding a block.
// The set of implementations is closed:
// [*BlockID], [*BlockTitle], [*BlockAttributeList],
// [*AttributeEntry], and [*Comment].
type PrefixItem interface {
	prefixItem()
}

// BlockID is a "[[id]]" or "[[id,reftext]]" line.
type BlockID struct {
	ID      string
	RefText string
}

// BlockTitle is a ".Title" line.
type BlockTitle struct {
	Title Inline
}

// BlockAttributeList is a "[...]" line.
// Text is the content between the brackets; it is parsed
// when the prefix is folded into [Metadata].
type BlockAttributeList struct {
	Text string
}

// AttributeEntry is a ":name: value" line.
// A nil Value unsets the attribute.
type AttributeEntry struct {
	Name  string
	Value *Inline
}

// Comment is either a run of "//" lines or a "////" delimited block.
type Comment struct {
	Lines     []string
	Delimited bool
}

func (*BlockID) prefixItem()            {}
func (*BlockTitle) prefixItem()         {}
func (*BlockAttributeList) prefixItem() {}
func (*AttributeEntry) prefixItem()     {}
func (*Comment) prefixItem()            {}

// ListType is an enumeration of [List] flavors.
type ListType uint8

const (
	DescriptionList ListType = 1 + iota
	OrderedList
	UnorderedList
	CalloutList
)

func (t ListType) String() string {
	switch t {
	case DescriptionList:
		return "DescriptionList"
	case OrderedList:
		return "OrderedList"
	case UnorderedList:
		return "UnorderedList"
	case CalloutList:
		return "CalloutList"
	default:
		return "ListType(" + strconv.Itoa(int(t)) + ")"
	}
}

// CheckState is the checkbox of an unordered list item.
type CheckState uint8

const (
	NoCheckbox CheckState = iota
	Unchecked
	Checked
)

func (s CheckState) String() string {
	switch s {
	case NoCheckbox:
		return "NoCheckbox"
	case Unchecked:
		return "Unchecked"
	case Checked:
		return "Checked"
	default:
		return "CheckState(" + strconv.Itoa(int(s)) + ")"
	}
}

// NestableKind is an enumeration of [Nestable] block flavors.
type NestableKind uint8

const (
	AdmonitionBlock NestableKind = 1 + iota
	ExampleBlock
	SidebarBlock
	QuoteBlock
	OpenBlock
)

func (k NestableKind) String() string {
	switch k {
	case AdmonitionBlock:
		return "AdmonitionBlock"
	case ExampleBlock:
		return "ExampleBlock"
	case SidebarBlock:
		return "SidebarBlock"
	case QuoteBlock:
		return "QuoteBlock"
	case OpenBlock:
		return "OpenBlock"
	default:
		return "NestableKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// LiteralKind is an enumeration of [Literal] block flavors.
type LiteralKind uint8

const (
	FencedLiteral LiteralKind = 1 + iota
	ListingLiteral
	// IndentedLiteral is a paragraph whose first line is indented.
	IndentedLiteral
	// PlainLiteral is a "...." block or a paragraph styled "literal".
	PlainLiteral
	PassthroughLiteral
	SourceLiteral
	StemLiteral
	VerseLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case FencedLiteral:
		return "FencedLiteral"
	case ListingLiteral:
		return "ListingLiteral"
	case IndentedLiteral:
		return "IndentedLiteral"
	case PlainLiteral:
		return "PlainLiteral"
	case PassthroughLiteral:
		return "PassthroughLiteral"
	case SourceLiteral:
		return "SourceLiteral"
	case StemLiteral:
		return "StemLiteral"
	case VerseLiteral:
		return "VerseLiteral"
	default:
		return "LiteralKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MacroKind is an enumeration of [BlockMacro] flavors.
type MacroKind uint8

const (
	ImageMacro MacroKind = 1 + iota
	TableOfContentsMacro
	CustomMacro
)

func (k MacroKind) String() string {
	switch k {
	case ImageMacro:
		return "ImageMacro"
	case TableOfContentsMacro:
		return "TableOfContentsMacro"
	case CustomMacro:
		return "CustomMacro"
	default:
		return "MacroKind(" + strconv.Itoa(int(k)) + ")"
	}
}
