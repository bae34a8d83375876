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

// A Cursor describes a [Block] encountered during [Walk].
type Cursor struct {
	block  Block
	parent Block
	item   *ListItem
}

// Block returns the current [Block].
// Inside [WalkOptions.Item], it is the list that holds the item.
func (c *Cursor) Block() Block {
	return c.block
}

// Parent returns the parent of the current [Block]
// (as returned by [*Cursor.Block]),
// or nil for the root.
// The parent of a block in a list item is the [*List].
func (c *Cursor) Parent() Block {
	return c.parent
}

// Item returns the list item that holds the current block,
// or nil if the block is not part of a list item.
func (c *Cursor) Item() *ListItem {
	return c.item
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each block before the block's children are traversed (pre-order).
	// If Pre returns false, no children are traversed, and Post is not called for that block.
	Pre func(c *Cursor) bool
	// If Post is not nil, it is called for each block after the block's children are traversed (post-order).
	// If Post returns false, traversal is terminated and Walk returns immediately.
	Post func(c *Cursor) bool
	// If Item is not nil, it is called with enter set to true
	// before the blocks of each list item are traversed,
	// and with enter set to false after them.
	// It is called for items without blocks, too.
	Item func(c *Cursor, enter bool)

	// If Children is not nil, it will be used instead of [Children].
	// List items are then not reported to Item or [*Cursor.Item].
	Children func(Block) []Block
}

type walkStep int8

const (
	visitBlock walkStep = iota
	leaveBlock
	enterItem
	leaveItem
)

// Walk traverses a [Block] recursively, starting with root,
// and calling [WalkOptions.Pre] and [WalkOptions.Post].
func Walk(root Block, opts *WalkOptions) {
	type walkFrame struct {
		step   walkStep
		block  Block
		parent Block
		item   *ListItem
	}

	stack := []walkFrame{{block: root}}
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cursor.block = curr.block
		cursor.parent = curr.parent
		cursor.item = curr.item

		switch curr.step {
		case enterItem, leaveItem:
			if opts.Item != nil {
				opts.Item(cursor, curr.step == enterItem)
			}
			continue
		case leaveBlock:
			if opts.Post != nil && !opts.Post(cursor) {
				return
			}
			continue
		}

		if opts.Pre != nil && !opts.Pre(cursor) {
			continue
		}
		curr.step = leaveBlock
		stack = append(stack, curr)

		if list, ok := curr.block.(*List); ok && opts.Children == nil {
			for i := len(list.Items) - 1; i >= 0; i-- {
				item := list.Items[i]
				stack = append(stack, walkFrame{step: leaveItem, block: list, parent: curr.parent, item: item})
				for j := len(item.Blocks) - 1; j >= 0; j-- {
					stack = append(stack, walkFrame{block: item.Blocks[j], parent: list, item: item})
				}
				stack = append(stack, walkFrame{step: enterItem, block: list, parent: curr.parent, item: item})
			}
			continue
		}

		children := Children
		if opts.Children != nil {
			children = opts.Children
		}
		kids := children(curr.block)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{
				parent: curr.block,
				block:  kids[i],
			})
		}
	}
}
