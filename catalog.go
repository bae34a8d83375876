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

// Catalog maps block IDs to the blocks that define them.
type Catalog map[string]Block

// Lookup returns the block with the given ID.
func (c Catalog) Lookup(id string) (Block, bool) {
	b, ok := c[id]
	return b, ok
}

// Extract adds the IDs of blocks and their descendants to the catalog.
// In case of conflicts,
// Extract will not replace any existing entry in the catalog
// and will use the first definition in source order.
func (c Catalog) Extract(blocks []Block) {
	for _, root := range blocks {
		Walk(root, &WalkOptions{
			Pre: func(cursor *Cursor) bool {
				for _, id := range cursor.Block().Prefix().Meta.IDs {
					if _, exists := c[id]; id == "" || exists {
						continue
					}
					c[id] = cursor.Block()
				}
				return true
			},
		})
	}
}
