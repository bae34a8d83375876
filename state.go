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

import "sort"

// Env is an attribute environment:
// the value last assigned to each document attribute.
// The zero Env is empty and ready to use.
// Env values are immutable; assignments produce a new Env,
// so a copy of an Env is a snapshot.
type Env struct {
	m map[string]Inline
}

// Get returns the value of the named attribute.
func (env Env) Get(name string) (Inline, bool) {
	v, ok := env.m[foldName(name)]
	return v, ok
}

// Len returns the number of attributes that are set.
func (env Env) Len() int {
	return len(env.m)
}

// Names returns the names of the attributes that are set, sorted.
func (env Env) Names() []string {
	names := make([]string, 0, len(env.m))
	for name := range env.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (env Env) with(name string, value Inline) Env {
	m := make(map[string]Inline, len(env.m)+1)
	for k, v := range env.m {
		m[k] = v
	}
	m[foldName(name)] = value
	return Env{m: m}
}

func (env Env) without(name string) Env {
	name = foldName(name)
	if _, ok := env.m[name]; !ok {
		return env
	}
	m := make(map[string]Inline, len(env.m))
	for k, v := range env.m {
		if k != name {
			m[k] = v
		}
	}
	return Env{m: m}
}

// delimiter identifies an open delimited block:
// a line of length copies of char.
type delimiter struct {
	length int
	char   byte
}

func (d delimiter) String() string {
	b := make([]byte, d.length)
	for i := range b {
		b[i] = d.char
	}
	return string(b)
}

// A frame is one level of the delimiter stack.
type frame struct {
	delim delimiter
	// lines are the raw lines accepted while the frame is on top.
	lines []string
}

// parserState is the mutable state threaded through the block engine.
// frames[0] is a sentinel that stands for "no nestable block open".
type parserState struct {
	frames []frame
	env    Env
}

func newParserState(env Env) parserState {
	return parserState{
		frames: []frame{{}},
		env:    env,
	}
}

// snapshot returns a copy of s to be restored by assignment.
//
// The copy shares line storage with s and remembers only how many lines
// each frame held. Lines recorded after the snapshot lie past those counts,
// so restoring snapshots in the reverse order they were taken is safe,
// and recording after a restore reuses the storage instead of copying it.
func (s *parserState) snapshot() parserState {
	frames := make([]frame, len(s.frames))
	copy(frames, s.frames)
	return parserState{frames: frames, env: s.env}
}

// inNestable reports whether any nestable block is open.
func (s *parserState) inNestable() bool {
	return len(s.frames) > 1
}

func (s *parserState) top() delimiter {
	return s.frames[len(s.frames)-1].delim
}

// onStack reports whether d is the delimiter of any open block.
func (s *parserState) onStack(d delimiter) bool {
	for _, f := range s.frames[1:] {
		if f.delim == d {
			return true
		}
	}
	return false
}

func (s *parserState) push(d delimiter) {
	s.frames = append(s.frames, frame{delim: d})
}

// pop removes the top frame.
// Popping the sentinel is a no-op.
func (s *parserState) pop() {
	if s.inNestable() {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// record appends a raw line to the top frame.
func (s *parserState) record(line string) {
	f := &s.frames[len(s.frames)-1]
	f.lines = append(f.lines, line)
}
