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

import "github.com/sirupsen/logrus"

// An IncludeResolver supplies the lines of an included document.
// target and attrs are the unparsed parts of
// an "include::target[attrs]" directive.
// ResolveInclude returns false to leave the directive in place.
type IncludeResolver interface {
	ResolveInclude(target, attrs string) (lines []string, ok bool)
}

// NoIncludes is an [IncludeResolver] that never resolves a directive.
type NoIncludes struct{}

// ResolveInclude implements [IncludeResolver] by always returning false.
func (NoIncludes) ResolveInclude(target, attrs string) ([]string, bool) {
	return nil, false
}

// IncludeMap is an [IncludeResolver] backed by a map from target to content.
type IncludeMap map[string][]string

// ResolveInclude implements [IncludeResolver].
func (m IncludeMap) ResolveInclude(target, attrs string) ([]string, bool) {
	lines, ok := m[target]
	return lines, ok
}

// maxIncludeDepth bounds the number of directives
// that may be expanded at a single position.
const maxIncludeDepth = 64

// expandInclude replaces include directives at the current position
// with the lines they resolve to.
// The line slice is copied before it is changed,
// so the caller's slice is never modified.
func (p *blockParser) expandInclude() {
	for depth := 0; depth < maxIncludeDepth; depth++ {
		line, ok := p.peekLine()
		if !ok {
			return
		}
		target, attrs, ok := parseIncludeDirective(line)
		if !ok {
			return
		}
		included, ok := p.includes.ResolveInclude(target, attrs)
		if !ok {
			return
		}
		lines := make([]string, 0, len(p.lines)-1+len(included))
		lines = append(lines, p.lines[:p.pos]...)
		lines = append(lines, included...)
		lines = append(lines, p.lines[p.pos+1:]...)
		p.lines = lines
		p.log.WithFields(logrus.Fields{
			"line":   p.lineNumber(),
			"target": target,
			"lines":  len(included),
		}).Debug("include")
	}
	p.log.WithField("line", p.lineNumber()).Warn("include depth exceeded")
}
