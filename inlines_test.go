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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWordResolver(t *testing.T) {
	tests := []struct {
		lines []Line
		want  []string
	}{
		{[]Line{{Text: "Hello,  World!"}}, []string{"Hello,", "World!"}},
		{[]Line{{Text: ""}}, nil},
		{
			[]Line{{Text: "one two"}, {Text: "// hidden", Comment: true}, {Text: " three "}},
			[]string{"one", "two", "three"},
		},
	}
	for _, test := range tests {
		got, err := (WordResolver{}).ResolveInline(test.lines)
		if err != nil {
			t.Errorf("ResolveInline(%+v): %v", test.lines, err)
			continue
		}
		if diff := cmp.Diff(test.want, got.Words, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("ResolveInline(%+v) (-want +got):\n%s", test.lines, diff)
		}
	}
}

func TestWordResolverErrors(t *testing.T) {
	if _, err := (WordResolver{}).ResolveInline(nil); err == nil {
		t.Error("ResolveInline(nil) did not return an error")
	}
	_, err := (WordResolver{}).ResolveInline([]Line{{Text: "// c", Comment: true}, {Text: "x"}})
	if !errors.Is(err, errLeadingComment) {
		t.Errorf("ResolveInline(leading comment) = _, %v; want %v", err, errLeadingComment)
	}
}

func TestInlineText(t *testing.T) {
	inline := Inline{Words: []string{"a", "b"}}
	if got, want := inline.Text(), "a b"; got != want {
		t.Errorf("Text() = %q; want %q", got, want)
	}
	if inline.IsEmpty() {
		t.Error("IsEmpty() = true; want false")
	}
	if !(Inline{}).IsEmpty() {
		t.Error("Inline{}.IsEmpty() = false; want true")
	}
}

type failingResolver struct{}

func (failingResolver) ResolveInline([]Line) (Inline, error) {
	return Inline{}, errors.New("boom")
}

func TestResolverFailureIsInvariantError(t *testing.T) {
	_, err := (&Parser{Inlines: failingResolver{}}).Parse([]byte(".Title\ntext\n"))
	var ierr *InvariantError
	if !errors.As(err, &ierr) {
		t.Fatalf("Parse(...) error = %v; want *InvariantError", err)
	}
	if ierr.Line != 2 {
		t.Errorf("ierr.Line = %d; want 2", ierr.Line)
	}
}
