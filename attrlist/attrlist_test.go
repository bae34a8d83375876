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

package attrlist

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want []Entry
	}{
		{"", nil},
		{"  ", nil},
		{"source", []Entry{{Value: "source"}}},
		{"source,ruby", []Entry{{Value: "source"}, {Value: "ruby"}}},
		{
			"quote, Abraham Lincoln, Gettysburg Address",
			[]Entry{{Value: "quote"}, {Value: "Abraham Lincoln"}, {Value: "Gettysburg Address"}},
		},
		{"#intro.lead%header", []Entry{{Value: "#intro.lead%header"}}},
		{"role=lead", []Entry{{Name: "role", Value: "lead"}}},
		{"role = lead", []Entry{{Name: "role", Value: "lead"}}},
		{`title="A, B"`, []Entry{{Name: "title", Value: "A, B"}}},
		{`title='It\'s'`, []Entry{{Name: "title", Value: "It's"}}},
		{"quote, Don't panic", []Entry{{Value: "quote"}, {Value: "Don't panic"}}},
		{"link=https://example.com/?a=b", []Entry{{Name: "link", Value: "https://example.com/?a=b"}}},
		{",foo", []Entry{{Value: ""}, {Value: "foo"}}},
		{"foo,", []Entry{{Value: "foo"}}},
		{"width=", []Entry{{Name: "width", Value: ""}}},
		{
			`image, alt="A cat", width=200`,
			[]Entry{{Value: "image"}, {Name: "alt", Value: "A cat"}, {Name: "width", Value: "200"}},
		},
	}
	for _, test := range tests {
		got, err := Parse(test.text)
		if err != nil {
			t.Errorf("Parse(%q): %v", test.text, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Parse(%q) (-want +got):\n%s", test.text, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text   string
		column int
	}{
		{`a="b`, 3},
		{`"abc`, 1},
		{`=value`, 1},
		{`a, =b`, 4},
		{`"a"b`, 4},
	}
	for _, test := range tests {
		entries, err := Parse(test.text)
		var perr *Error
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) = %v, %v; want _, *Error", test.text, entries, err)
			continue
		}
		if perr.Pos.Column != test.column {
			t.Errorf("Parse(%q) error column = %d; want %d", test.text, perr.Pos.Column, test.column)
		}
	}
}

func TestEntryIsPositional(t *testing.T) {
	if !(Entry{Value: "x"}).IsPositional() {
		t.Error("Entry{Value: x}.IsPositional() = false; want true")
	}
	if (Entry{Name: "x", Value: "y"}).IsPositional() {
		t.Error("Entry{Name: x}.IsPositional() = true; want false")
	}
}
