package fqname

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNameParts(t *testing.T) {
	for name, tc := range map[string]struct {
		in        Name
		wantShort string
		wantPar   Name
		wantSegs  []string
	}{
		"degenerate": {},
		"single": {
			in:        "CPointer",
			wantShort: "CPointer",
			wantPar:   Root,
			wantSegs:  []string{"CPointer"},
		},
		"nested": {
			in:        "kotlinx.cinterop.CPointer",
			wantShort: "CPointer",
			wantPar:   "kotlinx.cinterop",
			wantSegs:  []string{"kotlinx", "cinterop", "CPointer"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			if got := tc.in.ShortName(); got != tc.wantShort {
				t.Errorf("short name: want %q, got %q", tc.wantShort, got)
			}
			if got := tc.in.Parent(); got != tc.wantPar {
				t.Errorf("parent: want %q, got %q", tc.wantPar, got)
			}
			if diff := cmp.Diff(tc.wantSegs, tc.in.Segments()); diff != "" {
				t.Errorf("segments (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChild(t *testing.T) {
	if got := Root.Child("kotlinx"); got != "kotlinx" {
		t.Errorf("root child: got %q", got)
	}
	if got := New("kotlinx", "cinterop").Child("CPointer"); got != "kotlinx.cinterop.CPointer" {
		t.Errorf("child: got %q", got)
	}
}

func TestStartsWith(t *testing.T) {
	for name, tc := range map[string]struct {
		name   Name
		prefix Name
		want   bool
	}{
		"root prefix": {name: "a.b", prefix: Root, want: true},
		"self":        {name: "a.b", prefix: "a.b", want: true},
		"ancestor":    {name: "a.b.c", prefix: "a.b", want: true},
		"partial":     {name: "a.bc", prefix: "a.b", want: false},
		"unrelated":   {name: "x.y", prefix: "a", want: false},
	} {
		t.Run(name, func(t *testing.T) {
			if got := tc.name.StartsWith(tc.prefix); got != tc.want {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFields(t *testing.T) {
	for name, tc := range map[string]struct {
		in   string
		want []Name
	}{
		"degenerate": {},
		"blank": {
			in: " \t\n ",
		},
		"multiple spaces": {
			in:   "platform.posix.FILE  platform.posix.DIR",
			want: []Name{"platform.posix.DIR", "platform.posix.FILE"},
		},
		"duplicates": {
			in:   "a.B a.B\ta.C",
			want: []Name{"a.B", "a.C"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := Fields(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

type result struct {
	Segment string
	Next    int
}

func TestSegmenter(t *testing.T) {
	for name, tc := range map[string]struct {
		want []result
	}{
		"a": {
			want: []result{
				{Segment: "a", Next: -1},
			},
		},
		"aaa": {
			want: []result{
				{Segment: "aaa", Next: -1},
			},
		},
		"a.b": {
			want: []result{
				{Segment: "a", Next: 1},
				{Segment: ".b", Next: -1},
			},
		},
		"a.b.c": {
			want: []result{
				{Segment: "a", Next: 1},
				{Segment: ".b", Next: 3},
				{Segment: ".c", Next: -1},
			},
		},
		"✅.❌": {
			want: []result{
				{Segment: "✅", Next: 3},
				{Segment: ".❌", Next: -1},
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			var got []result
			for part, i := Segmenter(name, 0); part != ""; part, i = Segmenter(name, i) {
				got = append(got, result{part, i})
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
