package fqname

import (
	"sort"
	"strings"
)

// Root is the empty qualified name.
const Root Name = ""

// Name is a dotted, fully-qualified name such as 'kotlinx.cinterop.CPointer'.
type Name string

// New constructs a name from the given segments.
func New(segments ...string) Name {
	return Name(strings.Join(segments, "."))
}

// Parse trims the given string and returns it as a name.
func Parse(s string) Name {
	return Name(strings.TrimSpace(s))
}

// IsRoot reports whether the name is empty.
func (n Name) IsRoot() bool {
	return n == Root
}

// String implements fmt.Stringer
func (n Name) String() string {
	return string(n)
}

// ShortName returns the last segment of the name.  For 'a.b.C' that is 'C'.
func (n Name) ShortName() string {
	index := strings.LastIndex(string(n), ".")
	if index < 0 {
		return string(n)
	}
	return string(n[index+1:])
}

// Parent returns the name without its last segment.  The parent of a
// single-segment name is Root.
func (n Name) Parent() Name {
	index := strings.LastIndex(string(n), ".")
	if index <= 0 {
		return Root
	}
	return n[:index]
}

// Child returns the name extended by the given segment.
func (n Name) Child(segment string) Name {
	if n.IsRoot() {
		return Name(segment)
	}
	return Name(string(n) + "." + segment)
}

// Segments splits the name on dots.  Root has no segments.
func (n Name) Segments() []string {
	if n.IsRoot() {
		return nil
	}
	return strings.Split(string(n), ".")
}

// StartsWith reports whether the given prefix is the name itself or one of
// its ancestors, matching on whole segments.
func (n Name) StartsWith(prefix Name) bool {
	if prefix.IsRoot() || n == prefix {
		return true
	}
	return strings.HasPrefix(string(n), string(prefix)+".")
}

// Fields splits the given string on whitespace and returns the deduplicated,
// sorted set of non-empty names.
func Fields(s string) []Name {
	seen := make(map[Name]struct{})
	var names []Name
	for _, field := range strings.Fields(s) {
		name := Parse(field)
		if name.IsRoot() {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	Sort(names)
	return names
}

// Sort orders names lexically.
func Sort(names []Name) {
	sort.Slice(names, func(i, j int) bool {
		return names[i] < names[j]
	})
}

// Segmenter segments string key paths by dot separators. For example,
// "a.b.c" -> ("a", 1), (".b", 3), (".c", -1) in successive calls. It does
// not allocate any heap memory.
func Segmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.') // next '.' after 0th rune
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}
