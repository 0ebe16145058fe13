package keypath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/remapfmt/remap/ir"
)

// Segment is one step of a KeyPath: an object field or an array index.
// Exactly one of Field and Index is set.
type Segment struct {
	Field *string
	Index *int
}

func FieldSegment(f string) Segment {
	return Segment{Field: &f}
}

func IndexSegment(i int) Segment {
	return Segment{Index: &i}
}

// KeyPath is an immutable sequence of segments.
type KeyPath struct {
	segs []Segment
}

// New builds a KeyPath from path components. String components are split on
// dots into multiple field segments; int components become index segments and
// are never split. A KeyPath component splices in its segments. Any other
// component type panics.
func New(parts ...any) KeyPath {
	var segs []Segment
	for _, part := range parts {
		switch x := part.(type) {
		case string:
			for _, f := range strings.Split(x, ".") {
				segs = append(segs, FieldSegment(f))
			}
		case int:
			segs = append(segs, IndexSegment(x))
		case int64:
			segs = append(segs, IndexSegment(int(x)))
		case Segment:
			segs = append(segs, x)
		case KeyPath:
			segs = append(segs, x.segs...)
		default:
			panic(fmt.Sprintf("keypath: invalid path component %T", part))
		}
	}
	return KeyPath{segs: segs}
}

func (p KeyPath) Len() int {
	return len(p.segs)
}

func (p KeyPath) IsEmpty() bool {
	return len(p.segs) == 0
}

// Segments returns a copy of the path's segments.
func (p KeyPath) Segments() []Segment {
	res := make([]Segment, len(p.segs))
	copy(res, p.segs)
	return res
}

func (p KeyPath) Equal(o KeyPath) bool {
	if len(p.segs) != len(o.segs) {
		return false
	}
	for i := range p.segs {
		a, b := p.segs[i], o.segs[i]
		if (a.Field == nil) != (b.Field == nil) {
			return false
		}
		if a.Field != nil && *a.Field != *b.Field {
			return false
		}
		if (a.Index == nil) != (b.Index == nil) {
			return false
		}
		if a.Index != nil && *a.Index != *b.Index {
			return false
		}
	}
	return true
}

// String returns the textual form of the path, e.g. "a.b[1]". Fields
// containing special characters are single-quoted, so the result parses back
// with Parse.
func (p KeyPath) String() string {
	buf := bytes.NewBuffer(nil)
	for _, seg := range p.segs {
		if seg.Index != nil {
			fmt.Fprintf(buf, "[%d]", *seg.Index)
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(quoteField(*seg.Field))
	}
	return buf.String()
}

func quoteField(f string) string {
	if f != "" && strings.IndexAny(f, "'.[]") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// Get walks the path from root and returns a clone of the located node, or
// nil when the path is empty, a segment's kind does not match the container,
// an object key is missing, or an array index is out of bounds.
func (p KeyPath) Get(root *ir.Node) *ir.Node {
	if len(p.segs) == 0 || root == nil {
		return nil
	}
	res := root
	for _, seg := range p.segs {
		if seg.Field != nil {
			if res.Type != ir.ObjectType {
				return nil
			}
			res = ir.Get(res, *seg.Field)
			if res == nil {
				return nil
			}
			continue
		}
		if res.Type != ir.ArrayType {
			return nil
		}
		index := *seg.Index
		if index < 0 || index >= len(res.Values) {
			return nil
		}
		res = res.Values[index]
	}
	return res.Clone()
}

// Set walks to the parent of the final segment and assigns v there. The
// whole call is a no-op when the path is empty or any intermediate segment
// fails to resolve; intermediate containers are never created. For a final
// field segment, v == nil deletes the key. For a final index segment, the
// assignment is dropped when the index is out of bounds and deletion is not
// supported (v == nil is dropped too).
func (p KeyPath) Set(root *ir.Node, v *ir.Node) {
	if len(p.segs) == 0 || root == nil {
		return
	}
	cur := root
	for _, seg := range p.segs[:len(p.segs)-1] {
		if seg.Field != nil {
			if cur.Type != ir.ObjectType {
				return
			}
			cur = ir.Get(cur, *seg.Field)
			if cur == nil {
				return
			}
			continue
		}
		if cur.Type != ir.ArrayType {
			return
		}
		index := *seg.Index
		if index < 0 || index >= len(cur.Values) {
			return
		}
		cur = cur.Values[index]
	}
	last := p.segs[len(p.segs)-1]
	if last.Field != nil {
		if cur.Type != ir.ObjectType {
			return
		}
		if v == nil {
			ir.Delete(cur, *last.Field)
			return
		}
		ir.Set(cur, *last.Field, v)
		return
	}
	if cur.Type != ir.ArrayType || v == nil {
		return
	}
	index := *last.Index
	if index < 0 || index >= len(cur.Values) {
		return
	}
	cur.Values[index] = v
}

// Parse parses the textual form produced by String. Fields are separated by
// dots and may be single-quoted (with \' escapes) to include special
// characters; indexes use "[n]". The empty string parses to the empty path.
func Parse(s string) (KeyPath, error) {
	var segs []Segment
	rest := s
	first := true
	for rest != "" {
		switch {
		case rest[0] == '[':
			i := strings.IndexByte(rest, ']')
			if i == -1 {
				return KeyPath{}, fmt.Errorf("expected '[' <index> ']' in %q", s)
			}
			index, err := strconv.Atoi(rest[1:i])
			if err != nil {
				return KeyPath{}, fmt.Errorf("invalid index in %q: %w", s, err)
			}
			segs = append(segs, IndexSegment(index))
			rest = rest[i+1:]
		case rest[0] == '.':
			if first {
				return KeyPath{}, fmt.Errorf("path %q starts with '.'", s)
			}
			rest = rest[1:]
			field, tail, err := parseField(rest, s)
			if err != nil {
				return KeyPath{}, err
			}
			segs = append(segs, FieldSegment(field))
			rest = tail
		default:
			field, tail, err := parseField(rest, s)
			if err != nil {
				return KeyPath{}, err
			}
			segs = append(segs, FieldSegment(field))
			rest = tail
		}
		first = false
	}
	return KeyPath{segs: segs}, nil
}

func parseField(frag, whole string) (field, rest string, err error) {
	if frag == "" {
		return "", "", fmt.Errorf("expected field at end of %q", whole)
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("unterminated quote in %q", whole)
}
