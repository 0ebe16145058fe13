package transform

import (
	"math"
	"time"

	"github.com/remapfmt/remap/debug"
	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// The date transformers normalize every supported source representation to
// the single canonical wire form: an integer of milliseconds since the Unix
// epoch, stored at the target key. One canonical form lets the structural
// codec use a single fixed date convention no matter how many date shapes
// the source document mixes. Unparseable input leaves the field as found,
// which later surfaces as the codec's required-field failure.

type dateKind int

const (
	dateSeconds dateKind = iota
	dateMillis
	dateISO8601
	dateLayout
	dateFunc
)

// DateSeconds reads a numeric seconds-since-epoch value.
func DateSeconds(parts ...any) Transformer {
	return &date{kind: dateSeconds, path: keypath.New(parts...)}
}

// DateMillis reads a numeric milliseconds-since-epoch value.
func DateMillis(parts ...any) Transformer {
	return &date{kind: dateMillis, path: keypath.New(parts...)}
}

// DateISO8601 reads an ISO-8601 timestamp string.
func DateISO8601(parts ...any) Transformer {
	return &date{kind: dateISO8601, path: keypath.New(parts...)}
}

// DateLayout reads a timestamp string in the given Go reference layout. A
// name registered in DefaultFormats may be used in place of a layout.
func DateLayout(layout string, parts ...any) Transformer {
	return DateLayoutIn(DefaultFormats, layout, parts...)
}

// DateLayoutIn is DateLayout with an explicit layout registry.
func DateLayoutIn(formats *Formats, layout string, parts ...any) Transformer {
	return &date{kind: dateLayout, layout: layout, formats: formats, path: keypath.New(parts...)}
}

// DateFunc derives the date with a custom adapter. The adapter receives the
// raw value at the source path, which may be of any JSON kind or nil when
// absent; returning ok == false leaves the field as found. A DateFunc
// transformer has no reverse.
func DateFunc(fn func(raw *ir.Node) (time.Time, bool), parts ...any) Transformer {
	return &date{kind: dateFunc, fn: fn, path: keypath.New(parts...)}
}

type date struct {
	kind    dateKind
	path    keypath.KeyPath
	layout  string
	formats *Formats
	fn      func(raw *ir.Node) (time.Time, bool)
}

func (t *date) Path() keypath.KeyPath {
	return t.path
}

func (t *date) String() string {
	switch t.kind {
	case dateSeconds:
		return "date(seconds)"
	case dateMillis:
		return "date(millis)"
	case dateISO8601:
		return "date(iso8601)"
	case dateLayout:
		return "date(" + t.layout + ")"
	default:
		return "date(func)"
	}
}

func (t *date) Transform(obj *ir.Node, key string) {
	raw := resolve(t.path, key).Get(obj)
	if t.kind == dateFunc {
		tm, ok := t.fn(raw)
		if !ok {
			if debug.Transform() {
				debug.Logf("date: adapter yielded no date for %q", key)
			}
			return
		}
		ir.Set(obj, key, ir.FromInt(tm.UnixMilli()))
		return
	}
	if raw == nil {
		return
	}
	ms, ok := t.parse(raw)
	if !ok {
		if debug.Transform() {
			debug.Logf("date: unparseable value at %s for %q: %v", resolve(t.path, key), key, raw)
		}
		return
	}
	ir.Set(obj, key, ir.FromInt(ms))
}

func (t *date) parse(raw *ir.Node) (int64, bool) {
	switch t.kind {
	case dateSeconds:
		if raw.Type != ir.NumberType {
			return 0, false
		}
		if raw.Int64 != nil {
			return *raw.Int64 * 1000, true
		}
		if raw.Float64 != nil {
			return int64(math.Round(*raw.Float64 * 1000)), true
		}
		return 0, false
	case dateMillis:
		if raw.Type != ir.NumberType {
			return 0, false
		}
		if raw.Int64 != nil {
			return *raw.Int64, true
		}
		if raw.Float64 != nil {
			return int64(math.Round(*raw.Float64)), true
		}
		return 0, false
	case dateISO8601:
		if raw.Type != ir.StringType {
			return 0, false
		}
		for _, layout := range isoLayouts {
			tm, err := time.Parse(layout, raw.String)
			if err == nil {
				return tm.UnixMilli(), true
			}
		}
		return 0, false
	case dateLayout:
		if raw.Type != ir.StringType {
			return 0, false
		}
		tm, err := time.Parse(t.effectiveLayout(), raw.String)
		if err != nil {
			return 0, false
		}
		return tm.UnixMilli(), true
	}
	return 0, false
}

func (t *date) effectiveLayout() string {
	if layout, ok := t.formats.Lookup(t.layout); ok {
		return layout
	}
	return t.layout
}

func (t *date) Reverse(obj *ir.Node, key string) {
	if t.kind == dateFunc {
		return
	}
	v := ir.Get(obj, key)
	if v == nil || v.Type != ir.NumberType {
		return
	}
	var ms int64
	switch {
	case v.Int64 != nil:
		ms = *v.Int64
	case v.Float64 != nil:
		ms = int64(math.Round(*v.Float64))
	default:
		return
	}
	tm := time.UnixMilli(ms).UTC()
	var out *ir.Node
	switch t.kind {
	case dateSeconds:
		out = ir.FromInt(ms / 1000)
	case dateMillis:
		out = ir.FromInt(ms)
	case dateISO8601:
		out = ir.FromString(tm.Format(time.RFC3339))
	case dateLayout:
		out = ir.FromString(tm.Format(t.effectiveLayout()))
	}
	restore(obj, key, resolve(t.path, key), out)
}
