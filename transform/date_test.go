package transform

import (
	"testing"
	"time"

	"github.com/remapfmt/remap/ir"
)

func TestDateSeconds(t *testing.T) {
	o := obj(map[string]*ir.Node{"ts": ir.FromInt(1000000000)})
	DateSeconds().Transform(o, "ts")
	if got := ir.Get(o, "ts"); got.Int64 == nil || *got.Int64 != 1000000000000 {
		t.Errorf("ts = %v, want 1000000000000", got)
	}
}

func TestDateMillis(t *testing.T) {
	o := obj(map[string]*ir.Node{"ts": ir.FromInt(1000000000000)})
	DateMillis().Transform(o, "ts")
	if got := ir.Get(o, "ts"); *got.Int64 != 1000000000000 {
		t.Errorf("ts = %v", got)
	}
}

func TestDateISO8601(t *testing.T) {
	want := time.Date(1992, 10, 25, 7, 0, 0, 0, time.UTC).UnixMilli()
	tests := []struct {
		name string
		in   string
	}{
		{"offset without colon", "1992-10-25T07:00:00+0000"},
		{"offset with colon", "1992-10-25T07:00:00+00:00"},
		{"zulu", "1992-10-25T07:00:00Z"},
		{"zoneless is UTC", "1992-10-25T07:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := obj(map[string]*ir.Node{"ts": ir.FromString(tt.in)})
			DateISO8601().Transform(o, "ts")
			got := ir.Get(o, "ts")
			if got.Type != ir.NumberType || got.Int64 == nil {
				t.Fatalf("ts = %v, want integer", got)
			}
			if *got.Int64 != want {
				t.Errorf("ts = %d, want %d", *got.Int64, want)
			}
		})
	}
}

func TestDateLayout(t *testing.T) {
	o := obj(map[string]*ir.Node{"born": ir.FromString("10-25-1992")})
	DateLayout("01-02-2006").Transform(o, "born")
	want := time.Date(1992, 10, 25, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got := ir.Get(o, "born"); got.Int64 == nil || *got.Int64 != want {
		t.Errorf("born = %v, want %d (midnight UTC)", got, want)
	}
}

func TestDateLayoutRegisteredName(t *testing.T) {
	formats := NewFormats()
	formats.Register("us-date", "01-02-2006")
	o := obj(map[string]*ir.Node{"born": ir.FromString("10-25-1992")})
	DateLayoutIn(formats, "us-date").Transform(o, "born")
	if got := ir.Get(o, "born"); got.Int64 == nil {
		t.Fatalf("born = %v, want integer", got)
	}
}

func TestDateFunc(t *testing.T) {
	when := time.Date(2001, 9, 9, 1, 46, 40, 0, time.UTC)
	t.Run("adapter date", func(t *testing.T) {
		o := obj(map[string]*ir.Node{"raw": ir.FromString("whatever")})
		DateFunc(func(raw *ir.Node) (time.Time, bool) {
			return when, raw != nil
		}, "raw").Transform(o, "ts")
		if got := ir.Get(o, "ts"); got == nil || *got.Int64 != when.UnixMilli() {
			t.Errorf("ts = %v, want %d", got, when.UnixMilli())
		}
	})
	t.Run("adapter declines", func(t *testing.T) {
		o := obj(map[string]*ir.Node{"raw": ir.FromString("whatever")})
		DateFunc(func(raw *ir.Node) (time.Time, bool) {
			return time.Time{}, false
		}, "raw").Transform(o, "ts")
		if ir.Get(o, "ts") != nil {
			t.Error("ts set even though the adapter yielded no date")
		}
	})
}

func TestDateUnparseable(t *testing.T) {
	tests := []struct {
		name string
		tr   Transformer
		in   *ir.Node
	}{
		{"seconds from string", DateSeconds(), ir.FromString("1000")},
		{"millis from string", DateMillis(), ir.FromString("1000")},
		{"iso from number", DateISO8601(), ir.FromInt(5)},
		{"iso garbage", DateISO8601(), ir.FromString("not a date")},
		{"layout mismatch", DateLayout("01-02-2006"), ir.FromString("1992/10/25")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := obj(map[string]*ir.Node{"ts": tt.in})
			before := o.Clone()
			tt.tr.Transform(o, "ts")
			if !ir.Equal(o, before) {
				t.Error("unparseable input must leave the field as found")
			}
		})
	}
}

func TestDateRemapped(t *testing.T) {
	o := obj(map[string]*ir.Node{
		"meta": obj(map[string]*ir.Node{"created": ir.FromInt(1000000000)}),
	})
	DateSeconds("meta.created").Transform(o, "created")
	if got := ir.Get(o, "created"); got == nil || *got.Int64 != 1000000000000 {
		t.Errorf("created = %v", got)
	}
}

func TestDateReverse(t *testing.T) {
	ms := time.Date(1992, 10, 25, 7, 0, 0, 0, time.UTC).UnixMilli()
	t.Run("seconds", func(t *testing.T) {
		o := obj(map[string]*ir.Node{"ts": ir.FromInt(ms)})
		DateSeconds().Reverse(o, "ts")
		if got := ir.Get(o, "ts"); *got.Int64 != ms/1000 {
			t.Errorf("ts = %v, want %d", got, ms/1000)
		}
	})
	t.Run("iso to source path", func(t *testing.T) {
		o := obj(map[string]*ir.Node{
			"ts":   ir.FromInt(ms),
			"meta": obj(map[string]*ir.Node{"created": ir.FromString("old")}),
		})
		DateISO8601("meta.created").Reverse(o, "ts")
		got := ir.Get(ir.Get(o, "meta"), "created")
		if got == nil || got.Type != ir.StringType {
			t.Fatalf("meta.created = %v", got)
		}
		tm, err := time.Parse(time.RFC3339, got.String)
		if err != nil {
			t.Fatal(err)
		}
		if tm.UnixMilli() != ms {
			t.Errorf("round trip instant = %d, want %d", tm.UnixMilli(), ms)
		}
		if ir.Get(o, "ts") != nil {
			t.Error("schema key not removed after reverse to another path")
		}
	})
	t.Run("func has no reverse", func(t *testing.T) {
		o := obj(map[string]*ir.Node{"ts": ir.FromInt(ms)})
		before := o.Clone()
		DateFunc(func(*ir.Node) (time.Time, bool) { return time.Time{}, false }).Reverse(o, "ts")
		if !ir.Equal(o, before) {
			t.Error("DateFunc reverse must be a no-op")
		}
	})
}
