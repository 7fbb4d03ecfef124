package value

import (
	"testing"

	"github.com/bearlytools/talon/bitset"
	"github.com/bearlytools/talon/field"
	"github.com/bearlytools/talon/schema"
	"github.com/bearlytools/talon/standard"
)

// weatherDesc mirrors the canonical change-tracking shape:
//
//	structure record          offset 0
//	    structure timeStamp   offset 1 (children 2..4)
//	    structure alarm       offset 5 (children 6..8)
//	    double value          offset 9
func weatherDesc(t *testing.T) *schema.Structure {
	t.Helper()
	v, err := schema.NewScalar("value", field.STFloat64)
	if err != nil {
		t.Fatalf("weatherDesc: unexpected error: %s", err)
	}
	return schema.NewStructure("record", standard.TimeStamp(), standard.Alarm(), v)
}

func setAll(bs *bitset.BitSet, v Value) {
	bs.Set(v.Offset())
	if s, ok := v.(*Structure); ok {
		for _, c := range s.Fields() {
			setAll(bs, c)
		}
	}
}

func only(t *testing.T, bs *bitset.BitSet, want ...int) {
	t.Helper()
	check := bitset.New(0)
	for _, i := range want {
		check.Set(i)
	}
	if !bs.Equal(check) {
		t.Fatalf("%s: got bits %v, want %v", t.Name(), bs, check)
	}
}

func TestCompressAllSet(t *testing.T) {
	root := Create(weatherDesc(t)).(*Structure)
	bs := bitset.New(root.NextOffset())
	setAll(bs, root)
	Compress(bs, root)
	only(t, bs, root.Offset())
}

func TestCompressPartialChildUnchanged(t *testing.T) {
	root := Create(weatherDesc(t)).(*Structure)
	bs := bitset.New(root.NextOffset())
	bs.Set(root.Sub("timeStamp.secondsPastEpoch").Offset())
	Compress(bs, root)
	only(t, bs, root.Sub("timeStamp.secondsPastEpoch").Offset())
}

func TestCompressFullSubtree(t *testing.T) {
	root := Create(weatherDesc(t)).(*Structure)
	bs := bitset.New(root.NextOffset())
	for _, p := range []string{"timeStamp.secondsPastEpoch", "timeStamp.nanoSeconds", "timeStamp.userTag"} {
		bs.Set(root.Sub(p).Offset())
	}
	Compress(bs, root)
	only(t, bs, root.Sub("timeStamp").Offset())
}

func TestCompressNearestAncestor(t *testing.T) {
	// current{value, alarm{severity, status, message}}
	v, err := schema.NewScalar("value", field.STFloat64)
	if err != nil {
		t.Fatalf("TestCompressNearestAncestor: unexpected error: %s", err)
	}
	root := Create(schema.NewStructure("current", v, standard.Alarm())).(*Structure)

	bs := bitset.New(root.NextOffset())
	for _, p := range []string{"value", "alarm.severity", "alarm.status", "alarm.message"} {
		bs.Set(root.Sub(p).Offset())
	}
	Compress(bs, root)
	only(t, bs, root.Offset())

	// Without value, the collapse stops at alarm and never reaches current.
	bs.ClearAll()
	for _, p := range []string{"alarm.severity", "alarm.status", "alarm.message"} {
		bs.Set(root.Sub(p).Offset())
	}
	Compress(bs, root)
	only(t, bs, root.Sub("alarm").Offset())
	if bs.Get(root.Offset()) {
		t.Fatalf("TestCompressNearestAncestor: current's own bit must stay unset")
	}
}

func TestCompressThreeLevels(t *testing.T) {
	// outer{mid{inner{a, b}, c}, d}
	mk := func(name string) *schema.Scalar {
		s, err := schema.NewScalar(name, field.STInt32)
		if err != nil {
			t.Fatalf("TestCompressThreeLevels: unexpected error: %s", err)
		}
		return s
	}
	inner := schema.NewStructure("inner", mk("a"), mk("b"))
	mid := schema.NewStructure("mid", inner, mk("c"))
	root := Create(schema.NewStructure("outer", mid, mk("d"))).(*Structure)

	// All leaves set: the collapse cascades through every level to the root.
	bs := bitset.New(root.NextOffset())
	for _, p := range []string{"mid.inner.a", "mid.inner.b", "mid.c", "d"} {
		bs.Set(root.Sub(p).Offset())
	}
	Compress(bs, root)
	only(t, bs, root.Offset())

	// Leaf d unset: the cascade reaches mid and stops there.
	bs.ClearAll()
	for _, p := range []string{"mid.inner.a", "mid.inner.b", "mid.c"} {
		bs.Set(root.Sub(p).Offset())
	}
	Compress(bs, root)
	only(t, bs, root.Sub("mid").Offset())

	// Leaf c unset: only the deepest level collapses.
	bs.ClearAll()
	for _, p := range []string{"mid.inner.a", "mid.inner.b", "d"} {
		bs.Set(root.Sub(p).Offset())
	}
	Compress(bs, root)
	only(t, bs, root.Sub("mid.inner").Offset(), root.Sub("d").Offset())
}
