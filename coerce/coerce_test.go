package coerce

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/duckbridge/duckbridge-go/schema"
	"github.com/duckbridge/duckbridge-go/types"
)

func TestCoerceIsDeterministic(t *testing.T) {
	f := schema.NewField("v", schema.TypeInterval, nil)
	raw := []any{int32(1), int32(2), int64(3)}
	first := Coerce(raw, f)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Coerce(raw, f))
	}
}

func TestIntervalThreeTuple(t *testing.T) {
	f := schema.NewField("iv", schema.TypeInterval, nil)
	got := Coerce([]any{int32(12), int32(0), int64(0)}, f)
	require.Equal(t, types.Interval{Months: 12}, got)
}

func TestIntervalFourTupleRecombinesNanos(t *testing.T) {
	f := schema.NewField("iv", schema.TypeInterval, nil)
	// 1.5 seconds as a split 64-bit nanosecond count.
	nanos := int64(1_500_000_000)
	hi := nanos >> 32
	lo := nanos & 0xFFFFFFFF
	got := Coerce([]any{int32(0), int32(0), hi, lo}, f)
	require.Equal(t, types.Interval{Micros: 1_500_000}, got)
}

func TestIntervalYearMonthPair(t *testing.T) {
	f := schema.NewField("iv", schema.TypeInterval,
		map[string]string{"interval_unit": "year_month"})
	got := Coerce([]any{int64(2), int64(3)}, f)
	require.Equal(t, types.Interval{Months: 27}, got)
}

func TestIntervalDayTimePair(t *testing.T) {
	f := schema.NewField("iv", schema.TypeInterval,
		map[string]string{"interval_unit": "day_time"})
	got := Coerce([]any{int64(5), int64(1500)}, f)
	require.Equal(t, types.Interval{Days: 5, Micros: 1_500_000}, got)
}

func TestIntervalFromText(t *testing.T) {
	f := schema.NewField("iv", schema.TypeInterval, nil)
	got := Coerce("1 year", f)
	require.Equal(t, types.Interval{Months: 12}, got)

	got = Coerce("2 days 00:00:01.5", f)
	require.Equal(t, types.Interval{Days: 2, Micros: 1_500_000}, got)
}

func structField() schema.FieldDescriptor {
	f := schema.NewField("s", schema.TypeStruct, nil)
	f.Children = []schema.FieldDescriptor{
		schema.NewField("id", schema.TypeNumeric, nil),
		schema.NewField("born", schema.TypeDate, nil),
	}
	return f
}

func TestStructPositionalZipsByIndex(t *testing.T) {
	got := Coerce([]any{int64(7), "1992-09-20"}, structField())
	s, ok := got.(*types.Struct)
	require.True(t, ok)
	require.Equal(t, []string{"id", "born"}, s.Names())
	id, _ := s.Get("id")
	require.Equal(t, int64(7), id)
}

func TestStructKeyedRecursesDeclaredChildren(t *testing.T) {
	raw := map[string]any{"id": int64(7), "born": "1992-09-20", "extra": "kept"}
	got := Coerce(raw, structField())
	s, ok := got.(*types.Struct)
	require.True(t, ok)
	// Declared children first, unknown keys passed through after.
	require.Equal(t, []string{"id", "born", "extra"}, s.Names())
	extra, _ := s.Get("extra")
	require.Equal(t, "kept", extra)
}

func TestListRecursesElementField(t *testing.T) {
	f := schema.NewField("l", schema.TypeList, nil)
	f.Children = []schema.FieldDescriptor{schema.NewField("item", schema.TypeDate, nil)}
	got := Coerce([]any{"1992-09-20", "1993-01-02"}, f)
	list, ok := got.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
}

func TestListFlattensTypedSlice(t *testing.T) {
	f := schema.NewField("l", schema.TypeList, nil)
	got := Coerce([]int64{1, 2, 3}, f)
	require.Equal(t, []any{int64(1), int64(2), int64(3)}, got)
}

func TestMapRendersCanonicalString(t *testing.T) {
	f := schema.NewField("m", schema.TypeMap, nil)
	raw := []MapEntry{{Key: "x", Value: "y"}, {Key: "z", Value: "w"}}
	require.Equal(t, "{x=y, z=w}", Coerce(raw, f))
}

func TestMapPreservesDeliveredOrder(t *testing.T) {
	f := schema.NewField("m", schema.TypeMap, nil)
	raw := []MapEntry{{Key: "z", Value: 1}, {Key: "a", Value: 2}}
	require.Equal(t, "{z=1, a=2}", Coerce(raw, f))
}

func TestMapFromPairSequence(t *testing.T) {
	f := schema.NewField("m", schema.TypeMap, nil)
	raw := []any{[]any{"k1", "v1"}, []any{"k2", "v2"}}
	require.Equal(t, "{k1=v1, k2=v2}", Coerce(raw, f))
}

func TestUUIDFromString(t *testing.T) {
	f := schema.NewField("u", schema.TypeUUID, nil)
	got := Coerce("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", f)
	u, ok := got.(uuid.UUID)
	require.True(t, ok)
	require.Equal(t, "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", u.String())
}

func TestUUIDFromBytes(t *testing.T) {
	f := schema.NewField("u", schema.TypeUUID, nil)
	want := uuid.New()
	got := Coerce(want[:], f)
	require.Equal(t, want, got)
}

func TestPassthroughLeavesValue(t *testing.T) {
	f := schema.NewField("n", schema.TypeNumeric, nil)
	require.Equal(t, uint64(1<<63), Coerce(uint64(1<<63), f))

	f = schema.NewField("s", schema.TypeText, nil)
	require.Equal(t, "hello", Coerce("hello", f))
}

func TestNullPropagatesThroughEveryBranch(t *testing.T) {
	tags := []schema.LogicalType{
		schema.TypeBoolean, schema.TypeNumeric, schema.TypeText,
		schema.TypeDate, schema.TypeTimestamp, schema.TypeTimestampTZ,
		schema.TypeInterval, schema.TypeStruct, schema.TypeList,
		schema.TypeMap, schema.TypeBinary, schema.TypeUUID, schema.TypeUnknown,
	}
	for _, tag := range tags {
		require.Nil(t, Coerce(nil, schema.NewField("f", tag, nil)))
	}
}

func TestUnknownTypeFallsBackToSequence(t *testing.T) {
	f := schema.NewField("x", schema.TypeUnknown, nil)
	got := Coerce([]int32{1, 2}, f)
	require.Equal(t, []any{int32(1), int32(2)}, got)
}

type sliceable struct{}

func (sliceable) ToSlice() []any { return []any{"a", "b"} }

func TestFallbackUsesToSlice(t *testing.T) {
	f := schema.NewField("x", schema.TypeUnknown, nil)
	require.Equal(t, []any{"a", "b"}, Coerce(sliceable{}, f))
}

type opaque struct{ v string }

func TestFallbackReturnsRawUnchanged(t *testing.T) {
	f := schema.NewField("x", schema.TypeUnknown, nil)
	raw := opaque{v: "untouched"}
	require.Equal(t, raw, Coerce(raw, f))
}
