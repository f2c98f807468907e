package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntervalString(t *testing.T) {
	cases := []struct {
		iv   Interval
		want string
	}{
		{Interval{}, "00:00:00"},
		{Interval{Months: 12}, "1 year"},
		{Interval{Months: 14}, "1 year 2 months"},
		{Interval{Months: 1}, "1 month"},
		{Interval{Days: 3}, "3 days"},
		{Interval{Micros: 1_500_000}, "00:00:01.500000"},
		{Interval{Micros: 3_600_000_000}, "01:00:00"},
		{Interval{Months: 14, Days: 3, Micros: 1_500_000}, "1 year 2 months 3 days 00:00:01.500000"},
		{Interval{Micros: -1_000_000}, "-00:00:01"},
		{Interval{Months: -12}, "-1 year"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.iv.String())
	}
}

func TestIntervalIsZero(t *testing.T) {
	require.True(t, Interval{}.IsZero())
	require.False(t, Interval{Micros: 1}.IsZero())
}

func TestStructPreservesInsertionOrder(t *testing.T) {
	s := NewStruct()
	s.Set("z", 1)
	s.Set("a", 2)
	s.Set("m", 3)
	require.Equal(t, []string{"z", "a", "m"}, s.Names())
	require.Equal(t, 3, s.Len())
	require.Equal(t, "{z: 1, a: 2, m: 3}", s.String())
}

func TestStructSetOverwritesWithoutReordering(t *testing.T) {
	s := NewStruct()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("a", 3)
	require.Equal(t, []string{"a", "b"}, s.Names())
	v, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, 3, v)
}

func TestStructToMap(t *testing.T) {
	s := NewStruct()
	s.Set("id", int64(7))
	require.Equal(t, map[string]any{"id": int64(7)}, s.ToMap())

	_, ok := s.Get("missing")
	require.False(t, ok)
}
