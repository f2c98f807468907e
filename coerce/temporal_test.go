package coerce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/duckbridge/duckbridge-go/schema"
)

func dateField(name string) schema.FieldDescriptor {
	return schema.NewField(name, schema.TypeDate, nil)
}

func TestDateFromDayCount(t *testing.T) {
	got := Coerce(int32(8298), dateField("d"))
	require.Equal(t, time.Date(1992, 9, 20, 0, 0, 0, 0, time.UTC), got)
}

func TestDateFromMilliseconds(t *testing.T) {
	// Above the day-count threshold, the number is a millisecond
	// offset from the epoch.
	ms := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	got := Coerce(ms, dateField("d"))
	require.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestDateFromExactString(t *testing.T) {
	got := Coerce("1992-09-20", dateField("d"))
	require.Equal(t, time.Date(1992, 9, 20, 0, 0, 0, 0, time.UTC), got)
}

func TestDateFromDateTimeString(t *testing.T) {
	got := Coerce("1992-09-20 11:30:00.123", dateField("d"))
	require.Equal(t, time.Date(1992, 9, 20, 0, 0, 0, 0, time.UTC), got)
}

func TestDateUnparseableYieldsZeroTime(t *testing.T) {
	got := Coerce("not a date", dateField("d"))
	ts, ok := got.(time.Time)
	require.True(t, ok)
	require.True(t, ts.IsZero())
}

func TestTimestampTruncatesMicroseconds(t *testing.T) {
	f := schema.NewField("ts", schema.TypeTimestamp, nil)
	got := Coerce("1970-01-01 00:00:00.001234", f)
	require.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, int(time.Millisecond), time.UTC), got)
}

func TestTimestampNaiveAssumesUTC(t *testing.T) {
	f := schema.NewField("ts", schema.TypeTimestamp, nil)
	got := Coerce("1992-09-20 11:30:00.123", f)
	require.Equal(t, time.Date(1992, 9, 20, 11, 30, 0, 123*int(time.Millisecond), time.UTC), got)
}

func TestZonedTimestampNormalizesToUTC(t *testing.T) {
	f := schema.NewField("ts", schema.TypeTimestampTZ, nil)
	got := Coerce("1992-09-20 11:30:00.123+03:00", f)
	require.Equal(t, time.Date(1992, 9, 20, 8, 30, 0, 123*int(time.Millisecond), time.UTC), got)
}

func TestZonedTimestampWithoutOffsetAssumesUTC(t *testing.T) {
	f := schema.NewField("ts", schema.TypeTimestampTZ, nil)
	got := Coerce("1992-09-20 11:30:00.123", f)
	require.Equal(t, time.Date(1992, 9, 20, 11, 30, 0, 123*int(time.Millisecond), time.UTC), got)
}

func TestZonedTimestampZuluMarker(t *testing.T) {
	f := schema.NewField("ts", schema.TypeTimestampTZ, nil)
	got := Coerce("1992-09-20T08:30:00.123Z", f)
	require.Equal(t, time.Date(1992, 9, 20, 8, 30, 0, 123*int(time.Millisecond), time.UTC), got)
}

func TestTimestampFromTimeValue(t *testing.T) {
	f := schema.NewField("ts", schema.TypeTimestamp, nil)
	in := time.Date(2023, 6, 1, 10, 20, 30, 123456789, time.FixedZone("x", 3600))
	got := Coerce(in, f)
	require.Equal(t, in.UTC().Truncate(time.Millisecond), got)
}

func TestTimeOfDayFromMicroseconds(t *testing.T) {
	f := schema.NewField("t", schema.TypeTime, nil)
	got := Coerce(int64(14*3600+30*60)*1_000_000, f)
	require.Equal(t, time.Date(1970, 1, 1, 14, 30, 0, 0, time.UTC), got)
}

func TestTemporalNullPassthrough(t *testing.T) {
	require.Nil(t, Coerce(nil, dateField("d")))
}
