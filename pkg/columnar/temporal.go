package columnar

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// ColumnType represents the temporal type of a converted column
type ColumnType int

const (
	ColumnTypeDate ColumnType = iota
	ColumnTypeTime
	ColumnTypeTimestamp
)

// TemporalColumn is a named Date32, Time64 or Timestamp array.
type TemporalColumn struct {
	name string
	arr  arrow.Array
}

// NewTemporalColumn takes ownership of arr.
func NewTemporalColumn(name string, arr arrow.Array) *TemporalColumn {
	return &TemporalColumn{name: name, arr: arr}
}

func (c *TemporalColumn) Name() string             { return c.name }
func (c *TemporalColumn) Len() int                 { return c.arr.Len() }
func (c *TemporalColumn) NullN() int               { return c.arr.NullN() }
func (c *TemporalColumn) IsNull(i int) bool        { return c.arr.IsNull(i) }
func (c *TemporalColumn) Array() arrow.Array       { return c.arr }
func (c *TemporalColumn) DataType() arrow.DataType { return c.arr.DataType() }

// Type reports the temporal type of the column.
func (c *TemporalColumn) Type() ColumnType {
	switch c.arr.DataType().ID() {
	case arrow.DATE32:
		return ColumnTypeDate
	case arrow.TIME64:
		return ColumnTypeTime
	default:
		return ColumnTypeTimestamp
	}
}

// TimeZone returns the zone tag of a timestamp column, or "".
func (c *TemporalColumn) TimeZone() string {
	if ts, ok := c.arr.DataType().(*arrow.TimestampType); ok {
		return ts.TimeZone
	}
	return ""
}

// Unit returns the tick unit of a time or timestamp column.
func (c *TemporalColumn) Unit() arrow.TimeUnit {
	switch dt := c.arr.DataType().(type) {
	case *arrow.TimestampType:
		return dt.Unit
	case *arrow.Time64Type:
		return dt.Unit
	default:
		return arrow.Second
	}
}

// Value returns the raw numeric code at i: days for dates, ticks for times
// and timestamps.
func (c *TemporalColumn) Value(i int) (int64, bool) {
	if c.arr.IsNull(i) {
		return 0, false
	}
	switch a := c.arr.(type) {
	case *array.Date32:
		return int64(a.Value(i)), true
	case *array.Time64:
		return int64(a.Value(i)), true
	case *array.Timestamp:
		return int64(a.Value(i)), true
	}
	return 0, false
}

// Values returns every code with nil for null slots.
func (c *TemporalColumn) Values() []*int64 {
	out := make([]*int64, c.Len())
	for i := range out {
		if v, ok := c.Value(i); ok {
			out[i] = &v
		}
	}
	return out
}

// Rename returns a column sharing the same array under a new name.
func (c *TemporalColumn) Rename(name string) *TemporalColumn {
	c.arr.Retain()
	return &TemporalColumn{name: name, arr: c.arr}
}

// Field describes the column as an Arrow schema field.
func (c *TemporalColumn) Field() arrow.Field {
	return arrow.Field{Name: c.name, Type: c.arr.DataType(), Nullable: true}
}

func (c *TemporalColumn) Release() { c.arr.Release() }
