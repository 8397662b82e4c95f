package columnar

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// StringColumn is a named sequence of optional strings.
type StringColumn interface {
	Name() string
	Len() int
	NullN() int
	IsNull(i int) bool
	// Value returns the string at i. The result is undefined when IsNull(i).
	Value(i int) string
}

// FirstNonNull returns the index of the first non-null value in col.
func FirstNonNull(col StringColumn) (int, bool) {
	if col.NullN() == 0 {
		return 0, col.Len() > 0
	}
	for i := 0; i < col.Len(); i++ {
		if !col.IsNull(i) {
			return i, true
		}
	}
	return 0, false
}

// ArrowStrings adapts an Arrow string array to StringColumn.
type ArrowStrings struct {
	name string
	arr  *array.String
}

// NewArrowStrings wraps arr, retaining it.
func NewArrowStrings(name string, arr *array.String) *ArrowStrings {
	arr.Retain()
	return &ArrowStrings{name: name, arr: arr}
}

// NewStringColumn builds a column from values. valid may be nil, meaning
// every value is present.
func NewStringColumn(mem memory.Allocator, name string, values []string, valid []bool) *ArrowStrings {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewStringArray()
	defer arr.Release()
	return NewArrowStrings(name, arr)
}

// StringColumnFromArray wraps any Arrow array of type utf8.
func StringColumnFromArray(name string, arr arrow.Array) (*ArrowStrings, bool) {
	s, ok := arr.(*array.String)
	if !ok {
		return nil, false
	}
	return NewArrowStrings(name, s), true
}

func (c *ArrowStrings) Name() string         { return c.name }
func (c *ArrowStrings) Len() int             { return c.arr.Len() }
func (c *ArrowStrings) NullN() int           { return c.arr.NullN() }
func (c *ArrowStrings) IsNull(i int) bool    { return c.arr.IsNull(i) }
func (c *ArrowStrings) Value(i int) string   { return c.arr.Value(i) }
func (c *ArrowStrings) Array() *array.String { return c.arr }

// Rename returns a view of the same data under a new name.
func (c *ArrowStrings) Rename(name string) *ArrowStrings {
	return NewArrowStrings(name, c.arr)
}

// Release drops the reference taken at construction.
func (c *ArrowStrings) Release() { c.arr.Release() }
