// Package columnar is the column container used by strtemporal.
//
// It wraps Apache Arrow arrays with the handful of operations the temporal
// conversions need: iteration with and without null checks, first non-null
// lookup, construction of typed output arrays, and renaming.
//
// # Inputs
//
// StringColumn is the read-only input contract. ArrowStrings implements it
// over an Arrow *array.String plus a name:
//
//	col := columnar.NewStringColumn(mem, "created_at",
//		[]string{"2021-01-01", "", "2021-01-03"},
//		[]bool{true, false, true})
//	defer col.Release()
//
// Values returned by Value are views into the Arrow data buffer; they stay
// valid for as long as the column is retained and must not be modified.
//
// # Outputs
//
// TemporalColumn holds a Date32, Time64[ns] or Timestamp array together with
// the input's name. Store groups several named columns into one Arrow record
// for writing.
package columnar
