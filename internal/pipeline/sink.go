package pipeline

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	gojson "github.com/goccy/go-json"

	"github.com/ajitpratap0/strtemporal/pkg/columnar"
	"github.com/ajitpratap0/strtemporal/pkg/errors"
	pstrings "github.com/ajitpratap0/strtemporal/pkg/strings"
	"github.com/ajitpratap0/strtemporal/pkg/strptime"
)

// OutputFormat selects how converted columns are written.
type OutputFormat string

const (
	OutputJSON    OutputFormat = "json"
	OutputArrow   OutputFormat = "arrow"
	OutputParquet OutputFormat = "parquet"
)

// ParseOutputFormat accepts json, arrow (or ipc) and parquet.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return OutputJSON, nil
	case "arrow", "ipc":
		return OutputArrow, nil
	case "parquet":
		return OutputParquet, nil
	}
	return "", errors.New(errors.ErrorTypeValidation, "unknown output format").WithDetail("output", s)
}

// CreateOutput creates the file at path, compressing JSON output by
// extension. An empty path or "-" writes to stdout.
func CreateOutput(path string, format OutputFormat) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create output").WithDetail("path", path)
	}
	if format != OutputJSON {
		return f, nil
	}
	w, err := compress(f, CompressionFor(path))
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open compressor").WithDetail("path", path)
	}
	return w, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Write writes every column of store to w.
func Write(w io.Writer, format OutputFormat, store *columnar.Store, mem memory.Allocator) error {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	switch format {
	case OutputArrow:
		return writeArrow(w, store, mem)
	case OutputParquet:
		return writeParquet(w, store, mem)
	default:
		return writeJSON(w, store)
	}
}

func writeArrow(w io.Writer, store *columnar.Store, mem memory.Allocator) error {
	rec := store.Record()
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create Arrow writer")
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write Arrow record")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to close Arrow writer")
	}
	return nil
}

func writeParquet(w io.Writer, store *columnar.Store, mem memory.Allocator) error {
	rec := store.Record()
	defer rec.Release()

	tbl := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer tbl.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithAllocator(mem),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithAllocator(mem),
		pqarrow.WithStoreSchema(),
	)
	chunk := int64(store.Rows())
	if chunk == 0 {
		chunk = 1
	}
	if err := pqarrow.WriteTable(tbl, w, chunk, props, arrowProps); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write Parquet")
	}
	return nil
}

// jsonColumn is the JSON rendering of one converted column.
type jsonColumn struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Unit     string    `json:"unit,omitempty"`
	TimeZone string    `json:"timezone,omitempty"`
	Values   []*int64  `json:"values"`
	Text     []*string `json:"text"`
}

type jsonOutput struct {
	Rows    int          `json:"rows"`
	Columns []jsonColumn `json:"columns"`
}

func writeJSON(w io.Writer, store *columnar.Store) error {
	out := jsonOutput{Rows: store.Rows()}
	for _, col := range store.Columns() {
		jc := jsonColumn{
			Name:     col.Name(),
			Type:     col.DataType().String(),
			TimeZone: col.TimeZone(),
			Values:   col.Values(),
		}
		if col.Type() != columnar.ColumnTypeDate {
			jc.Unit = col.Unit().String()
		}
		text, err := render(col)
		if err != nil {
			return err
		}
		jc.Text = text
		out.Columns = append(out.Columns, jc)
	}

	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to encode JSON")
	}
	return nil
}

var (
	dateText     = strptime.MustCompile("%Y-%m-%d")
	timeText     = strptime.MustCompile("%H:%M:%S%.f")
	naiveText    = strptime.MustCompile("%Y-%m-%dT%H:%M:%S%.f")
	zonedText    = strptime.MustCompile("%Y-%m-%dT%H:%M:%S%.f%:z")
	ticksPerUnit = map[arrow.TimeUnit]int64{
		arrow.Second:      1,
		arrow.Millisecond: 1_000,
		arrow.Microsecond: 1_000_000,
		arrow.Nanosecond:  1_000_000_000,
	}
)

// render formats each value of col as ISO 8601 text.
func render(col *columnar.TemporalColumn) ([]*string, error) {
	var loc *time.Location
	if tz := col.TimeZone(); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "unknown timezone").WithDetail("timezone", tz)
		}
	}

	perSecond := ticksPerUnit[col.Unit()]
	out := make([]*string, col.Len())
	// Values are appended to one buffer and sliced out without copying.
	// Earlier bytes are never rewritten, so the slices stay valid on growth.
	buf := make([]byte, 0, (col.Len()-col.NullN())*32)
	for i := range out {
		v, ok := col.Value(i)
		if !ok {
			continue
		}
		start := len(buf)
		switch col.Type() {
		case columnar.ColumnTypeDate:
			buf = dateText.AppendFormat(buf, strptime.FromEpochSeconds(v*86_400, 0), 0)
		case columnar.ColumnTypeTime:
			buf = timeText.AppendFormat(buf, strptime.FromEpochSeconds(v/1_000_000_000, int(v%1_000_000_000)), 0)
		default:
			sec, sub := v/perSecond, v%perSecond
			if sub < 0 {
				sec, sub = sec-1, sub+perSecond
			}
			nsec := int(sub * (1_000_000_000 / perSecond))
			if loc == nil {
				buf = naiveText.AppendFormat(buf, strptime.FromEpochSeconds(sec, nsec), 0)
			} else {
				_, off := time.Unix(sec, 0).In(loc).Zone()
				buf = zonedText.AppendFormat(buf, strptime.FromEpochSeconds(sec+int64(off), nsec), off)
			}
		}
		s := pstrings.BytesToString(buf[start:len(buf):len(buf)])
		out[i] = &s
	}
	return out, nil
}
