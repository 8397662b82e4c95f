package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	gojson "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/strtemporal/pkg/errors"
	"github.com/ajitpratap0/strtemporal/pkg/temporal"
)

const sampleCSV = `id,created,note
1,2021-01-01 10:00:00,foo
2,,bar
3,2021-10-31 01:30:00,baz
4,not a date,qux
`

func writeInput(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func gzipped(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, data []byte) []byte {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func lz4ed(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestCompressionFor(t *testing.T) {
	assert.Equal(t, Gzip, CompressionFor("a.csv.gz"))
	assert.Equal(t, Zstd, CompressionFor("a.csv.ZST"))
	assert.Equal(t, LZ4, CompressionFor("a.lz4"))
	assert.Equal(t, None, CompressionFor("a.csv"))
}

func TestReadCSVCompressed(t *testing.T) {
	inputs := map[string][]byte{
		"plain.csv":    []byte(sampleCSV),
		"data.csv.gz":  gzipped(t, []byte(sampleCSV)),
		"data.csv.zst": zstded(t, []byte(sampleCSV)),
		"data.csv.lz4": lz4ed(t, []byte(sampleCSV)),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
			defer mem.AssertSize(t, 0)

			cols, err := ReadCSV(context.Background(), writeInput(t, name, data), []string{"created", "note"}, mem)
			require.NoError(t, err)
			require.Len(t, cols, 2)
			defer cols[0].Release()
			defer cols[1].Release()

			assert.Equal(t, "created", cols[0].Name())
			assert.Equal(t, 4, cols[0].Len())
			assert.Equal(t, 1, cols[0].NullN())
			assert.Equal(t, "2021-01-01 10:00:00", cols[0].Value(0))
			assert.Equal(t, "qux", cols[1].Value(3))
		})
	}
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), []string{"a"}, nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))

	_, err = ReadCSV(context.Background(), writeInput(t, "x.csv", []byte(sampleCSV)), nil, nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestReadCSVMissingColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"with rows", sampleCSV},
		{"header only", "id,created,note\n"},
		{"header without newline", "id,created,note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeInput(t, "in.csv", []byte(tt.input))
			_, err := ReadCSV(context.Background(), path, []string{"created", "updated"}, nil)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeData))
			column, ok := errors.Detail(err, "column")
			require.True(t, ok)
			assert.Equal(t, "updated", column)
		})
	}

	_, err := ReadCSV(context.Background(), writeInput(t, "empty.csv", nil), []string{"created"}, nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func runSample(t *testing.T, opts temporal.Options) *Result {
	t.Helper()
	res, err := Run(context.Background(), Job{
		Input:   writeInput(t, "in.csv", []byte(sampleCSV)),
		Columns: []string{"created"},
		Kind:    temporal.KindDatetime,
		Options: opts,
	}, memory.NewGoAllocator())
	require.NoError(t, err)
	t.Cleanup(res.Release)
	return res
}

func TestRunConvertsColumns(t *testing.T) {
	res := runSample(t, temporal.Options{Format: "%Y-%m-%d %H:%M:%S", Timezone: "Europe/London", Ambiguous: temporal.Latest})

	col, ok := res.Store.Get("created")
	require.True(t, ok)
	assert.Equal(t, "Europe/London", col.TimeZone())
	assert.Equal(t, 4, res.Store.Rows())
	assert.Equal(t, 3, res.Stats.Values)
	assert.Equal(t, 2, res.Stats.Nulls)

	_, ok = col.Value(0)
	assert.True(t, ok)
	assert.True(t, col.IsNull(1))
	assert.True(t, col.IsNull(3))
}

func TestRunFailsWithoutFormat(t *testing.T) {
	_, err := Run(context.Background(), Job{
		Input:   writeInput(t, "in.csv", []byte("a,b\n,1\n,2\n")),
		Columns: []string{"a"},
		Kind:    temporal.KindDate,
	}, nil)
	assert.ErrorIs(t, err, temporal.ErrFormatUndeterminable)
	column, ok := errors.Detail(err, "column")
	require.True(t, ok)
	assert.Equal(t, "a", column)
}

func TestWriteJSON(t *testing.T) {
	res := runSample(t, temporal.Options{Format: "%Y-%m-%d %H:%M:%S", Unit: temporal.Milliseconds})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, OutputJSON, res.Store, nil))

	var got jsonOutput
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Columns, 1)
	c := got.Columns[0]
	assert.Equal(t, 4, got.Rows)
	assert.Equal(t, "created", c.Name)
	assert.Equal(t, "ms", c.Unit)
	require.NotNil(t, c.Values[0])
	assert.Equal(t, int64(1_609_495_200_000), *c.Values[0])
	require.NotNil(t, c.Text[0])
	assert.Equal(t, "2021-01-01T10:00:00", *c.Text[0])
	assert.Nil(t, c.Text[1])
}

func TestRenderZoned(t *testing.T) {
	res := runSample(t, temporal.Options{Format: "%Y-%m-%d %H:%M:%S", Timezone: "Europe/London"})
	col, _ := res.Store.Get("created")

	text, err := render(col)
	require.NoError(t, err)
	assert.Equal(t, "2021-01-01T10:00:00+00:00", *text[0])
	assert.Equal(t, "2021-10-31T01:30:00+01:00", *text[2])
}

func TestWriteArrow(t *testing.T) {
	res := runSample(t, temporal.Options{Format: "%Y-%m-%d %H:%M:%S"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, OutputArrow, res.Store, nil))

	r, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, 1, r.NumRecords())
	rec, err := r.Record(0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), rec.NumRows())
	assert.Equal(t, "created", rec.ColumnName(0))
}

func TestWriteParquet(t *testing.T) {
	res := runSample(t, temporal.Options{Format: "%Y-%m-%d %H:%M:%S", Unit: temporal.Microseconds})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, OutputParquet, res.Store, nil))

	mem := memory.NewGoAllocator()
	tbl, err := pqarrow.ReadTable(context.Background(), bytes.NewReader(buf.Bytes()),
		parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	require.NoError(t, err)
	defer tbl.Release()
	assert.Equal(t, int64(4), tbl.NumRows())
	assert.Equal(t, "created", tbl.Schema().Field(0).Name)
}

func TestCreateOutputCompressesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json.gz")
	w, err := CreateOutput(path, OutputJSON)
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"rows":0}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := openInput(path)
	require.NoError(t, err)
	defer r.Close()
	var got jsonOutput
	require.NoError(t, gojson.NewDecoder(r).Decode(&got))
	assert.Equal(t, 0, got.Rows)
}

func TestSniff(t *testing.T) {
	path := writeInput(t, "in.csv", []byte(sampleCSV))
	res, err := Sniff(context.Background(), path, []string{"created", "note"}, temporal.KindDatetime, nil)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.True(t, res[0].Found)
	assert.Equal(t, "%Y-%m-%d %H:%M:%S%.f", res[0].Format)
	assert.False(t, res[1].Found)
	assert.Equal(t, "foo", res[1].Sample)
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("IPC")
	require.NoError(t, err)
	assert.Equal(t, OutputArrow, f)
	_, err = ParseOutputFormat("xml")
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}
