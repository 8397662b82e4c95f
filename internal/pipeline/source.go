package pipeline

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/strtemporal/pkg/columnar"
	"github.com/ajitpratap0/strtemporal/pkg/errors"
)

// DefaultChunkSize is the number of CSV rows decoded per record batch.
const DefaultChunkSize = 8192

// ReadCSV reads the named columns of the CSV file at path as strings. Empty
// fields are null. Inputs ending in .gz, .zst or .lz4 are decompressed.
func ReadCSV(ctx context.Context, path string, columns []string, mem memory.Allocator) ([]*columnar.ArrowStrings, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readCSV(ctx, r, columns, mem)
}

func readCSV(ctx context.Context, r io.Reader, columns []string, mem memory.Allocator) ([]*columnar.ArrowStrings, error) {
	if len(columns) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "no columns requested")
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	r, err := checkHeader(r, columns)
	if err != nil {
		return nil, err
	}

	types := make(map[string]arrow.DataType, len(columns))
	for _, name := range columns {
		types[name] = arrow.BinaryTypes.String
	}
	reader := csv.NewInferringReader(r,
		csv.WithAllocator(mem),
		csv.WithHeader(true),
		csv.WithChunk(DefaultChunkSize),
		csv.WithIncludeColumns(columns),
		csv.WithColumnTypes(types),
		csv.WithNullReader(true, ""),
	)
	defer reader.Release()

	chunks := make([][]arrow.Array, len(columns))
	defer func() {
		for _, cs := range chunks {
			for _, c := range cs {
				c.Release()
			}
		}
	}()

	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := reader.Record()
		for i, name := range columns {
			idx := rec.Schema().FieldIndices(name)
			if len(idx) == 0 {
				return nil, errors.New(errors.ErrorTypeData, "column not found in input").WithDetail("column", name)
			}
			col := rec.Column(idx[0])
			col.Retain()
			chunks[i] = append(chunks[i], col)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read CSV")
	}

	out := make([]*columnar.ArrowStrings, 0, len(columns))
	for i, name := range columns {
		col, err := concatStrings(name, chunks[i], mem)
		if err != nil {
			for _, c := range out {
				c.Release()
			}
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

// checkHeader reads the header record and fails when a requested column is
// absent. The returned reader replays the header in front of the data.
func checkHeader(r io.Reader, columns []string) (io.Reader, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read CSV header")
	}
	if strings.TrimSpace(line) == "" {
		return nil, errors.New(errors.ErrorTypeData, "CSV input has no header")
	}
	header, err := stdcsv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse CSV header")
	}

	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}
	for _, name := range columns {
		if _, ok := present[name]; !ok {
			return nil, errors.New(errors.ErrorTypeData, "column not found in input").
				WithDetail("column", name).
				WithDetail("header", strings.Join(header, ","))
		}
	}
	return io.MultiReader(strings.NewReader(line), br), nil
}

func concatStrings(name string, chunks []arrow.Array, mem memory.Allocator) (*columnar.ArrowStrings, error) {
	if len(chunks) == 0 {
		empty := columnar.NewStringColumn(mem, name, nil, nil)
		return empty, nil
	}
	arr, err := array.Concatenate(chunks, mem)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to concatenate column").WithDetail("column", name)
	}
	defer arr.Release()

	col, ok := columnar.StringColumnFromArray(name, arr)
	if !ok {
		return nil, errors.New(errors.ErrorTypeData, "column is not text").
			WithDetail("column", name).
			WithDetail("type", arr.DataType().String())
	}
	return col, nil
}
