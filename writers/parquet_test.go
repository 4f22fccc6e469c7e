//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of synthetl.
//
// synthetl is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// synthetl is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with synthetl. If not, see https://www.gnu.org/licenses/.

package writers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/apache/arrow/go/v12/parquet/compress"
	"github.com/apache/arrow/go/v12/parquet/file"
	"github.com/apache/arrow/go/v12/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/synthetl/core"
)

func testSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "c1", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "n1", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "target", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)
}

func readParquet(t *testing.T, filename string) arrow.Table {
	t.Helper()

	reader, err := file.OpenParquetFile(filename, false)
	require.NoError(t, err)
	t.Cleanup(func() { reader.Close() })

	arrowReader, err := pqarrow.NewFileReader(reader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	require.NoError(t, err)

	table, err := arrowReader.ReadTable(context.Background())
	require.NoError(t, err)
	t.Cleanup(table.Release)
	return table
}

// TestParquetWriter_RoundTrip writes typed records and reads them back
func TestParquetWriter_RoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out", "bigdata.parquet")

	writer, err := NewParquetWriter(filename, testSchema(),
		WithBatchSize(2),
		WithCompression(compress.Codecs.Snappy),
	)
	require.NoError(t, err)

	records := []core.Record{
		{"c1": "v1", "n1": 1.5, "target": 16.5},
		{"c1": "v2", "target": 7.0},
		{"c1": "v3", "n1": int64(3), "target": 9.25},
	}
	ctx := context.Background()
	for _, record := range records {
		require.NoError(t, writer.Write(ctx, record))
	}
	require.NoError(t, writer.Close())

	stats := writer.Stats()
	assert.Equal(t, int64(3), stats.RecordsWritten)
	assert.Equal(t, int64(2), stats.BatchesWritten)
	assert.Equal(t, int64(1), stats.NullValueCounts["n1"])

	table := readParquet(t, filename)
	require.Equal(t, int64(3), table.NumRows())
	require.Equal(t, int64(3), table.NumCols())

	var c1 []string
	var targets []float64
	for _, chunk := range table.Column(0).Data().Chunks() {
		col := chunk.(*array.String)
		for i := 0; i < col.Len(); i++ {
			c1 = append(c1, col.Value(i))
		}
	}
	for _, chunk := range table.Column(2).Data().Chunks() {
		col := chunk.(*array.Float64)
		targets = append(targets, col.Float64Values()...)
	}
	assert.Equal(t, []string{"v1", "v2", "v3"}, c1)
	assert.Equal(t, []float64{16.5, 7.0, 9.25}, targets)
	assert.Equal(t, 1, table.Column(1).Data().NullN())
}

// TestParquetWriter_Empty writes a valid file with no rows
func TestParquetWriter_Empty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.parquet")

	writer, err := NewParquetWriter(filename, testSchema())
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close())

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, int64(0), readParquet(t, filename).NumRows())
}

// TestParquetWriter_TypeMismatch tests that a bad value fails the batch
func TestParquetWriter_TypeMismatch(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.parquet")

	writer, err := NewParquetWriter(filename, testSchema(), WithBatchSize(1))
	require.NoError(t, err)
	defer writer.Close()

	err = writer.Write(context.Background(), core.Record{"c1": 12.0})
	var pqErr *ParquetWriterError
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, "append_value", pqErr.Op)

	err = writer.Write(context.Background(), core.Record{"c1": "v1"})
	assert.ErrorContains(t, err, "error state")
}

// TestNewParquetWriter_Validation tests schema requirements
func TestNewParquetWriter_Validation(t *testing.T) {
	dir := t.TempDir()

	_, err := NewParquetWriter(filepath.Join(dir, "a.parquet"), nil)
	assert.Error(t, err)

	schema := arrow.NewSchema([]arrow.Field{{Name: "ts", Type: arrow.FixedWidthTypes.Timestamp_us}}, nil)
	_, err = NewParquetWriter(filepath.Join(dir, "b.parquet"), schema)
	assert.ErrorContains(t, err, "unsupported type")
}
