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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/apache/arrow/go/v12/parquet"
	"github.com/apache/arrow/go/v12/parquet/compress"
	"github.com/apache/arrow/go/v12/parquet/pqarrow"

	"github.com/aaronlmathis/synthetl/core"
)

// Package writers provides the row and record sinks used by synthetl.
//
// This file implements a batching Parquet writer for typed examples. The
// Arrow schema is fixed up front, so every batch has identical columns.

// ParquetWriterError wraps Parquet-specific write errors with context about the operation.
type ParquetWriterError struct {
	Op  string // Operation that failed (e.g., "open_file", "append_value", "write_batch")
	Err error  // Underlying error
}

// Error returns the error string for ParquetWriterError.
func (e *ParquetWriterError) Error() string {
	return fmt.Sprintf("parquet writer %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for ParquetWriterError.
func (e *ParquetWriterError) Unwrap() error {
	return e.Err
}

// ParquetWriterOptions configures the Parquet writer.
type ParquetWriterOptions struct {
	BatchSize    int64                // Number of records to buffer before writing
	Compression  compress.Compression // Compression algorithm
	RowGroupSize int64                // Maximum rows per row group
}

// WriterStats holds statistics about the Parquet writer's performance.
type WriterStats struct {
	RecordsWritten  int64
	BatchesWritten  int64
	FlushDuration   time.Duration
	LastFlushTime   time.Time
	NullValueCounts map[string]int64
}

// WriterOption represents a configuration function for ParquetWriterOptions.
type WriterOption func(*ParquetWriterOptions)

// WithBatchSize sets the number of records to buffer before writing a batch.
func WithBatchSize(size int64) WriterOption {
	return func(opts *ParquetWriterOptions) {
		opts.BatchSize = size
	}
}

// WithCompression sets the compression codec.
func WithCompression(compression compress.Compression) WriterOption {
	return func(opts *ParquetWriterOptions) {
		opts.Compression = compression
	}
}

// WithRowGroupSize sets the maximum number of rows per row group.
func WithRowGroupSize(size int64) WriterOption {
	return func(opts *ParquetWriterOptions) {
		opts.RowGroupSize = size
	}
}

// ParquetWriter implements core.RecordSink for Parquet files.
// Supported column types are utf8, float64, int64 and bool.
type ParquetWriter struct {
	writer       *pqarrow.FileWriter
	schema       *arrow.Schema
	builders     []array.Builder
	recordBuffer []core.Record
	stats        WriterStats
	opts         ParquetWriterOptions
	closed       bool
	errorState   bool
}

// NewParquetWriter creates filename (and its parent directories) and
// prepares a writer for schema.
func NewParquetWriter(filename string, schema *arrow.Schema, options ...WriterOption) (*ParquetWriter, error) {
	if schema == nil {
		return nil, &ParquetWriterError{Op: "schema", Err: fmt.Errorf("schema is required")}
	}

	opts := ParquetWriterOptions{
		BatchSize:    1000,
		Compression:  compress.Codecs.Snappy,
		RowGroupSize: 10000,
	}
	for _, option := range options {
		option(&opts)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}

	allocator := memory.NewGoAllocator()
	builders := make([]array.Builder, len(schema.Fields()))
	for i, field := range schema.Fields() {
		switch field.Type.ID() {
		case arrow.STRING, arrow.FLOAT64, arrow.INT64, arrow.BOOL:
			builders[i] = array.NewBuilder(allocator, field.Type)
		default:
			return nil, &ParquetWriterError{
				Op:  "schema",
				Err: fmt.Errorf("unsupported type %s for field %s", field.Type, field.Name),
			}
		}
	}

	if dir := filepath.Dir(filename); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &ParquetWriterError{
				Op:  "create_directory",
				Err: fmt.Errorf("failed to create directory %s: %w", dir, err),
			}
		}
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, &ParquetWriterError{
			Op:  "open_file",
			Err: fmt.Errorf("failed to create parquet file %s: %w", filename, err),
		}
	}

	props := parquet.NewWriterProperties(
		parquet.WithCompression(opts.Compression),
		parquet.WithMaxRowGroupLength(opts.RowGroupSize),
	)
	writer, err := pqarrow.NewFileWriter(schema, file, props, pqarrow.DefaultWriterProps())
	if err != nil {
		file.Close()
		return nil, &ParquetWriterError{
			Op:  "create_writer",
			Err: fmt.Errorf("failed to create parquet file writer: %w", err),
		}
	}

	return &ParquetWriter{
		writer:       writer,
		schema:       schema,
		builders:     builders,
		recordBuffer: make([]core.Record, 0, opts.BatchSize),
		stats:        WriterStats{NullValueCounts: make(map[string]int64)},
		opts:         opts,
	}, nil
}

// Stats returns the current statistics of the Parquet writer.
func (p *ParquetWriter) Stats() WriterStats {
	return p.stats
}

// Write implements the core.RecordSink interface. Records are buffered and
// written in batches of BatchSize.
func (p *ParquetWriter) Write(ctx context.Context, record core.Record) error {
	if p.closed {
		return &ParquetWriterError{Op: "write", Err: fmt.Errorf("parquet writer is closed")}
	}
	if p.errorState {
		return &ParquetWriterError{Op: "write", Err: fmt.Errorf("writer is in error state")}
	}

	p.recordBuffer = append(p.recordBuffer, record)
	p.stats.RecordsWritten++

	if int64(len(p.recordBuffer)) >= p.opts.BatchSize {
		if err := p.flushBatch(); err != nil {
			p.errorState = true
			return err
		}
	}
	return nil
}

// Flush implements the core.RecordSink interface.
func (p *ParquetWriter) Flush() error {
	if p.closed || len(p.recordBuffer) == 0 {
		return nil
	}
	if err := p.flushBatch(); err != nil {
		p.errorState = true
		return err
	}
	return nil
}

// Close implements the core.RecordSink interface.
// It flushes remaining records, writes the footer and closes the file.
func (p *ParquetWriter) Close() error {
	if p.closed {
		return nil
	}

	flushErr := p.Flush()
	p.closed = true

	for _, builder := range p.builders {
		builder.Release()
	}
	p.builders = nil

	if err := p.writer.Close(); err != nil {
		return &ParquetWriterError{
			Op:  "close_writer",
			Err: fmt.Errorf("failed to close parquet writer: %w", err),
		}
	}
	return flushErr
}

// flushBatch writes the current buffer as one Arrow record.
func (p *ParquetWriter) flushBatch() error {
	start := time.Now()

	record, err := p.createArrowRecord(p.recordBuffer)
	if err != nil {
		return err
	}
	defer record.Release()

	if err := p.writer.Write(record); err != nil {
		return &ParquetWriterError{
			Op:  "write_batch",
			Err: fmt.Errorf("failed to write record batch: %w", err),
		}
	}

	p.stats.BatchesWritten++
	p.stats.FlushDuration += time.Since(start)
	p.stats.LastFlushTime = time.Now()
	p.recordBuffer = p.recordBuffer[:0]
	return nil
}

// createArrowRecord converts buffered records to an Arrow record in schema order.
func (p *ParquetWriter) createArrowRecord(records []core.Record) (arrow.Record, error) {
	fields := p.schema.Fields()
	for _, record := range records {
		for i, field := range fields {
			value, ok := record[field.Name]
			if !ok || value == nil {
				p.builders[i].AppendNull()
				p.stats.NullValueCounts[field.Name]++
				continue
			}
			if err := appendValue(p.builders[i], value); err != nil {
				// Leave the builders consistent for the error path.
				for _, b := range p.builders {
					b.NewArray().Release()
				}
				return nil, &ParquetWriterError{
					Op:  "append_value",
					Err: fmt.Errorf("field %s: %w", field.Name, err),
				}
			}
		}
	}

	arrays := make([]arrow.Array, len(p.builders))
	for i, builder := range p.builders {
		arrays[i] = builder.NewArray()
		defer arrays[i].Release()
	}
	return array.NewRecord(p.schema, arrays, int64(len(records))), nil
}

// appendValue appends value to the builder of the matching Arrow type.
func appendValue(builder array.Builder, value interface{}) error {
	switch b := builder.(type) {
	case *array.StringBuilder:
		if v, ok := value.(string); ok {
			b.Append(v)
			return nil
		}
	case *array.Float64Builder:
		switch v := value.(type) {
		case float64:
			b.Append(v)
			return nil
		case int64:
			b.Append(float64(v))
			return nil
		case int:
			b.Append(float64(v))
			return nil
		}
	case *array.Int64Builder:
		switch v := value.(type) {
		case int64:
			b.Append(v)
			return nil
		case int:
			b.Append(int64(v))
			return nil
		}
	case *array.BooleanBuilder:
		if v, ok := value.(bool); ok {
			b.Append(v)
			return nil
		}
	}
	return fmt.Errorf("cannot append %T to %T", value, builder)
}
