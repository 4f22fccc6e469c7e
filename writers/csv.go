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
	"encoding/csv"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aaronlmathis/synthetl/core"
)

// CSVWriterError wraps CSV-specific write errors with context.
type CSVWriterError struct {
	Op  string
	Err error
}

func (e *CSVWriterError) Error() string {
	return fmt.Sprintf("csv writer %s: %v", e.Op, e.Err)
}

func (e *CSVWriterError) Unwrap() error {
	return e.Err
}

// CSVWriterStats holds CSV write performance statistics.
type CSVWriterStats struct {
	RecordsWritten int64
	FlushCount     int64
	FlushDuration  time.Duration
	LastFlushTime  time.Time
}

// CSVWriterOptions configures CSV output.
type CSVWriterOptions struct {
	Comma     rune
	UseCRLF   bool
	BatchSize int
}

// WriterOptionCSV is a functional option.
type WriterOptionCSV func(*CSVWriterOptions)

func WithComma(delim rune) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.Comma = delim
	}
}

func WithCSVBatchSize(size int) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.BatchSize = size
	}
}

func WithUseCRLF(useCRLF bool) WriterOptionCSV {
	return func(opts *CSVWriterOptions) {
		opts.UseCRLF = useCRLF
	}
}

// CSVWriter implements DataSink for headerless CSV output with stats and batching.
type CSVWriter struct {
	writer     *csv.Writer
	closer     io.Closer
	options    CSVWriterOptions
	rowBuf     []core.Row
	stats      CSVWriterStats
	errorState bool
	closed     bool
	mu         sync.Mutex
}

// NewCSVWriter creates a new CSV writer with extended options.
// Rows are buffered until BatchSize rows are pending or Flush is called;
// a BatchSize of zero buffers until Flush.
func NewCSVWriter(w io.WriteCloser, opts ...WriterOptionCSV) (*CSVWriter, error) {
	options := CSVWriterOptions{
		Comma:     ',',
		UseCRLF:   false,
		BatchSize: 1000,
	}

	for _, opt := range opts {
		opt(&options)
	}

	cw := csv.NewWriter(w)
	cw.Comma = options.Comma
	cw.UseCRLF = options.UseCRLF

	return &CSVWriter{
		writer:  cw,
		closer:  w,
		options: options,
		rowBuf:  make([]core.Row, 0, max(options.BatchSize, 1)),
	}, nil
}

// Write implements the DataSink interface.
func (c *CSVWriter) Write(ctx context.Context, row core.Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return &CSVWriterError{Op: "write", Err: fmt.Errorf("writer is closed")}
	}
	if c.errorState {
		return &CSVWriterError{Op: "write", Err: fmt.Errorf("writer is in error state")}
	}

	c.rowBuf = append(c.rowBuf, row)
	c.stats.RecordsWritten++

	if c.options.BatchSize > 0 && len(c.rowBuf) >= c.options.BatchSize {
		if err := c.flushBufferUnsafe(); err != nil {
			c.errorState = true
			return &CSVWriterError{Op: "flush_batch", Err: err}
		}
	}

	return nil
}

// Flush implements the DataSink interface.
func (c *CSVWriter) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.flushBufferUnsafe(); err != nil {
		c.errorState = true
		return &CSVWriterError{Op: "flush", Err: err}
	}
	return nil
}

// Close implements the DataSink interface. The underlying writer is closed
// even when the final flush fails. Closing twice is a no-op.
func (c *CSVWriter) Close() error {
	flushErr := c.Flush()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	if c.closer != nil {
		if err := c.closer.Close(); err != nil && flushErr == nil {
			return &CSVWriterError{Op: "close", Err: err}
		}
	}
	return flushErr
}

// flushBufferUnsafe writes buffered rows to CSV (must hold mutex).
func (c *CSVWriter) flushBufferUnsafe() error {
	if len(c.rowBuf) == 0 {
		return nil
	}

	start := time.Now()

	for _, row := range c.rowBuf {
		if err := c.writer.Write(row); err != nil {
			return &CSVWriterError{
				Op:  "write_row",
				Err: fmt.Errorf("failed to write CSV row: %w", err),
			}
		}
	}

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return &CSVWriterError{
			Op:  "csv_flush",
			Err: fmt.Errorf("CSV writer flush error: %w", err),
		}
	}

	c.stats.FlushCount++
	c.stats.LastFlushTime = time.Now()
	c.stats.FlushDuration += time.Since(start)
	c.rowBuf = c.rowBuf[:0]

	return nil
}

// Stats returns write statistics.
func (c *CSVWriter) Stats() CSVWriterStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
