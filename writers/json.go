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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aaronlmathis/synthetl/core"
)

// JSONWriter implements core.RecordSink for JSON lines files
type JSONWriter struct {
	writer  *bufio.Writer
	closer  io.Closer
	written int64
}

// NewJSONWriter creates a new JSON writer for line-delimited JSON output
func NewJSONWriter(w io.WriteCloser) *JSONWriter {
	return &JSONWriter{
		writer: bufio.NewWriter(w),
		closer: w,
	}
}

// Write implements the core.RecordSink interface.
// Keys are written in sorted order, so equal records give equal lines.
func (j *JSONWriter) Write(ctx context.Context, record core.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record to JSON: %w", err)
	}

	if _, err := j.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON data: %w", err)
	}

	if err := j.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	j.written++
	return nil
}

// Flush implements the core.RecordSink interface
func (j *JSONWriter) Flush() error {
	return j.writer.Flush()
}

// Close implements the core.RecordSink interface
func (j *JSONWriter) Close() error {
	if err := j.Flush(); err != nil {
		return err
	}
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}

// Abort discards buffered output. When the underlying writer implements
// Aborter it is aborted instead of closed, so nothing is published.
func (j *JSONWriter) Abort() error {
	j.writer.Reset(io.Discard)
	if a, ok := j.closer.(Aborter); ok {
		return a.Abort()
	}
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}

// RecordsWritten returns the number of records written so far.
func (j *JSONWriter) RecordsWritten() int64 {
	return j.written
}
