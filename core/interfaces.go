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

package core

import (
	"context"
)

// Package core defines the core interfaces for the synthetl library.
//
// synthetl streams headerless CSV datasets through row transformers that append
// synthetic target columns, and exports the augmented data as typed examples.
//
// This file contains the primary interfaces for row sources, row sinks, record sinks and transformation.

// DataSource defines the interface for row extraction.
// Implementations stream rows from a source (e.g., a local CSV file, stdin, an S3 object).
type DataSource interface {
	// Read returns the next row or io.EOF when no more rows are available.
	Read(ctx context.Context) (Row, error)
	// Close releases any resources held by the data source.
	Close() error
}

// DataSink defines the interface for row loading.
type DataSink interface {
	// Write outputs a single row to the sink.
	Write(ctx context.Context, row Row) error
	// Flush ensures all buffered data is written to the sink.
	Flush() error
	// Close releases any resources held by the data sink.
	Close() error
}

// RecordSink defines the interface for writing typed records (e.g., JSON lines, Parquet).
type RecordSink interface {
	// Write outputs a single record to the sink.
	Write(ctx context.Context, record Record) error
	// Flush ensures all buffered data is written to the sink.
	Flush() error
	// Close releases any resources held by the sink.
	Close() error
}

// Transformer defines the interface for row transformation operations.
// Transformers derive new fields from a row as it passes through the pipeline.
type Transformer interface {
	// Transform applies the transformation to a row and returns the result.
	Transform(ctx context.Context, row Row) (Row, error)
}
