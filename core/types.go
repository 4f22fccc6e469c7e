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

import "context"

// Package core defines the core types for the synthetl library.
//
// This file contains the row and record types and function adapters.

// Row represents a single headerless CSV row in the pipeline.
// Fields keep their input order; the augmenters address them by index.
type Row []string

// Len returns the number of fields in the row.
func (r Row) Len() int {
	return len(r)
}

// Field returns the text of field i, or "" when the row is shorter than i+1.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Append returns a copy of the row with the given fields added at the end.
// The receiver is never modified, so readers may reuse their buffers.
func (r Row) Append(fields ...string) Row {
	out := make(Row, 0, len(r)+len(fields))
	out = append(out, r...)
	return append(out, fields...)
}

// Record represents a single typed example.
// Each record is a map from feature names to values (string for categorical, float64 for numerical).
type Record map[string]interface{}

// TransformFunc is a function adapter for the Transformer interface.
// Allows ordinary functions to be used as Transformers.
type TransformFunc func(ctx context.Context, row Row) (Row, error)

// Transform implements the Transformer interface for TransformFunc.
func (f TransformFunc) Transform(ctx context.Context, row Row) (Row, error) {
	return f(ctx, row)
}
