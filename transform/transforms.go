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

package transform

import (
	"context"
	"strings"

	"github.com/aaronlmathis/synthetl/core"
)

// Package transform provides the row transformers used by synthetl pipelines.
//
// This package includes the append-style transformers, lenient text-to-number coercion,
// and the classification and regression augmenters built on them.
// All constructors return core.Transformer implementations for use in pipelines.

// AppendField creates a transformer that appends a computed field to each row.
// The value is computed by the provided function, which receives the current row.
func AppendField(fn func(core.Row) string) core.Transformer {
	return core.TransformFunc(func(ctx context.Context, row core.Row) (core.Row, error) {
		return row.Append(fn(row)), nil
	})
}

// AppendFloat creates a transformer that appends a computed number to each row,
// formatted with FormatFloat.
func AppendFloat(fn func(core.Row) float64) core.Transformer {
	return AppendField(func(row core.Row) string {
		return FormatFloat(fn(row))
	})
}

// TrimSpace creates a transformer that trims whitespace from the fields at the given indices.
// Indices past the end of a row are ignored.
func TrimSpace(indices ...int) core.Transformer {
	return core.TransformFunc(func(ctx context.Context, row core.Row) (core.Row, error) {
		result := row.Append()
		for _, i := range indices {
			if i >= 0 && i < result.Len() {
				result[i] = strings.TrimSpace(result[i])
			}
		}
		return result, nil
	})
}
