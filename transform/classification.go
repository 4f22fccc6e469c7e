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
	"github.com/aaronlmathis/synthetl/core"
	"github.com/aaronlmathis/synthetl/noise"
)

// ClassificationPlaces is the precision of the appended classification score.
const ClassificationPlaces = 2

// ClassificationScore derives the synthetic score of a classification row.
//
// The score starts at 1 for rows labelled "c1" and 3 otherwise. Each of
// c1..c5 adds draw/(c+0.1) with one uniform draw per column, in column order;
// each of n1..n5 adds its value. Exactly five values are drawn from src.
func ClassificationScore(row core.Row, src noise.Uniform) float64 {
	f := ParseFeatures(row, false)

	score := 3.0
	if row.Field(LabelColumn) == PositiveLabel {
		score = 1.0
	}
	for _, c := range f.Categorical() {
		score += src.Float64() / (c + 0.1)
	}
	for _, n := range f.Numerical() {
		score += n
	}
	return Round(score, ClassificationPlaces)
}

// NewClassification returns a transformer appending ClassificationScore to each row.
// The transformer owns src; rows must be fed in input order for reproducible output.
func NewClassification(src noise.Uniform) core.Transformer {
	return AppendFloat(func(row core.Row) float64 {
		return ClassificationScore(row, src)
	})
}
