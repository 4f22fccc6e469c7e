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

import "github.com/aaronlmathis/synthetl/core"

const (
	// FeatureColumns is the number of leading columns the augmenters read.
	FeatureColumns = 10
	// LabelColumn holds the class label of a classification row.
	LabelColumn = 10
	// PositiveLabel is the label that lowers the classification base score.
	PositiveLabel = "c1"
)

// Features is the numeric view of the ten leading columns of a row:
// c1..c5 at indices 0-4 and n1..n5 at indices 5-9.
type Features struct {
	C1, C2, C3, C4, C5 float64
	N1, N2, N3, N4, N5 float64
}

// ParseFeatures coerces the leading columns of row. The c columns always have
// 'v' stripped; the n columns only when stripNumerical is set. Missing columns
// read as 0.
func ParseFeatures(row core.Row, stripNumerical bool) Features {
	n := ParseFloat
	if stripNumerical {
		n = ParseLevel
	}
	return Features{
		C1: ParseLevel(row.Field(0)),
		C2: ParseLevel(row.Field(1)),
		C3: ParseLevel(row.Field(2)),
		C4: ParseLevel(row.Field(3)),
		C5: ParseLevel(row.Field(4)),
		N1: n(row.Field(5)),
		N2: n(row.Field(6)),
		N3: n(row.Field(7)),
		N4: n(row.Field(8)),
		N5: n(row.Field(9)),
	}
}

// Categorical returns c1..c5 in column order.
func (f Features) Categorical() [5]float64 {
	return [5]float64{f.C1, f.C2, f.C3, f.C4, f.C5}
}

// Numerical returns n1..n5 in column order.
func (f Features) Numerical() [5]float64 {
	return [5]float64{f.N1, f.N2, f.N3, f.N4, f.N5}
}
