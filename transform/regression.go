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

// RegressionPlaces is the precision of the appended regression target.
const RegressionPlaces = 1

// Sampler draws from a normal distribution. *noise.Gaussian implements it.
type Sampler interface {
	Sample(mean, stddev float64) float64
}

// RegressionTarget derives the synthetic target of a regression row:
//
//	c1*X(0.01) + c2*X(2.6, 0.2) + c3*X(0.1) + c4*X(0.8) + c5*X(0.02) +
//	(n1+1)*n4*X(2, 0.1) + n2*X(0.2) + n3*X(0.1) + n5*X(0.3)
//
// where X(mean) has a standard deviation of mean/5. The nine samples are drawn
// in the order written.
func RegressionTarget(row core.Row, x Sampler) float64 {
	f := ParseFeatures(row, true)

	sum := f.C1 * normal(x, 0.01)
	sum += f.C2 * x.Sample(2.6, 0.2)
	sum += f.C3 * normal(x, 0.1)
	sum += f.C4 * normal(x, 0.8)
	sum += f.C5 * normal(x, 0.02)
	sum += (f.N1 + 1) * f.N4 * x.Sample(2, 0.1)
	sum += f.N2 * normal(x, 0.2)
	sum += f.N3 * normal(x, 0.1)
	sum += f.N5 * normal(x, 0.3)

	return Round(sum, RegressionPlaces)
}

func normal(x Sampler, mean float64) float64 {
	return x.Sample(mean, mean/5)
}

// NewRegression returns a transformer appending RegressionTarget to each row.
// The transformer owns x, including any sample it carries between rows.
func NewRegression(x Sampler) core.Transformer {
	return AppendFloat(func(row core.Row) float64 {
		return RegressionTarget(row, x)
	})
}
