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

package synthetl

import (
	"github.com/aaronlmathis/synthetl/core"
	"github.com/aaronlmathis/synthetl/noise"
	"github.com/aaronlmathis/synthetl/transform"
)

// Classify returns a builder that appends a classification score to every
// row read from source. Uniform draws come from a source seeded with seed.
func Classify(source core.DataSource, sink core.DataSink, seed int64) *PipelineBuilder {
	return NewPipeline().
		From(source).
		Transform(transform.NewClassification(noise.NewSource(seed))).
		To(sink)
}

// Regress returns a builder that appends a regression target to every row
// read from source. Gaussian samples come from a source seeded with seed.
func Regress(source core.DataSource, sink core.DataSink, seed int64) *PipelineBuilder {
	return NewPipeline().
		From(source).
		Transform(transform.NewRegression(noise.NewGaussian(noise.NewSource(seed)))).
		To(sink)
}
