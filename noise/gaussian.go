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

package noise

import "math"

// Gaussian draws normally distributed samples using the polar (Marsaglia) method.
//
// Samples are generated in pairs. The second sample of a pair is carried and
// returned, shifted and scaled by its own mean and standard deviation, on the
// next call without consuming uniform draws. A Gaussian is not safe for
// concurrent use.
type Gaussian struct {
	src      Uniform
	carry    float64
	hasCarry bool
}

// NewGaussian returns a sampler drawing uniforms from src, starting with no carry.
func NewGaussian(src Uniform) *Gaussian {
	return &Gaussian{src: src}
}

// Sample returns one draw from N(mean, stddev²).
func (g *Gaussian) Sample(mean, stddev float64) float64 {
	if g.hasCarry {
		y := g.carry
		g.carry, g.hasCarry = 0, false
		return mean + y*stddev
	}

	var x1, x2 float64
	w := 1.0
	for w >= 1.0 {
		x1 = 2.0*g.src.Float64() - 1.0
		x2 = 2.0*g.src.Float64() - 1.0
		w = x1*x1 + x2*x2
	}
	w = math.Sqrt((-2.0 * math.Log(w)) / w)

	g.carry, g.hasCarry = x2*w, true
	return mean + x1*w*stddev
}

// Normal is Sample with the standard deviation defaulted to mean/5.
func (g *Gaussian) Normal(mean float64) float64 {
	return g.Sample(mean, mean/5)
}

// Pending reports whether a carried sample will be returned by the next call.
func (g *Gaussian) Pending() bool {
	return g.hasCarry
}
