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

// Package noise provides the seeded random sources used to perturb synthetic targets.
//
// Every augmenter owns its source, so the sequence of draws is a pure function
// of the seed and the order in which rows are processed.
package noise

import "math/rand"

// DefaultSeed is the fixed seed both augmentation commands start from.
const DefaultSeed int64 = 100

// Uniform is the subset of *rand.Rand the augmenters draw from.
// Tests substitute scripted sources to pin exact values.
type Uniform interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewSource returns a deterministic uniform source for seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
