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
	"math"
	"strconv"
	"strings"
)

// Round rounds x half away from zero to the given number of decimal places.
//
// Values whose decimal form lies on a midpoint round away from zero even when
// x*10^places lands just below it, so Round(2.675, 2) is 2.68.
func Round(x float64, places int) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	p := math.Pow10(places)
	f := math.Round(x * p)
	switch {
	case x > 0 && (f+0.5)/p <= x:
		f++
	case x < 0 && (f-0.5)/p >= x:
		f--
	}
	return f / p
}

// FormatFloat renders x in its shortest form with at least one fractional
// digit, so 3 is written "3.0" and 12.50 is written "12.5". Magnitudes of
// 1e16 and above, or below 1e-4, use exponent form: "1.0e+21", "2.5e-05".
func FormatFloat(x float64) string {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	if abs := math.Abs(x); abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		s := strconv.FormatFloat(x, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		if !strings.ContainsRune(mantissa, '.') {
			mantissa += ".0"
		}
		return mantissa + "e" + exp
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
