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
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the longest decimal number at the start of a field.
// Single underscores may separate digits, as in "1_000".
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:_\d+)*(?:\.\d+(?:_\d+)*)?|\.\d+(?:_\d+)*)(?:[eE][+-]?\d+(?:_\d+)*)?`)

// StripV removes every literal 'v' from s. Categorical levels are written as
// "v1".."v5" and are read back as their level number.
func StripV(s string) string {
	return strings.ReplaceAll(s, "v", "")
}

// ParseFloat converts field text to a number leniently.
//
// Surrounding whitespace is ignored and the longest leading decimal number is
// used, so "3.5kg" is 3.5. Text without a leading number, including the empty
// string, is 0. Values too large for a float64 are ±Inf.
func ParseFloat(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, "_", ""), 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseLevel is ParseFloat after StripV.
func ParseLevel(s string) float64 {
	return ParseFloat(StripV(s))
}
