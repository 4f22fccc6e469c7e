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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/synthetl/core"
	"github.com/aaronlmathis/synthetl/noise"
)

// constant always returns the same uniform value.
type constant float64

func (c constant) Float64() float64 { return float64(c) }

// counting counts the draws taken from a uniform source.
type counting struct {
	src   noise.Uniform
	draws int64
}

func (c *counting) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

// meanSampler returns the requested mean and records each request.
type meanSampler struct {
	calls [][2]float64
}

func (m *meanSampler) Sample(mean, stddev float64) float64 {
	m.calls = append(m.calls, [2]float64{mean, stddev})
	return mean
}

var exampleRow = core.Row{"v2", "v3", "v4", "v5", "v6", "1", "2", "3", "4", "c1"}

func TestParseFeatures(t *testing.T) {
	row := core.Row{"v1", "v2", "v3", "v4", "v5", "v1", "2", "x", "4.5", "5"}

	f := ParseFeatures(row, false)
	assert.Equal(t, [5]float64{1, 2, 3, 4, 5}, f.Categorical())
	assert.Equal(t, [5]float64{0, 2, 0, 4.5, 5}, f.Numerical())

	f = ParseFeatures(row, true)
	assert.Equal(t, 1.0, f.N1)

	f = ParseFeatures(core.Row{"v1"}, true)
	assert.Equal(t, Features{C1: 1}, f)
}

func TestClassificationScore_ScriptedSource(t *testing.T) {
	// The label sits at index 10; this ten-field row has none, so the base is 3
	// and "c1" in the n5 column reads as 0.
	// 3 + 0.5*(1/2.1 + 1/3.1 + 1/4.1 + 1/5.1 + 1/6.1) + 10 = 13.7013...
	assert.Equal(t, 13.7, ClassificationScore(exampleRow, constant(0.5)))

	// 1 + 0.25*(1/1.1 + 1/2.1 + 1/3.1 + 1/4.1 + 1/5.1) + 12.5 = 14.0369...
	row := core.Row{"v1", "v2", "v3", "v4", "v5", "1.5", "2", "x", "4", "5", "c1"}
	assert.Equal(t, 14.04, ClassificationScore(row, constant(0.25)))
}

func TestClassificationScore_Label(t *testing.T) {
	base := core.Row{"v1", "v1", "v1", "v1", "v1", "0", "0", "0", "0", "0"}

	assert.Equal(t, 1.0, ClassificationScore(base.Append("c1"), constant(0)))
	assert.Equal(t, 3.0, ClassificationScore(base.Append("c2"), constant(0)))
	assert.Equal(t, 3.0, ClassificationScore(base.Append("C1"), constant(0)))
}

func TestClassificationScore_FiveDrawsPerRow(t *testing.T) {
	src := &counting{src: noise.NewSource(noise.DefaultSeed)}

	for i := 1; i <= 3; i++ {
		ClassificationScore(exampleRow, src)
		assert.Equal(t, int64(5*i), src.draws)
	}
}

func TestClassificationScore_SeededReplay(t *testing.T) {
	src := noise.NewSource(noise.DefaultSeed)
	replay := noise.NewSource(noise.DefaultSeed)

	for i := 0; i < 3; i++ {
		want := 3.0
		for _, c := range []float64{2, 3, 4, 5, 6} {
			want += replay.Float64() / (c + 0.1)
		}
		for _, n := range []float64{1, 2, 3, 4, 0} {
			want += n
		}

		assert.Equal(t, Round(want, 2), ClassificationScore(exampleRow, src), "row %d", i)
	}
}

func TestClassificationScore_Golden(t *testing.T) {
	src := noise.NewSource(noise.DefaultSeed)
	for i, want := range []string{"13.89", "13.64", "13.48"} {
		assert.Equal(t, want, FormatFloat(ClassificationScore(exampleRow, src)), "row %d", i)
	}
}

func TestRegressionTarget_Formula(t *testing.T) {
	row := core.Row{"v1", "v2", "v3", "v4", "v5", "v1", "2", "3", "4", "5"}
	x := &meanSampler{}

	// 0.01 + 5.2 + 0.3 + 3.2 + 0.1 + 2*4*2 + 0.4 + 0.3 + 1.5 = 27.01
	assert.Equal(t, 27.0, RegressionTarget(row, x))

	want := [][2]float64{
		{0.01, 0.002}, {2.6, 0.2}, {0.1, 0.02}, {0.8, 0.16}, {0.02, 0.004},
		{2, 0.1}, {0.2, 0.04}, {0.1, 0.02}, {0.3, 0.06},
	}
	require.Len(t, x.calls, len(want))
	for i := range want {
		assert.InDelta(t, want[i][0], x.calls[i][0], 1e-15, "mean of sample %d", i)
		assert.InDelta(t, want[i][1], x.calls[i][1], 1e-15, "stddev of sample %d", i)
	}
}

func TestRegressionTarget_CarryAcrossRows(t *testing.T) {
	src := &counting{src: noise.NewSource(noise.DefaultSeed)}
	g := noise.NewGaussian(src)

	RegressionTarget(exampleRow, g)
	// Nine samples leave the second half of the fifth pair carried.
	assert.True(t, g.Pending())
	assert.GreaterOrEqual(t, src.draws, int64(10))

	RegressionTarget(exampleRow, g)
	assert.False(t, g.Pending())
	assert.GreaterOrEqual(t, src.draws, int64(18))
	assert.Equal(t, int64(0), src.draws%2)
}

func TestRegressionTarget_Golden(t *testing.T) {
	g := noise.NewGaussian(noise.NewSource(noise.DefaultSeed))
	for i, want := range []string{"27.1", "30.7", "31.2"} {
		assert.Equal(t, want, FormatFloat(RegressionTarget(exampleRow, g)), "row %d", i)
	}
}

func TestRegressionTarget_SeededReplay(t *testing.T) {
	g := noise.NewGaussian(noise.NewSource(noise.DefaultSeed))
	replay := noise.NewGaussian(noise.NewSource(noise.DefaultSeed))

	for i := 0; i < 4; i++ {
		want := 2 * replay.Normal(0.01)
		want += 3 * replay.Sample(2.6, 0.2)
		want += 4 * replay.Normal(0.1)
		want += 5 * replay.Normal(0.8)
		want += 6 * replay.Normal(0.02)
		want += (1 + 1) * 4 * replay.Sample(2, 0.1)
		want += 2 * replay.Normal(0.2)
		want += 3 * replay.Normal(0.1)
		want += 0 * replay.Normal(0.3)

		assert.Equal(t, Round(want, 1), RegressionTarget(exampleRow, g), "row %d", i)
	}
}

func TestNewClassification_AppendsScore(t *testing.T) {
	tr := NewClassification(constant(0.5))

	out, err := tr.Transform(context.Background(), exampleRow)
	require.NoError(t, err)

	assert.Len(t, out, len(exampleRow)+1)
	assert.Equal(t, []string(exampleRow), []string(out[:len(exampleRow)]))
	assert.Equal(t, "13.7", out[len(out)-1])
}

func TestNewRegression_AppendsTarget(t *testing.T) {
	tr := NewRegression(noise.NewGaussian(noise.NewSource(noise.DefaultSeed)))

	out, err := tr.Transform(context.Background(), exampleRow)
	require.NoError(t, err)

	require.Len(t, out, len(exampleRow)+1)
	last := out[len(out)-1]
	require.Contains(t, last, ".")
	assert.Len(t, last[strings.IndexByte(last, '.')+1:], 1)
}

func TestAppendField_DoesNotModifyInput(t *testing.T) {
	in := make(core.Row, 2, 8)
	in[0], in[1] = "a", "b"

	out, err := AppendField(func(core.Row) string { return "c" }).Transform(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, core.Row{"a", "b", "c"}, out)
	assert.Equal(t, core.Row{"a", "b"}, in)
	assert.Equal(t, "", in[:3][2])
}

func TestTrimSpace(t *testing.T) {
	out, err := TrimSpace(0, 2, 9).Transform(context.Background(), core.Row{" a ", " b ", " c"})
	require.NoError(t, err)
	assert.Equal(t, core.Row{"a", " b ", "c"}, out)
}
