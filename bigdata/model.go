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

// Package bigdata reads augmented datasets back as typed examples and exports
// them to columnar or line-oriented sinks.
package bigdata

import (
	"fmt"

	"github.com/apache/arrow/go/v12/arrow"
)

// TargetName is the name of the feature holding the label or target.
const TargetName = "target"

// Dataset kinds accepted by Open.
const (
	Classification = "classification"
	Regression     = "regression"
)

// FeatureKind tells how a column is typed in an example.
type FeatureKind int

const (
	Categorical FeatureKind = iota
	Numerical
)

func (k FeatureKind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "numerical"
}

// Feature is a named column of a model.
type Feature struct {
	Name   string
	Kind   FeatureKind
	Values []string // categorical levels, empty for numerical features
}

// Model is an ordered list of features plus the column each is read from.
type Model struct {
	Kind     string
	Features []Feature
	Columns  map[string]int
}

var levels = []string{"v1", "v2", "v3", "v4", "v5"}

func predictors() []Feature {
	return []Feature{
		{Name: "c1", Kind: Categorical, Values: levels},
		{Name: "c2", Kind: Categorical, Values: levels},
		{Name: "c3", Kind: Categorical, Values: levels},
		{Name: "c4", Kind: Categorical, Values: levels},
		{Name: "c5", Kind: Categorical, Values: levels},
		{Name: "n1", Kind: Numerical},
		{Name: "n2", Kind: Numerical},
		{Name: "n3", Kind: Numerical},
		{Name: "n4", Kind: Numerical},
		{Name: "n5", Kind: Numerical},
	}
}

func predictorColumns() map[string]int {
	return map[string]int{
		"c1": 0, "c2": 1, "c3": 2, "c4": 3, "c5": 4,
		"n1": 5, "n2": 6, "n3": 7, "n4": 8, "n5": 9,
	}
}

// ClassificationModel describes gencls output: the class label at column 10
// is the target.
func ClassificationModel() *Model {
	cols := predictorColumns()
	cols[TargetName] = 10
	return &Model{
		Kind:     Classification,
		Features: append(predictors(), Feature{Name: TargetName, Kind: Categorical, Values: []string{"c1", "c2"}}),
		Columns:  cols,
	}
}

// RegressionModel describes genreg output over an 11-column input: the
// appended column 11 is the target.
func RegressionModel() *Model {
	cols := predictorColumns()
	cols[TargetName] = 11
	return &Model{
		Kind:     Regression,
		Features: append(predictors(), Feature{Name: TargetName, Kind: Numerical}),
		Columns:  cols,
	}
}

// ModelFor returns the model of a dataset kind.
func ModelFor(kind string) (*Model, error) {
	switch kind {
	case Classification:
		return ClassificationModel(), nil
	case Regression:
		return RegressionModel(), nil
	}
	return nil, fmt.Errorf("no such dataset kind %q", kind)
}

// FieldsPerRecord is the number of columns every row of the dataset has.
func (m *Model) FieldsPerRecord() int {
	return len(m.Features) + 1
}

// Feature returns the named feature.
func (m *Model) Feature(name string) (Feature, bool) {
	for _, f := range m.Features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// ArrowSchema maps the model to a nullable Arrow schema in feature order.
func (m *Model) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(m.Features))
	for i, f := range m.Features {
		typ := arrow.DataType(arrow.PrimitiveTypes.Float64)
		if f.Kind == Categorical {
			typ = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: f.Name, Type: typ, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}
