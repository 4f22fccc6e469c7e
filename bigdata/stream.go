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

package bigdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aaronlmathis/synthetl/core"
	"github.com/aaronlmathis/synthetl/readers"
)

// StreamError reports a row that could not be turned into an example.
type StreamError struct {
	Row     int64
	Feature string
	Err     error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("bigdata row %d feature %s: %v", e.Row, e.Feature, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Stream iterates over the examples of an augmented dataset.
//
//	for s.Next(ctx) {
//		x := s.Example()
//	}
//	if err := s.Err(); err != nil { ... }
type Stream struct {
	src   *readers.CSVReader
	model *Model
	rows  int64

	x   core.Record
	err error
}

// Open opens the dataset at location (a path, "-" or an s3:// URI).
func Open(ctx context.Context, kind, location string) (*Stream, *Model, error) {
	model, err := ModelFor(kind)
	if err != nil {
		return nil, nil, err
	}
	r, err := readers.Open(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewStream(r, model)
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return s, model, nil
}

// NewStream reads examples of model from r. Every row must have
// model.FieldsPerRecord() fields.
func NewStream(r io.ReadCloser, model *Model) (*Stream, error) {
	src, err := readers.NewCSVReader(r, readers.WithFieldsPerRecord(model.FieldsPerRecord()))
	if err != nil {
		return nil, err
	}
	return &Stream{src: src, model: model}, nil
}

// Next advances to the next example. It returns false at the end of the
// input or on the first error.
func (s *Stream) Next(ctx context.Context) bool {
	if s.err != nil {
		return false
	}

	row, err := s.src.Read(ctx)
	if err != nil {
		s.err = err
		return false
	}
	s.rows++

	x := make(core.Record, len(s.model.Features))
	for _, feat := range s.model.Features {
		str := row.Field(s.model.Columns[feat.Name])
		if str == "" {
			continue
		}
		switch feat.Kind {
		case Categorical:
			x[feat.Name] = str
		case Numerical:
			v, err := strconv.ParseFloat(str, 64)
			if err != nil {
				s.err = &StreamError{Row: s.rows, Feature: feat.Name, Err: err}
				return false
			}
			x[feat.Name] = v
		}
	}
	s.x = x
	return true
}

// ReadN reads up to n examples.
func (s *Stream) ReadN(ctx context.Context, n int) ([]core.Record, error) {
	res := make([]core.Record, 0, n)
	for len(res) < n && s.Next(ctx) {
		res = append(res, s.Example())
	}
	return res, s.Err()
}

// Example returns the current example.
func (s *Stream) Example() core.Record { return s.x }

// Rows returns the number of rows read so far.
func (s *Stream) Rows() int64 { return s.rows }

// Err returns the first error other than io.EOF.
func (s *Stream) Err() error {
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}

// Close closes the underlying input.
func (s *Stream) Close() error { return s.src.Close() }
