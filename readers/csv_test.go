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

package readers

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/synthetl/core"
)

// mockReadCloser records whether Close was called.
type mockReadCloser struct {
	io.Reader
	closed bool
}

func (m *mockReadCloser) Close() error {
	m.closed = true
	return nil
}

func newMockReadCloser(s string) *mockReadCloser {
	return &mockReadCloser{Reader: strings.NewReader(s)}
}

func readAll(t *testing.T, r *CSVReader) ([]core.Row, error) {
	t.Helper()
	var rows []core.Row
	for {
		row, err := r.Read(context.Background())
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

func TestCSVReader_Headerless(t *testing.T) {
	mock := newMockReadCloser("v1,v2,v3,v4,v5,1,2,3,4,5,c1\nv5,v4,v3,v2,v1,0.5,0,0,1,2,c2\n")
	reader, err := NewCSVReader(mock)
	require.NoError(t, err)

	rows, err := readAll(t, reader)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, core.Row{"v1", "v2", "v3", "v4", "v5", "1", "2", "3", "4", "5", "c1"}, rows[0])
	assert.Equal(t, "c2", rows[1].Field(10))

	stats := reader.Stats()
	assert.Equal(t, int64(2), stats.RecordsRead)
	assert.Equal(t, int64(22), stats.FieldsRead)

	require.NoError(t, reader.Close())
	assert.True(t, mock.closed)
}

func TestCSVReader_KeepsFieldsVerbatim(t *testing.T) {
	reader, err := NewCSVReader(newMockReadCloser(" v1 ,\"a,b\", 3\n"))
	require.NoError(t, err)

	row, err := reader.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.Row{" v1 ", "a,b", " 3"}, row)
}

func TestCSVReader_FieldCountMismatch(t *testing.T) {
	reader, err := NewCSVReader(newMockReadCloser("a,b,c\nd,e\n"))
	require.NoError(t, err)

	rows, err := readAll(t, reader)
	require.Error(t, err)
	assert.Len(t, rows, 1)

	var readerErr *CSVReaderError
	require.ErrorAs(t, err, &readerErr)
	assert.Equal(t, "read_record", readerErr.Op)
	assert.ErrorIs(t, err, csv.ErrFieldCount)
}

func TestCSVReader_FixedFieldCount(t *testing.T) {
	reader, err := NewCSVReader(newMockReadCloser("a,b\n"), WithFieldsPerRecord(3))
	require.NoError(t, err)

	_, err = reader.Read(context.Background())
	assert.ErrorIs(t, err, csv.ErrFieldCount)
}

func TestCSVReader_Options(t *testing.T) {
	reader, err := NewCSVReader(newMockReadCloser("# comment\na; b\n"),
		WithCSVComma(';'),
		WithCSVComment('#'),
		WithCSVTrimSpace(true),
		WithCSVLazyQuotes(true),
	)
	require.NoError(t, err)

	rows, err := readAll(t, reader)
	require.NoError(t, err)
	assert.Equal(t, []core.Row{{"a", "b"}}, rows)
}

func TestCSVReader_SkipsBlankLines(t *testing.T) {
	reader, err := NewCSVReader(newMockReadCloser("a,b\n\nc,d\n"))
	require.NoError(t, err)

	rows, err := readAll(t, reader)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCSVReader_ContextCancelled(t *testing.T) {
	reader, err := NewCSVReader(newMockReadCloser("a,b\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = reader.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewCSVReader_NilInput(t *testing.T) {
	_, err := NewCSVReader(nil)
	var readerErr *CSVReaderError
	require.ErrorAs(t, err, &readerErr)
	assert.Equal(t, "open", readerErr.Op)
}
