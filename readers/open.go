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
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinName is the location that selects standard input.
const StdinName = "-"

// Open resolves an input location to a stream: "-" is standard input, an
// s3://bucket/key URI is fetched with the AWS default configuration, an
// http(s) URL is fetched with a GET, and anything else is a local path.
func Open(ctx context.Context, location string, options ...ReaderOptionS3) (io.ReadCloser, error) {
	switch {
	case location == StdinName:
		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(location, "s3://"):
		obj, err := ParseS3URI(location)
		if err != nil {
			return nil, err
		}
		opener, err := NewS3Opener(ctx, options...)
		if err != nil {
			return nil, err
		}
		return opener.Open(ctx, obj)
	case IsHTTPURL(location):
		return NewHTTPOpener().Open(ctx, location)
	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return f, nil
	}
}

// OpenCSV opens location and wraps it in a CSVReader.
func OpenCSV(ctx context.Context, location string, options ...ReaderOptionCSV) (*CSVReader, error) {
	r, err := Open(ctx, location)
	if err != nil {
		return nil, err
	}
	reader, err := NewCSVReader(r, options...)
	if err != nil {
		r.Close()
		return nil, err
	}
	return reader, nil
}
