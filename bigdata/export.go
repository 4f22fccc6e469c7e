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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aaronlmathis/synthetl/core"
	"github.com/aaronlmathis/synthetl/readers"
	"github.com/aaronlmathis/synthetl/writers"
)

// Export copies every remaining example of s into sink and flushes it.
// It returns the number of examples written.
func Export(ctx context.Context, s *Stream, sink core.RecordSink) (int64, error) {
	var n int64
	for s.Next(ctx) {
		if err := sink.Write(ctx, s.Example()); err != nil {
			return n, err
		}
		n++
	}
	if err := s.Err(); err != nil {
		return n, err
	}
	return n, sink.Flush()
}

// CreateSink creates a record sink for location, choosing the format from its
// extension: ".parquet" or ".jsonl"/".json" (JSON lines). A location of the
// form s3://bucket/key is written locally and uploaded when the sink closes.
func CreateSink(ctx context.Context, location string, model *Model) (core.RecordSink, error) {
	ext := strings.ToLower(filepath.Ext(location))
	if ext != ".parquet" && ext != ".jsonl" && ext != ".json" {
		return nil, fmt.Errorf("unsupported output format %q", ext)
	}

	if !strings.HasPrefix(location, "s3://") {
		if ext == ".parquet" {
			return writers.NewParquetWriter(location, model.ArrowSchema())
		}
		f, err := os.Create(location)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		return writers.NewJSONWriter(f), nil
	}

	obj, err := readers.ParseS3URI(location)
	if err != nil {
		return nil, err
	}
	uploader, err := newUploader(ctx)
	if err != nil {
		return nil, err
	}
	if ext == ".parquet" {
		return uploader.NewParquetObjectWriter(ctx, obj.Bucket, obj.Key, model.ArrowSchema())
	}
	return writers.NewJSONWriter(uploader.NewObjectWriter(ctx, obj.Bucket, obj.Key)), nil
}

// Discard releases sink after a failed export. Sinks that publish on Close,
// such as S3 uploads, are aborted so a partial dataset never replaces a
// good one; other sinks are closed.
func Discard(sink core.RecordSink) error {
	if a, ok := sink.(writers.Aborter); ok {
		return a.Abort()
	}
	return sink.Close()
}

// newUploader is replaced in tests.
var newUploader = writers.NewS3Uploader
