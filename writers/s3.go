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

package writers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3WriterError provides structured error information for S3 uploads
type S3WriterError struct {
	Op  string // Operation that failed (e.g., "create_aws_config", "put_object")
	Err error  // Underlying error
}

func (e *S3WriterError) Error() string {
	return fmt.Sprintf("s3 writer %s: %v", e.Op, e.Err)
}

func (e *S3WriterError) Unwrap() error {
	return e.Err
}

// ObjectPutter is the part of *s3.Client the uploader uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader creates sinks whose output becomes an S3 object when closed.
type S3Uploader struct {
	client ObjectPutter
}

// NewS3Uploader creates an uploader using the AWS default credential chain.
func NewS3Uploader(ctx context.Context) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, &S3WriterError{Op: "create_aws_config", Err: err}
	}
	return NewS3UploaderFromClient(s3.NewFromConfig(cfg)), nil
}

// NewS3UploaderFromClient creates an uploader around an existing client.
func NewS3UploaderFromClient(client ObjectPutter) *S3Uploader {
	return &S3Uploader{client: client}
}

func (u *S3Uploader) put(ctx context.Context, bucket, key string, body io.Reader) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return &S3WriterError{Op: "put_object", Err: fmt.Errorf("failed to put s3://%s/%s: %w", bucket, key, err)}
	}
	return nil
}

// Aborter is implemented by sinks that publish their output on Close.
// Abort releases the sink without publishing anything; a later Close is a no-op.
type Aborter interface {
	Abort() error
}

// NewObjectWriter returns a writer that buffers in memory and uploads the
// buffer to bucket/key on Close. The returned writer implements Aborter.
func (u *S3Uploader) NewObjectWriter(ctx context.Context, bucket, key string) io.WriteCloser {
	return &s3WriteCloser{ctx: ctx, uploader: u, bucket: bucket, key: key}
}

type s3WriteCloser struct {
	ctx      context.Context
	buf      bytes.Buffer
	uploader *S3Uploader
	bucket   string
	key      string
	closed   bool
}

func (s *s3WriteCloser) Write(p []byte) (int, error) { return s.buf.Write(p) }

func (s *s3WriteCloser) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.uploader.put(s.ctx, s.bucket, s.key, bytes.NewReader(s.buf.Bytes()))
}

// Abort drops the buffered bytes without uploading them.
func (s *s3WriteCloser) Abort() error {
	s.closed = true
	s.buf.Reset()
	return nil
}

// S3ParquetWriter writes Parquet to a temporary file and uploads it on Close.
type S3ParquetWriter struct {
	*ParquetWriter
	ctx      context.Context
	uploader *S3Uploader
	bucket   string
	key      string
	filename string
	done     bool
}

// NewParquetObjectWriter creates a Parquet writer whose file is uploaded to
// bucket/key when the writer is closed.
func (u *S3Uploader) NewParquetObjectWriter(ctx context.Context, bucket, key string, schema *arrow.Schema, options ...WriterOption) (*S3ParquetWriter, error) {
	tmp, err := os.CreateTemp("", "synthetl-*.parquet")
	if err != nil {
		return nil, &S3WriterError{Op: "create_temp", Err: err}
	}
	filename := tmp.Name()
	tmp.Close()

	pw, err := NewParquetWriter(filename, schema, options...)
	if err != nil {
		os.Remove(filename)
		return nil, err
	}
	return &S3ParquetWriter{
		ParquetWriter: pw,
		ctx:           ctx,
		uploader:      u,
		bucket:        bucket,
		key:           key,
		filename:      filename,
	}, nil
}

// Close finishes the Parquet file, uploads it and removes the temporary copy.
func (p *S3ParquetWriter) Close() error {
	if p.done {
		return nil
	}
	p.done = true
	defer os.Remove(p.filename)

	if err := p.ParquetWriter.Close(); err != nil {
		return err
	}
	file, err := os.Open(p.filename)
	if err != nil {
		return &S3WriterError{Op: "open_temp", Err: err}
	}
	defer file.Close()
	return p.uploader.put(p.ctx, p.bucket, p.key, file)
}

// Abort closes the Parquet writer and removes the temporary file without
// uploading it.
func (p *S3ParquetWriter) Abort() error {
	if p.done {
		return nil
	}
	p.done = true
	defer os.Remove(p.filename)
	return p.ParquetWriter.Close()
}
