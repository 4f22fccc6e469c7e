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
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3ReaderError provides structured error information for S3 operations
type S3ReaderError struct {
	Op  string // Operation that failed (e.g., "parse_uri", "get_object")
	Err error  // Underlying error
}

func (e *S3ReaderError) Error() string {
	return fmt.Sprintf("s3 reader %s: %v", e.Op, e.Err)
}

func (e *S3ReaderError) Unwrap() error {
	return e.Err
}

// S3ReaderOptions configures how S3 objects are fetched
type S3ReaderOptions struct {
	Region         string          // AWS region
	Profile        string          // AWS profile to use
	Credentials    aws.Credentials // Explicit credentials
	EndpointURL    string          // Custom S3 endpoint (for S3-compatible services)
	ForcePathStyle bool            // Use path-style addressing
}

// ReaderOptionS3 represents a configuration function for S3Opener
type ReaderOptionS3 func(*S3ReaderOptions)

func WithS3Region(region string) ReaderOptionS3 {
	return func(opts *S3ReaderOptions) {
		opts.Region = region
	}
}

func WithS3Profile(profile string) ReaderOptionS3 {
	return func(opts *S3ReaderOptions) {
		opts.Profile = profile
	}
}

func WithS3Credentials(creds aws.Credentials) ReaderOptionS3 {
	return func(opts *S3ReaderOptions) {
		opts.Credentials = creds
	}
}

func WithS3Endpoint(endpoint string) ReaderOptionS3 {
	return func(opts *S3ReaderOptions) {
		opts.EndpointURL = endpoint
	}
}

func WithS3PathStyle(pathStyle bool) ReaderOptionS3 {
	return func(opts *S3ReaderOptions) {
		opts.ForcePathStyle = pathStyle
	}
}

// S3Object identifies a single object.
type S3Object struct {
	Bucket string
	Key    string
}

// String renders the object as an s3:// URI.
func (o S3Object) String() string {
	return "s3://" + o.Bucket + "/" + o.Key
}

// ParseS3URI splits an s3://bucket/key URI.
func ParseS3URI(uri string) (S3Object, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return S3Object{}, &S3ReaderError{Op: "parse_uri", Err: err}
	}
	if u.Scheme != "s3" {
		return S3Object{}, &S3ReaderError{Op: "parse_uri", Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	obj := S3Object{Bucket: u.Host, Key: strings.TrimPrefix(u.Path, "/")}
	if obj.Bucket == "" || obj.Key == "" {
		return S3Object{}, &S3ReaderError{Op: "parse_uri", Err: fmt.Errorf("%q must name a bucket and a key", uri)}
	}
	return obj, nil
}

// objectGetter is the part of *s3.Client the opener uses.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Opener fetches whole objects as streams for the CSV reader.
type S3Opener struct {
	client objectGetter
	opts   S3ReaderOptions
}

// NewS3Opener creates an opener using the AWS default credential chain
// unless explicit credentials are given.
func NewS3Opener(ctx context.Context, options ...ReaderOptionS3) (*S3Opener, error) {
	var opts S3ReaderOptions
	for _, option := range options {
		option(&opts)
	}

	cfg, err := createAWSConfig(ctx, opts)
	if err != nil {
		return nil, &S3ReaderError{Op: "create_aws_config", Err: err}
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
		}
		o.UsePathStyle = opts.ForcePathStyle
	})

	return &S3Opener{client: client, opts: opts}, nil
}

// Open returns the body of obj. The caller must close it.
func (s *S3Opener) Open(ctx context.Context, obj S3Object) (io.ReadCloser, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return nil, &S3ReaderError{Op: "get_object", Err: fmt.Errorf("failed to get object %s: %w", obj, err)}
	}
	return result.Body, nil
}

// createAWSConfig creates AWS configuration from options
func createAWSConfig(ctx context.Context, opts S3ReaderOptions) (aws.Config, error) {
	configOpts := []func(*config.LoadOptions) error{}

	if opts.Region != "" {
		configOpts = append(configOpts, config.WithRegion(opts.Region))
	}

	if opts.Profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return aws.Config{}, err
	}

	if opts.Credentials.AccessKeyID != "" {
		cfg.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				opts.Credentials.AccessKeyID,
				opts.Credentials.SecretAccessKey,
				opts.Credentials.SessionToken,
			),
		)
	}

	return cfg, nil
}
