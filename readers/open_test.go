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
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	objects map[string]string
	input   *s3.GetObjectInput
}

func (f *fakeGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	body, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestOpen_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	r, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestOpen_PrefixedLocalPaths(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("-", []byte("dash\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join("http:", "host"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("http:", "host", "in.csv"), []byte("url\n"), 0o644))

	for location, want := range map[string]string{"./-": "dash\n", "./http://host/in.csv": "url\n"} {
		r, err := Open(context.Background(), location)
		require.NoError(t, err, location)
		data, err := io.ReadAll(r)
		r.Close()
		require.NoError(t, err)
		assert.Equal(t, want, string(data), location)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_BadS3URI(t *testing.T) {
	_, err := Open(context.Background(), "s3://bucket-only")
	var s3Err *S3ReaderError
	require.ErrorAs(t, err, &s3Err)
	assert.Equal(t, "parse_uri", s3Err.Op)
}

func TestOpenCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\nc,d\n"), 0o644))

	reader, err := OpenCSV(context.Background(), path)
	require.NoError(t, err)
	defer reader.Close()

	row, err := reader.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", row.Field(1))
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri     string
		want    S3Object
		wantErr bool
	}{
		{uri: "s3://data/bigcls.csv", want: S3Object{Bucket: "data", Key: "bigcls.csv"}},
		{uri: "s3://data/nested/dir/bigcls.csv", want: S3Object{Bucket: "data", Key: "nested/dir/bigcls.csv"}},
		{uri: "s3://data/", wantErr: true},
		{uri: "s3:///key", wantErr: true},
		{uri: "gs://data/key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseS3URI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.uri, got.String())
		})
	}
}

func TestS3Opener_Open(t *testing.T) {
	getter := &fakeGetter{objects: map[string]string{"data/in.csv": "v1,1\n"}}
	opener := &S3Opener{client: getter}

	body, err := opener.Open(context.Background(), S3Object{Bucket: "data", Key: "in.csv"})
	require.NoError(t, err)

	reader, err := NewCSVReader(body)
	require.NoError(t, err)
	defer reader.Close()

	row, err := reader.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1", row.Field(0))
	assert.Equal(t, "in.csv", aws.ToString(getter.input.Key))
}

func TestS3Opener_OpenMissing(t *testing.T) {
	opener := &S3Opener{client: &fakeGetter{}}

	_, err := opener.Open(context.Background(), S3Object{Bucket: "data", Key: "nope.csv"})
	var s3Err *S3ReaderError
	require.ErrorAs(t, err, &s3Err)
	assert.Equal(t, "get_object", s3Err.Op)
	assert.Contains(t, err.Error(), "s3://data/nope.csv")
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
