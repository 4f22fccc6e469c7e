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
	"net/http"
	"slices"
	"strings"
	"time"
)

// HTTPReaderError provides structured error information for HTTP fetches.
type HTTPReaderError struct {
	Op         string // Operation that failed (e.g., "request", "auth", "status_check")
	StatusCode int    // HTTP status code if applicable
	URL        string // URL being accessed when error occurred
	Err        error  // Underlying error
}

func (e *HTTPReaderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("http reader %s [%d] %s: %v", e.Op, e.StatusCode, e.URL, e.Err)
	}
	return fmt.Sprintf("http reader %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *HTTPReaderError) Unwrap() error {
	return e.Err
}

// AuthConfig defines authentication configuration.
type AuthConfig struct {
	Type       string // "bearer", "basic" or "apikey"
	Token      string // Bearer token
	Username   string // For basic auth
	Password   string // For basic auth
	HeaderName string // Header carrying the API key
	HeaderKey  string // API key value
}

// HTTPReaderOptions configures HTTP input.
type HTTPReaderOptions struct {
	Headers          map[string]string // Additional headers
	Auth             *AuthConfig       // Authentication configuration
	Timeout          time.Duration     // Whole-request timeout, body included
	ValidStatusCodes []int             // Status codes accepted as success
	UserAgent        string            // User agent string
	CustomClient     *http.Client      // Custom HTTP client
}

// ReaderOptionHTTP is a functional option for HTTPReaderOptions.
type ReaderOptionHTTP func(*HTTPReaderOptions)

func WithHTTPHeaders(headers map[string]string) ReaderOptionHTTP {
	return func(opts *HTTPReaderOptions) {
		if opts.Headers == nil {
			opts.Headers = make(map[string]string)
		}
		for k, v := range headers {
			opts.Headers[k] = v
		}
	}
}

func WithHTTPBearerToken(token string) ReaderOptionHTTP {
	return func(opts *HTTPReaderOptions) {
		opts.Auth = &AuthConfig{Type: "bearer", Token: token}
	}
}

func WithHTTPBasicAuth(username, password string) ReaderOptionHTTP {
	return func(opts *HTTPReaderOptions) {
		opts.Auth = &AuthConfig{Type: "basic", Username: username, Password: password}
	}
}

func WithHTTPAPIKey(headerName, apiKey string) ReaderOptionHTTP {
	return func(opts *HTTPReaderOptions) {
		opts.Auth = &AuthConfig{Type: "apikey", HeaderName: headerName, HeaderKey: apiKey}
	}
}

func WithHTTPTimeout(timeout time.Duration) ReaderOptionHTTP {
	return func(opts *HTTPReaderOptions) {
		opts.Timeout = timeout
	}
}

func WithHTTPUserAgent(userAgent string) ReaderOptionHTTP {
	return func(opts *HTTPReaderOptions) {
		opts.UserAgent = userAgent
	}
}

func WithHTTPClient(client *http.Client) ReaderOptionHTTP {
	return func(opts *HTTPReaderOptions) {
		opts.CustomClient = client
	}
}

// IsHTTPURL reports whether location names an http or https resource.
func IsHTTPURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// HTTPOpener fetches remote CSV files. The response body is streamed to the
// caller, never buffered whole; a failed request is not retried.
type HTTPOpener struct {
	client *http.Client
	opts   HTTPReaderOptions
}

// NewHTTPOpener creates an HTTPOpener with default or overridden options.
func NewHTTPOpener(options ...ReaderOptionHTTP) *HTTPOpener {
	opts := HTTPReaderOptions{
		Timeout:          5 * time.Minute,
		ValidStatusCodes: []int{http.StatusOK},
		UserAgent:        "synthetl/1.0",
	}
	for _, option := range options {
		option(&opts)
	}

	client := opts.CustomClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPOpener{client: client, opts: opts}
}

// Open issues a GET for url and returns the response body.
func (o *HTTPOpener) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &HTTPReaderError{Op: "create_request", URL: url, Err: err}
	}

	req.Header.Set("User-Agent", o.opts.UserAgent)
	for k, v := range o.opts.Headers {
		req.Header.Set(k, v)
	}
	if err := o.addAuthentication(req); err != nil {
		return nil, &HTTPReaderError{Op: "auth", URL: url, Err: err}
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, &HTTPReaderError{Op: "request", URL: url, Err: err}
	}
	if !slices.Contains(o.opts.ValidStatusCodes, resp.StatusCode) {
		resp.Body.Close()
		return nil, &HTTPReaderError{
			Op:         "status_check",
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}
	return resp.Body, nil
}

func (o *HTTPOpener) addAuthentication(req *http.Request) error {
	auth := o.opts.Auth
	if auth == nil {
		return nil
	}

	switch auth.Type {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	case "basic":
		req.SetBasicAuth(auth.Username, auth.Password)
	case "apikey":
		req.Header.Set(auth.HeaderName, auth.HeaderKey)
	default:
		return fmt.Errorf("unsupported auth type: %s", auth.Type)
	}
	return nil
}
