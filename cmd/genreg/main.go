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

// Command genreg appends a synthetic regression target to every row of a
// headerless CSV file and writes the augmented rows to standard output.
//
// Usage:
//
//	genreg <input>
//
// The input is a local path, "-" for standard input, or an s3://bucket/key
// URI read with the default AWS credential chain.
package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaronlmathis/synthetl"
	"github.com/aaronlmathis/synthetl/internal/cli"
	"github.com/aaronlmathis/synthetl/noise"
	"github.com/aaronlmathis/synthetl/readers"
	"github.com/aaronlmathis/synthetl/writers"
)

var logger = zap.NewNop()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genreg <input>",
		Short: "Append a noisy regression target to each CSV row",
		Long: `Reads a headerless CSV file, appends a target computed from its first ten
columns with seeded Gaussian noise, and prints the augmented rows.

The input is a local path, "-" for standard input, an http:// or https:// URL,
or an s3://bucket/key URI. A local file literally named "-", or whose name
starts with "http://", "https://" or "s3://", must be given with a directory
prefix such as "./-".`,
		Args: cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := cli.NewLogger(cmd.Name())
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}

func generate(ctx context.Context, in string, out io.Writer) error {
	reader, err := readers.OpenCSV(ctx, in)
	if err != nil {
		return err
	}
	writer, err := writers.NewCSVWriter(cli.NopWriteCloser(out))
	if err != nil {
		reader.Close()
		return err
	}

	pipeline, err := synthetl.Regress(reader, writer, noise.DefaultSeed).
		WithLogger(logger).
		Build()
	if err != nil {
		reader.Close()
		return err
	}
	if err := pipeline.Execute(ctx); err != nil {
		return err
	}

	logger.Info("regression data written",
		zap.String("input", in),
		zap.Int64("rows", writer.Stats().RecordsWritten),
		zap.Int("flushes", int(writer.Stats().FlushCount)))
	return nil
}

func main() {
	ctx, stop := cli.SignalContext()
	code := cli.Execute(ctx, newRootCmd(), os.Stderr)
	stop()
	os.Exit(code)
}
