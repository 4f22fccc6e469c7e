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

// Command gencls appends a synthetic classification score to every row of
// bigcls.csv and writes the result to bigdata.csv, both in the working
// directory.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaronlmathis/synthetl"
	"github.com/aaronlmathis/synthetl/internal/cli"
	"github.com/aaronlmathis/synthetl/noise"
	"github.com/aaronlmathis/synthetl/readers"
	"github.com/aaronlmathis/synthetl/writers"
)

const (
	inputFile  = "bigcls.csv"
	outputFile = "bigdata.csv"
)

var logger = zap.NewNop()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gencls",
		Short: "Append a noisy classification score to " + inputFile,
		Long: `Reads the headerless CSV file ` + inputFile + ` from the working directory,
appends a score derived from its first ten columns, its label and seeded
uniform noise, and writes ` + outputFile + `.`,
		Args: cobra.NoArgs,
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
			return generate(cmd.Context(), inputFile, outputFile)
		},
	}
}

func generate(ctx context.Context, in, out string) error {
	reader, err := readers.OpenCSV(ctx, in)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		reader.Close()
		return fmt.Errorf("create output: %w", err)
	}
	writer, err := writers.NewCSVWriter(f)
	if err != nil {
		reader.Close()
		f.Close()
		return err
	}

	pipeline, err := synthetl.Classify(reader, writer, noise.DefaultSeed).
		WithLogger(logger).
		Build()
	if err != nil {
		reader.Close()
		writer.Close()
		return err
	}
	if err := pipeline.Execute(ctx); err != nil {
		return err
	}

	logger.Info("classification data written",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int64("rows", writer.Stats().RecordsWritten),
		zap.Int64("fields_read", reader.Stats().FieldsRead))
	return nil
}

func main() {
	ctx, stop := cli.SignalContext()
	code := cli.Execute(ctx, newRootCmd(), os.Stderr)
	stop()
	os.Exit(code)
}
