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

// Command bigdata works with augmented datasets produced by gencls and genreg.
//
//	bigdata export --kind classification bigdata.csv bigdata.parquet
//	bigdata export --kind regression reg.csv reg.jsonl
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaronlmathis/synthetl/bigdata"
	"github.com/aaronlmathis/synthetl/internal/cli"
)

var (
	kind   string
	logger = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bigdata",
		Short: "Inspect and convert augmented datasets",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := cli.NewLogger(cmd.Root().Name())
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <input> <output>",
		Short: "Convert an augmented CSV file to Parquet or JSON lines",
		Long: `Reads an augmented CSV file as typed examples and writes them to the output
file. The format follows the output extension: .parquet, .jsonl or .json.
The input may be a local path, "-" for standard input, an http(s) URL or an
s3:// URI; the output may be a local path or an s3:// URI. Local files named
"-" or starting with a URL scheme need a directory prefix such as "./-".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd.Context(), kind, args[0], args[1])
		},
	}
	exportCmd.Flags().StringVar(&kind, "kind", bigdata.Classification,
		fmt.Sprintf("dataset kind (%s or %s)", bigdata.Classification, bigdata.Regression))

	root.AddCommand(exportCmd)
	return root
}

func export(ctx context.Context, kind, in, out string) error {
	stream, model, err := bigdata.Open(ctx, kind, in)
	if err != nil {
		return err
	}
	defer stream.Close()

	sink, err := bigdata.CreateSink(ctx, out, model)
	if err != nil {
		return err
	}

	n, err := bigdata.Export(ctx, stream, sink)
	if err != nil {
		if derr := bigdata.Discard(sink); derr != nil {
			logger.Warn("discard output", zap.String("output", out), zap.Error(derr))
		}
		return err
	}
	if err := sink.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	target, _ := model.Feature(bigdata.TargetName)
	logger.Info("dataset exported",
		zap.String("kind", kind),
		zap.Stringer("target", target.Kind),
		zap.String("input", in),
		zap.String("output", out),
		zap.Int64("rows", stream.Rows()),
		zap.Int64("examples", n))
	return nil
}

func main() {
	ctx, stop := cli.SignalContext()
	code := cli.Execute(ctx, newRootCmd(), os.Stderr)
	stop()
	os.Exit(code)
}
