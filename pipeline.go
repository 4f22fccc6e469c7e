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

package synthetl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/aaronlmathis/synthetl/core"
)

// Package synthetl synthesizes tabular test data by streaming headerless CSV
// rows through transformers that append derived target columns.
//
// Core Concepts:
//   - DataSource: Interface for reading rows (CSV from a file, stdin or S3).
//   - DataSink: Interface for writing rows (CSV to a file or stdout).
//   - Transformer: Interface for deriving fields from a row.
//   - Pipeline: Composable, chainable pipeline for row-by-row processing.
//   - ErrorStrategy: Configurable error handling (fail fast, skip, collect, custom handler).
//
// Example usage:
//
//   pipeline, err := synthetl.NewPipeline().
//       From(csvReader).
//       Transform(transform.NewClassification(noise.NewSource(noise.DefaultSeed))).
//       To(csvWriter).
//       Build()
//   if err != nil { return err }
//   if err := pipeline.Execute(ctx); err != nil { return err }
//
// Rows are processed strictly in input order on the calling goroutine, so a
// seeded transformer reproduces its output exactly.

// PipelineBuilder provides a fluent API for constructing pipelines.
// Use NewPipeline() to create a new builder, then chain From, Transform, To, and configuration methods.
type PipelineBuilder struct {
	pipeline *Pipeline
}

// NewPipeline creates a new PipelineBuilder.
func NewPipeline() *PipelineBuilder {
	return &PipelineBuilder{
		pipeline: &Pipeline{
			transformers: make([]core.Transformer, 0),
			strategy:     core.FailFast,
			logger:       zap.NewNop(),
		},
	}
}

// From sets the DataSource for the pipeline.
func (pb *PipelineBuilder) From(source core.DataSource) *PipelineBuilder {
	pb.pipeline.source = source
	return pb
}

// Transform adds a Transformer to the pipeline.
func (pb *PipelineBuilder) Transform(transformer core.Transformer) *PipelineBuilder {
	pb.pipeline.transformers = append(pb.pipeline.transformers, transformer)
	return pb
}

// Map adds a mapping transformation to the pipeline using a function.
func (pb *PipelineBuilder) Map(fn func(ctx context.Context, row core.Row) (core.Row, error)) *PipelineBuilder {
	return pb.Transform(core.TransformFunc(fn))
}

// To sets the DataSink for the pipeline.
func (pb *PipelineBuilder) To(sink core.DataSink) *PipelineBuilder {
	pb.pipeline.sink = sink
	return pb
}

// WithErrorStrategy sets the error handling strategy for the pipeline.
func (pb *PipelineBuilder) WithErrorStrategy(strategy core.ErrorStrategy) *PipelineBuilder {
	pb.pipeline.strategy = strategy
	return pb
}

// WithErrorHandler sets a custom error handler for the pipeline.
func (pb *PipelineBuilder) WithErrorHandler(handler core.ErrorHandler) *PipelineBuilder {
	pb.pipeline.errorHandler = handler
	return pb
}

// WithLogger sets the logger used for run summaries and skipped rows.
func (pb *PipelineBuilder) WithLogger(logger *zap.Logger) *PipelineBuilder {
	if logger != nil {
		pb.pipeline.logger = logger
	}
	return pb
}

// Build validates and constructs the Pipeline from the builder.
func (pb *PipelineBuilder) Build() (*Pipeline, error) {
	if pb.pipeline.source == nil {
		return nil, fmt.Errorf("pipeline requires a data source")
	}
	if pb.pipeline.sink == nil {
		return nil, fmt.Errorf("pipeline requires a data sink")
	}
	return pb.pipeline, nil
}

// PipelineStats summarizes a pipeline run.
type PipelineStats struct {
	RowsRead    int64
	RowsWritten int64
	RowsSkipped int64
	Duration    time.Duration
}

// Pipeline represents a row processing pipeline.
//
// Use Execute to process all rows from the DataSource through transformations, writing to the DataSink.
type Pipeline struct {
	transformers []core.Transformer
	source       core.DataSource
	sink         core.DataSink
	strategy     core.ErrorStrategy
	errorHandler core.ErrorHandler
	logger       *zap.Logger
	stats        PipelineStats
	errs         []error
}

// Execute runs the pipeline, processing all rows from source to sink.
//
// The source and sink are closed when Execute returns. A sink that fails to
// flush or close turns a successful run into an error, since its output is
// incomplete.
func (p *Pipeline) Execute(ctx context.Context) (err error) {
	start := time.Now()
	p.logger.Debug("pipeline started",
		zap.Int("transformers", len(p.transformers)),
		zap.Stringer("strategy", p.strategy))

	defer func() {
		p.stats.Duration = time.Since(start)
		if cerr := p.source.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close source: %w", cerr)
		}
		if cerr := p.sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sink: %w", cerr)
		}
		if err != nil {
			p.logger.Error("pipeline failed", zap.Error(err), zap.Int64("rows_read", p.stats.RowsRead))
			return
		}
		p.logger.Info("pipeline finished",
			zap.Int64("rows_read", p.stats.RowsRead),
			zap.Int64("rows_written", p.stats.RowsWritten),
			zap.Int64("rows_skipped", p.stats.RowsSkipped),
			zap.Duration("duration", p.stats.Duration))
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row, err := p.source.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A source that failed to parse cannot be resumed reliably.
			return err
		}
		p.stats.RowsRead++

		transformed, err := p.applyTransformations(ctx, row)
		if err != nil {
			if err := p.handleError(ctx, row, err); err != nil {
				return err
			}
			continue
		}

		if err := p.sink.Write(ctx, transformed); err != nil {
			return err
		}
		p.stats.RowsWritten++
	}

	return p.sink.Flush()
}

// Stats returns the statistics of the last run.
func (p *Pipeline) Stats() PipelineStats {
	return p.stats
}

// Errors returns the row errors collected under the CollectErrors strategy.
func (p *Pipeline) Errors() []error {
	return p.errs
}

// applyTransformations applies all configured transformers to a row in sequence.
func (p *Pipeline) applyTransformations(ctx context.Context, row core.Row) (core.Row, error) {
	current := row
	for _, transformer := range p.transformers {
		transformed, err := transformer.Transform(ctx, current)
		if err != nil {
			return nil, err
		}
		current = transformed
	}
	return current, nil
}

// handleError handles a transformation error according to the pipeline's
// strategy and handler. It returns an error if processing should stop.
func (p *Pipeline) handleError(ctx context.Context, row core.Row, err error) error {
	switch p.strategy {
	case core.SkipErrors, core.CollectErrors:
		if p.strategy == core.CollectErrors {
			p.errs = append(p.errs, err)
		}
		p.stats.RowsSkipped++
		p.logger.Warn("row skipped", zap.Int64("row", p.stats.RowsRead), zap.Error(err))
		if p.errorHandler != nil {
			return p.errorHandler.HandleError(ctx, row, err)
		}
		return nil
	default:
		return err
	}
}
