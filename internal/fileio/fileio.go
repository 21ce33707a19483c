// Package fileio reads text files, optionally decoding them, either one at a
// time or concurrently with fail-fast semantics.
package fileio

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Deserializer converts the text content of a file into a value.
type Deserializer[T any] func(content string) (T, error)

// Text is the identity deserializer.
func Text(content string) (string, error) {
	return content, nil
}

// Option configures concurrent acquisition.
type Option func(*options)

type options struct {
	limit int
}

// WithLimit bounds the number of files read at once. Values below 1 mean
// no bound.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// AcquireText reads a UTF-8 text file.
func AcquireText(ctx context.Context, path string) (string, error) {
	return AcquireTextFile(ctx, path, Text)
}

// AcquireTextFile reads a UTF-8 text file and applies the deserializer to
// its content.
func AcquireTextFile[T any](ctx context.Context, path string, deserializer Deserializer[T]) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return zero, fmt.Errorf("reading %s: content is not valid UTF-8", path)
	}
	value, err := deserializer(string(data))
	if err != nil {
		return zero, fmt.Errorf("decoding %s: %w", path, err)
	}
	return value, nil
}

// AcquireTextFiles reads the files concurrently and returns the decoded
// values in the order of paths. The first failure cancels the reads still
// pending and is returned.
func AcquireTextFiles[T any](
	ctx context.Context, paths []string, deserializer Deserializer[T], opts ...Option,
) ([]T, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	results := make([]T, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if o.limit > 0 {
		g.SetLimit(o.limit)
	}

	for i, path := range paths {
		g.Go(func() error {
			value, err := AcquireTextFile(ctx, path, deserializer)
			if err != nil {
				return err
			}
			results[i] = value
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
