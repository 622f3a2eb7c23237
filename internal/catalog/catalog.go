// Package catalog embeds a default catalog of common construction
// materials, glazings and frames so small projects do not need to
// define every layer material themselves.
package catalog

import (
	"context"
	_ "embed"
	"io"
	"log/slog"
	"sync"

	"github.com/vk/thermenv/internal/ctxlog"
	"github.com/vk/thermenv/internal/hclfront"
	"github.com/vk/thermenv/internal/record"
)

//go:embed default.hcl
var defaultSrc []byte

var loadDefault = sync.OnceValues(func() (*record.Set, error) {
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return hclfront.NewLoader().ParseBytes(ctx, "catalog/default.hcl", defaultSrc)
})

// Default returns the records of the embedded catalog. The embedded
// source is parsed once per process.
func Default() ([]record.Record, error) {
	set, err := loadDefault()
	if err != nil {
		return nil, err
	}
	return set.Records, nil
}

// Merge appends every default catalog entry whose kind and name are not
// already defined in the set. Project definitions win on collision.
func Merge(set *record.Set) error {
	defaults, err := Default()
	if err != nil {
		return err
	}
	for _, rec := range defaults {
		if _, ok := set.Find(rec.Kind, rec.Name); ok {
			continue
		}
		set.Records = append(set.Records, rec)
	}
	return nil
}
