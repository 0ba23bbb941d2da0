package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/m-manu/digipres-columns/columns"
	"github.com/m-manu/digipres-columns/config"
	"github.com/m-manu/digipres-columns/entity"
	"github.com/m-manu/digipres-columns/fmte"
	rsfs "github.com/m-manu/digipres-columns/fs"
	"github.com/m-manu/digipres-columns/identify"
	"github.com/m-manu/digipres-columns/lib"
	"github.com/m-manu/digipres-columns/output"
)

// newReporter picks the diagnostics channel for identification failures
func newReporter(logJSON bool) (identify.Reporter, func(), error) {
	if !logJSON {
		return identify.NewConsoleReporter(), func() {}, nil
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't create logger: %w", err)
	}
	return identify.NewZapReporter(logger), func() { _ = logger.Sync() }, nil
}

func newIdentifier(cfg *config.Config, reporter identify.Reporter) *identify.Identifier {
	return identify.New(cfg.Siegfried.Binary,
		identify.WithArgs(cfg.Siegfried.Args...),
		identify.WithTimeout(cfg.Timeout()),
		identify.WithReporter(reporter),
	)
}

// collectColumns computes the columns for every location, one after the other. A location
// that is a directory contributes its immediate entries. Checksum errors don't stop the
// remaining locations; they are combined into the returned error.
func collectColumns(ctx context.Context, provider *columns.Provider, locations []string) ([]entity.FileColumns, error) {
	rows := make([]entity.FileColumns, 0, len(locations))
	var errs []error
	for _, location := range locations {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		path, pathErr := lib.PathFromLocation(location)
		if pathErr != nil {
			if errors.Is(pathErr, lib.ErrNotFileURI) {
				fmte.PrintfErr("skipping \"%s\": %v\n", location, columns.ErrNotLocal)
				continue
			}
			errs = append(errs, pathErr)
			continue
		}
		if lib.IsReadableDirectory(path) {
			start := time.Now()
			dirRows, listErr := provider.List(ctx, path)
			fmte.PrintfErrV("Listed %d files in %s in %.1fs\n", len(dirRows), path, time.Since(start).Seconds())
			rows = append(rows, dirRows...)
			if listErr != nil {
				errs = append(errs, listErr)
			}
			continue
		}
		row, rowErr := provider.FileInfo(ctx, path)
		if errors.Is(rowErr, columns.ErrSkipped) || errors.Is(rowErr, columns.ErrNotLocal) {
			fmte.PrintfErr("skipping %v\n", rowErr)
			continue
		}
		if rowErr != nil {
			errs = append(errs, rowErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, fmte.Errors("error(s) while computing checksums", errs)
}

// digipresColumns computes and renders the columns for locations. Rows that could be computed
// are rendered even when others failed.
func digipresColumns(ctx context.Context, cfg *config.Config, reporter identify.Reporter,
	locations []string, w io.Writer) (collectErr error, renderErr error) {
	selected, selectErr := columns.Select(cfg.Output.Columns)
	if selectErr != nil {
		return nil, selectErr
	}
	provider := columns.NewProvider(rsfs.NewLocalFS(), newIdentifier(cfg, reporter), cfg.DigestAlgorithm())
	rows, collectErr := collectColumns(ctx, provider, locations)
	if len(rows) > 0 {
		renderErr = output.Render(w, cfg.Output.Format, selected, rows)
	}
	return collectErr, renderErr
}
