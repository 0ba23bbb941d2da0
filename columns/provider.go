package columns

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-manu/digipres-columns/entity"
	"github.com/m-manu/digipres-columns/fmte"
	rsfs "github.com/m-manu/digipres-columns/fs"
	"github.com/m-manu/digipres-columns/lib"
	"github.com/m-manu/digipres-columns/service"
)

var (
	// ErrSkipped is returned for directories and other non-regular files
	ErrSkipped = errors.New("not a regular file")

	// ErrNotLocal is returned for locations not backed by a local file system
	ErrNotLocal = errors.New("not on a local file system")
)

// FormatIdentifier identifies the format of a single file. *identify.Identifier implements it.
type FormatIdentifier interface {
	Identify(ctx context.Context, path string) entity.IdentificationResult
}

// Provider computes the column values for files, the way a file manager's info provider
// is asked about each file in a list view
type Provider struct {
	fsys       rsfs.FileSystem
	identifier FormatIdentifier
	algorithm  entity.DigestAlgorithm
}

// NewProvider creates a Provider
func NewProvider(fsys rsfs.FileSystem, identifier FormatIdentifier, algorithm entity.DigestAlgorithm) *Provider {
	return &Provider{
		fsys:       fsys,
		identifier: identifier,
		algorithm:  algorithm,
	}
}

// FileInfo computes the columns for the file at location (a path or a file:// URI).
// Directories and non-regular files yield ErrSkipped, anything not on a local file system
// yields ErrNotLocal. Identification failures never fail the call: the format columns
// show Placeholder instead. A checksum failure is returned as an error.
func (p *Provider) FileInfo(ctx context.Context, location string) (entity.FileColumns, error) {
	path, pathErr := lib.PathFromLocation(location)
	if pathErr != nil {
		if errors.Is(pathErr, lib.ErrNotFileURI) {
			return entity.FileColumns{}, fmt.Errorf("%w: %v", ErrNotLocal, pathErr)
		}
		return entity.FileColumns{}, pathErr
	}
	info, statErr := p.fsys.Stat(path)
	if statErr != nil {
		return entity.FileColumns{}, &service.IOError{Path: path, Op: "stat", Err: statErr}
	}
	if info.IsDir || !info.IsRegular() {
		return entity.FileColumns{}, fmt.Errorf("%w: %s", ErrSkipped, path)
	}
	local, localErr := p.fsys.IsLocal(path)
	if localErr != nil {
		return entity.FileColumns{}, localErr
	}
	if !local {
		return entity.FileColumns{}, fmt.Errorf("%w: %s", ErrNotLocal, path)
	}
	identification := p.identifier.Identify(ctx, path)
	checksum, checksumErr := service.ComputeChecksum(path, p.algorithm)
	if checksumErr != nil {
		return entity.FileColumns{}, checksumErr
	}
	return entity.FileColumns{
		Path:       path,
		Name:       info.Name,
		Size:       info.Size,
		FormatID:   orPlaceholder(identification.Identifier),
		FormatName: orPlaceholder(identification.DisplayName),
		FormatURI:  orPlaceholder(identification.ReferenceURI),
		Checksum:   checksum,
		Algorithm:  p.algorithm,
	}, nil
}

// List computes the columns for the immediate entries of dirPath, one file after the other.
// Skipped entries are left out. Files whose checksum failed are left out too and their
// errors are combined into the returned error.
func (p *Provider) List(ctx context.Context, dirPath string) ([]entity.FileColumns, error) {
	entries, err := p.fsys.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}
	rows := make([]entity.FileColumns, 0, len(entries))
	var errs []error
	for _, e := range entries {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if e.IsDir {
			continue
		}
		row, rowErr := p.FileInfo(ctx, e.Path)
		if errors.Is(rowErr, ErrSkipped) || errors.Is(rowErr, ErrNotLocal) {
			fmte.PrintfErrV("skipping \"%s\": %v\n", e.Path, rowErr)
			continue
		}
		if rowErr != nil {
			errs = append(errs, rowErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, fmte.Errors(fmt.Sprintf("error(s) while listing %s", dirPath), errs)
}

func orPlaceholder(value string) string {
	if value == "" {
		return Placeholder
	}
	return value
}
