// Package load parses Go packages into DST files.
package load

import (
	"errors"
	"fmt"
	"go/build"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// PackageDST parses the package at importPath. "." is the working directory,
// and only there are _test.go files included: an interface declared in a test
// file can be mocked from the same package, but test files of other packages
// are never needed.
func PackageDST(importPath string) ([]*dst.File, *token.FileSet, error) {
	dir, err := resolveDir(importPath)
	if err != nil {
		return nil, nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	includeTests := importPath == "."
	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}

		if !includeTests && strings.HasSuffix(name, "_test.go") {
			continue
		}

		file, err := dec.ParseFile(filepath.Join(dir, name), nil, 0)
		if err != nil {
			// a half-written file elsewhere in the package should not block generation
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: no parseable .go files in %s", errNoPackagesFound, dir)
	}

	return files, fset, nil
}

// resolveDir maps an import path to a directory on disk.
func resolveDir(importPath string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if importPath == "." {
		return cwd, nil
	}

	pkg, err := build.Import(importPath, cwd, build.FindOnly)
	if err != nil {
		return "", fmt.Errorf("failed to find package %q: %w", importPath, err)
	}

	return pkg.Dir, nil
}

// unexported variables.
var (
	errNoPackagesFound = errors.New("no packages found")
)
