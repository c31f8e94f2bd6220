// expectgen generates typed mocks for Go interfaces on top of impmock.
// Install it with `go install github.com/toejough/impmock/expectgen@latest` and
// add `//go:generate expectgen <Interface>` next to the test that needs the
// mock. The mock is named <Interface>Mock unless `--name <MockName>` is given,
// and is written to generated_<MockName>.go (generated_<MockName>_test.go for
// test packages and test files) in the package holding the directive.
// Interfaces from imported packages are named with their package: `expectgen db.DB`.
package main

import (
	"fmt"
	"go/token"
	"os"

	"github.com/dave/dst"
	"github.com/toejough/impmock/expectgen/run"
	load "github.com/toejough/impmock/expectgen/run/2_load"
)

func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements run.PackageLoader with direct DST parsing.
type realPackageLoader struct{}

func (pl *realPackageLoader) Load(importPath string) ([]*dst.File, *token.FileSet, error) {
	files, fset, err := load.PackageDST(importPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return files, fset, nil
}
