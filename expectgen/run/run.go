// Package run implements the expectgen tool in a testable way.
package run

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/dave/dst"
	detect "github.com/toejough/impmock/expectgen/run/3_detect"
	generate "github.com/toejough/impmock/expectgen/run/5_generate"
	output "github.com/toejough/impmock/expectgen/run/6_output"
)

// FileSystem writes generated files.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader parses a package by import path. "." is the package being
// generated into.
type PackageLoader interface {
	Load(importPath string) ([]*dst.File, *token.FileSet, error)
}

// Run executes expectgen. args are the process arguments, getEnv reads the
// GOPACKAGE and GOFILE variables go generate sets. On success a typed mock for
// the named interface is written next to the calling file.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	localFiles, _, err := pkgLoader.Load(".")
	if err != nil {
		return fmt.Errorf("failed to load current package: %w", err)
	}

	qualifier, ifaceName := splitQualified(parsed.Interface)

	iface, err := findInterface(localFiles, qualifier, ifaceName, pkgLoader)
	if err != nil {
		return err
	}

	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		pkgName = localFiles[0].Name.Name
	}

	mockName := parsed.Name
	if mockName == "" {
		mockName = ifaceName + "Mock"
	}

	code, err := generate.Mock(generate.Request{
		PkgName:   pkgName,
		MockName:  mockName,
		Qualifier: qualifier,
		Interface: iface,
	})
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", mockName, err)
	}

	filename := output.FileName(mockName, pkgName, getEnv("GOFILE"))

	return output.WriteGeneratedCode(code, filename, fileSys, out)
}

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"interface to mock (e.g. DB or db.DB)"`
	Name      string `arg:"--name"              help:"name for the generated mock (defaults to <Interface>Mock)"`
}

func findInterface(
	localFiles []*dst.File, qualifier, ifaceName string, pkgLoader PackageLoader,
) (detect.Interface, error) {
	if qualifier == "" {
		return detect.FindInterface(localFiles, ifaceName, detect.PackageRef{})
	}

	importPath, err := detect.FindImportPath(localFiles, qualifier)
	if err != nil {
		return detect.Interface{}, err
	}

	files, _, err := pkgLoader.Load(importPath)
	if err != nil {
		return detect.Interface{}, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return detect.FindInterface(files, ifaceName, detect.PackageRef{Qualifier: qualifier, Path: importPath})
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "expectgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// splitQualified splits "db.DB" into ("db", "DB").
func splitQualified(name string) (string, string) {
	qualifier, local, found := strings.Cut(name, ".")
	if !found {
		return "", name
	}

	return qualifier, local
}
