// Package output writes generated mocks to disk.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toejough/go-reorder"
)

// Writer writes generated files.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// FileName returns generated_<mockName>.go, or generated_<mockName>_test.go
// when the mock is generated for a test package or from a _test.go file.
func FileName(mockName, pkgName, goFile string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(mockName, ".go"), "_test")

	if strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go") {
		return "generated_" + base + "_test.go"
	}

	return "generated_" + base + ".go"
}

// WriteGeneratedCode reorders code into the conventional declaration order and
// writes it to filename. A reorder failure is reported on out and the code is
// written as generated.
func WriteGeneratedCode(code, filename string, fileWriter Writer, out io.Writer) error {
	const generatedFilePermissions = 0o600

	reordered, err := reorder.Source(code)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileWriter.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}
