// Package detect finds the interface to mock and flattens its method set.
package detect

import (
	"errors"
	"fmt"
	"go/token"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/dave/dst"
	astutil "github.com/toejough/impmock/expectgen/run/0_util"
)

// Import is one import the generated file needs.
type Import struct {
	Name string // explicit alias, empty when the path's last element is the package name
	Path string
}

// Interface is a mockable interface with its method set flattened.
type Interface struct {
	Name    string
	Methods []Method
	Imports []Import
}

// Method is one interface method in generator-ready form.
type Method struct {
	Name    string
	Params  []Param
	Results []string
}

// HasErrorResult reports whether the last result is error.
func (m Method) HasErrorResult() bool {
	return len(m.Results) > 0 && m.Results[len(m.Results)-1] == "error"
}

// ValueResults returns the results that Returns configures: all of them but a
// trailing error.
func (m Method) ValueResults() []string {
	if m.HasErrorResult() {
		return m.Results[:len(m.Results)-1]
	}

	return m.Results
}

// Param is one method parameter. Variadic parameters keep their element type
// in Type.
type Param struct {
	Name     string
	Type     string
	Variadic bool
}

// PackageRef describes where the interface was found relative to the package
// the mock is generated into.
type PackageRef struct {
	// Qualifier is the name the generated file uses for the interface's
	// package. Empty for the current package.
	Qualifier string
	// Path is the interface package's import path. Empty for the current package.
	Path string
}

// FindImportPath resolves a package name used in the current package's files
// to its import path.
func FindImportPath(files []*dst.File, pkgName string) (string, error) {
	for _, file := range files {
		for _, imp := range file.Imports {
			name, importPath := importName(imp)
			if name == pkgName {
				return importPath, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrPackageNotFound, pkgName)
}

// FindInterface locates the interface named name in files and flattens its
// methods, including those of interfaces it embeds from the same package.
func FindInterface(files []*dst.File, name string, ref PackageRef) (Interface, error) {
	decls := interfaceDecls(files)

	if _, ok := decls[name]; !ok {
		return Interface{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
	}

	var qualify astutil.Qualifier
	if ref.Qualifier != "" {
		qualify = astutil.ExportedIn(ref.Qualifier)
	}

	collector := &methodCollector{
		decls:   decls,
		qualify: qualify,
		seen:    map[string]bool{},
		imports: map[string]Import{},
	}

	err := collector.collect(name, map[string]bool{})
	if err != nil {
		return Interface{}, err
	}

	if ref.Path != "" {
		collector.imports[ref.Qualifier] = Import{Name: aliasFor(ref.Qualifier, ref.Path), Path: ref.Path}
	}

	return Interface{Name: name, Methods: collector.methods, Imports: sortedImports(collector.imports)}, nil
}

// Errors.
var (
	ErrGenericInterface  = errors.New("generic interfaces are not supported")
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrPackageNotFound   = errors.New("package not found")
	ErrUnsupportedEmbed  = errors.New("unsupported embedded interface")
)

type declaredInterface struct {
	iface *dst.InterfaceType
	spec  *dst.TypeSpec
	file  *dst.File
}

type methodCollector struct {
	decls   map[string]declaredInterface
	qualify astutil.Qualifier
	seen    map[string]bool
	methods []Method
	imports map[string]Import
}

func (c *methodCollector) collect(name string, visiting map[string]bool) error {
	decl := c.decls[name]

	if decl.spec.TypeParams != nil && len(decl.spec.TypeParams.List) > 0 {
		return fmt.Errorf("%w: %s", ErrGenericInterface, name)
	}

	if visiting[name] {
		return nil
	}

	visiting[name] = true

	if decl.iface.Methods == nil {
		return nil
	}

	for _, field := range decl.iface.Methods.List {
		funcType, isMethod := field.Type.(*dst.FuncType)
		if !isMethod {
			embedded, ok := field.Type.(*dst.Ident)
			if !ok {
				return fmt.Errorf("%w: %s in %s", ErrUnsupportedEmbed, astutil.TypeString(field.Type, nil), name)
			}

			if embedded.Name == "error" {
				if !c.seen["Error"] {
					c.seen["Error"] = true
					c.methods = append(c.methods, Method{Name: "Error", Results: []string{"string"}})
				}

				continue
			}

			if _, known := c.decls[embedded.Name]; !known {
				return fmt.Errorf("%w: %s in %s", ErrUnsupportedEmbed, embedded.Name, name)
			}

			err := c.collect(embedded.Name, visiting)
			if err != nil {
				return err
			}

			continue
		}

		methodName := field.Names[0].Name
		if c.seen[methodName] {
			continue
		}

		c.seen[methodName] = true
		c.methods = append(c.methods, c.method(methodName, funcType, decl.file))
	}

	return nil
}

func (c *methodCollector) method(name string, funcType *dst.FuncType, file *dst.File) Method {
	method := Method{Name: name}

	if funcType.Params != nil {
		for _, field := range funcType.Params.List {
			c.noteImports(field.Type, file)

			typeExpr := field.Type
			variadic := false

			if ellipsis, ok := typeExpr.(*dst.Ellipsis); ok {
				typeExpr = ellipsis.Elt
				variadic = true
			}

			typeStr := astutil.TypeString(typeExpr, c.qualify)

			if len(field.Names) == 0 {
				method.Params = append(method.Params, Param{Type: typeStr, Variadic: variadic})

				continue
			}

			for _, ident := range field.Names {
				method.Params = append(method.Params, Param{Name: ident.Name, Type: typeStr, Variadic: variadic})
			}
		}
	}

	for i := range method.Params {
		if method.Params[i].Name == "" || method.Params[i].Name == "_" {
			method.Params[i].Name = "arg" + strconv.Itoa(i)
		}
	}

	if funcType.Results != nil {
		for _, field := range funcType.Results.List {
			c.noteImports(field.Type, file)

			typeStr := astutil.TypeString(field.Type, c.qualify)
			for range max(len(field.Names), 1) {
				method.Results = append(method.Results, typeStr)
			}
		}
	}

	return method
}

// noteImports records the imports of file that expr refers to.
func (c *methodCollector) noteImports(expr dst.Expr, file *dst.File) {
	for _, pkgName := range astutil.Selectors(expr) {
		for _, imp := range file.Imports {
			name, importPath := importName(imp)
			if name == pkgName {
				c.imports[name] = Import{Name: aliasFor(name, importPath), Path: importPath}
			}
		}
	}
}

// aliasFor returns name when the import needs an explicit alias.
func aliasFor(name, importPath string) string {
	if path.Base(importPath) == name {
		return ""
	}

	return name
}

// importName returns the name an import is referred to by, and its path.
func importName(imp *dst.ImportSpec) (string, string) {
	importPath, err := strconv.Unquote(imp.Path.Value)
	if err != nil {
		importPath = strings.Trim(imp.Path.Value, `"`)
	}

	if imp.Name != nil {
		return imp.Name.Name, importPath
	}

	return path.Base(importPath), importPath
}

func interfaceDecls(files []*dst.File) map[string]declaredInterface {
	decls := map[string]declaredInterface{}

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, isTypeSpec := spec.(*dst.TypeSpec)
				if !isTypeSpec {
					continue
				}

				if iface, isIface := typeSpec.Type.(*dst.InterfaceType); isIface {
					decls[typeSpec.Name.Name] = declaredInterface{iface: iface, spec: typeSpec, file: file}
				}
			}
		}
	}

	return decls
}

func sortedImports(imports map[string]Import) []Import {
	out := make([]Import, 0, len(imports))
	for _, imp := range imports {
		out = append(out, imp)
	}

	slices.SortFunc(out, func(a, b Import) int { return strings.Compare(a.Path, b.Path) })

	return out
}
