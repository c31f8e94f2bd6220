// Package astutil renders DST type expressions back to Go source.
package astutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/dst"
)

// Qualifier rewrites a bare identifier found in a type expression. Mocks of an
// interface from another package use it to turn Row into db.Row.
type Qualifier func(name string) string

// ExportedIn returns a Qualifier that prefixes exported identifiers with pkg.
// Predeclared types are all lower case, so they pass through untouched.
func ExportedIn(pkg string) Qualifier {
	return func(name string) string {
		if name == "" || !unicode.IsUpper([]rune(name)[0]) {
			return name
		}

		return pkg + "." + name
	}
}

// Selectors returns the package names referenced by selector expressions
// (the "io" in io.Reader) anywhere inside expr.
func Selectors(expr dst.Expr) []string {
	var names []string

	dst.Inspect(expr, func(node dst.Node) bool {
		sel, ok := node.(*dst.SelectorExpr)
		if !ok {
			return true
		}

		if ident, isIdent := sel.X.(*dst.Ident); isIdent {
			names = append(names, ident.Name)
		}

		return false
	})

	return names
}

// TypeString renders expr as Go source. qualify may be nil.
//
//nolint:cyclop,funlen // Type-switch dispatcher over DST expression kinds
func TypeString(expr dst.Expr, qualify Qualifier) string {
	if expr == nil {
		return ""
	}

	render := func(inner dst.Expr) string { return TypeString(inner, qualify) }

	switch typed := expr.(type) {
	case *dst.Ident:
		if qualify != nil {
			return qualify(typed.Name)
		}

		return typed.Name
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		// already qualified
		return TypeString(typed.X, nil) + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + render(typed.X)
	case *dst.ArrayType:
		if typed.Len != nil {
			return "[" + render(typed.Len) + "]" + render(typed.Elt)
		}

		return "[]" + render(typed.Elt)
	case *dst.MapType:
		return "map[" + render(typed.Key) + "]" + render(typed.Value)
	case *dst.ChanType:
		switch typed.Dir {
		case dst.SEND:
			return "chan<- " + render(typed.Value)
		case dst.RECV:
			return "<-chan " + render(typed.Value)
		default:
			return "chan " + render(typed.Value)
		}
	case *dst.Ellipsis:
		return "..." + render(typed.Elt)
	case *dst.FuncType:
		return "func" + signature(typed, qualify)
	case *dst.InterfaceType:
		if typed.Methods == nil || len(typed.Methods.List) == 0 {
			return "interface{}"
		}

		return "interface{ " + fieldList(typed.Methods.List, "; ", qualify) + " }"
	case *dst.StructType:
		if typed.Fields == nil || len(typed.Fields.List) == 0 {
			return "struct{}"
		}

		return "struct{ " + fieldList(typed.Fields.List, "; ", qualify) + " }"
	case *dst.IndexExpr:
		return render(typed.X) + "[" + render(typed.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typed.Indices))
		for i, idx := range typed.Indices {
			indices[i] = render(idx)
		}

		return render(typed.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + render(typed.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// fieldList renders struct fields or interface methods, names included.
func fieldList(fields []*dst.Field, sep string, qualify Qualifier) string {
	parts := make([]string, 0, len(fields))

	for _, field := range fields {
		names := make([]string, len(field.Names))
		for i, name := range field.Names {
			names[i] = name.Name
		}

		if funcType, ok := field.Type.(*dst.FuncType); ok && len(names) > 0 {
			parts = append(parts, names[0]+signature(funcType, qualify))

			continue
		}

		part := TypeString(field.Type, qualify)
		if len(names) > 0 {
			part = strings.Join(names, ", ") + " " + part
		}

		if field.Tag != nil {
			part += " " + field.Tag.Value
		}

		parts = append(parts, part)
	}

	return strings.Join(parts, sep)
}

// signature renders the "(params) results" part of a func type, dropping names.
func signature(funcType *dst.FuncType, qualify Qualifier) string {
	var params []string

	if funcType.Params != nil {
		params = typesOf(funcType.Params.List, qualify)
	}

	out := "(" + strings.Join(params, ", ") + ")"

	if funcType.Results == nil {
		return out
	}

	results := typesOf(funcType.Results.List, qualify)

	switch len(results) {
	case 0:
		return out
	case 1:
		return out + " " + results[0]
	default:
		return out + " (" + strings.Join(results, ", ") + ")"
	}
}

// typesOf expands "a, b int" into one type per name.
func typesOf(fields []*dst.Field, qualify Qualifier) []string {
	var parts []string

	for _, field := range fields {
		typeStr := TypeString(field.Type, qualify)

		count := max(len(field.Names), 1)
		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}
