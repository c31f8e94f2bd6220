// Package generate renders typed mock wrappers over impmock.Mock.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strconv"
	"strings"

	detect "github.com/toejough/impmock/expectgen/run/3_detect"
)

// Request describes one mock to generate.
type Request struct {
	PkgName   string // package the generated file belongs to
	MockName  string
	Qualifier string // interface package name when it is not PkgName
	Interface detect.Interface
}

// Mock renders the source of a typed mock for req.Interface.
func Mock(req Request) (string, error) {
	err := checkNames(req)
	if err != nil {
		return "", err
	}

	data := mockData{
		PkgName:      req.PkgName,
		MockName:     req.MockName,
		DisplayName:  req.Interface.Name,
		InterfaceRef: req.Interface.Name,
		Imports:      req.Interface.Imports,
	}

	if req.Qualifier != "" {
		data.InterfaceRef = req.Qualifier + "." + req.Interface.Name
	}

	for _, method := range req.Interface.Methods {
		data.Methods = append(data.Methods, newMethodData(method))
	}

	var buf bytes.Buffer

	err = mockTmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("error executing mock template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("error formatting generated code: %w", err)
	}

	return string(formatted), nil
}

// ErrNameCollision reports an interface whose method names clash with the
// generated accessors.
var ErrNameCollision = errors.New("method name collides with generated code")

type methodData struct {
	Name         string
	ParamNames   string
	Signature    string
	Results      string
	CallArgs     string
	ValueVar     string
	HasError     bool
	ZeroReturn   string
	Unpack       bool
	ValueResults []string
	Returns      bool
	ReturnList   string
}

type mockData struct {
	PkgName      string
	MockName     string
	DisplayName  string
	InterfaceRef string
	Imports      []detect.Import
	Methods      []methodData
}

//nolint:gochecknoglobals // Locals of the generated method bodies
var reservedLocals = map[string]bool{"m": true, "value": true, "err": true, "results": true}

func checkNames(req Request) error {
	names := map[string]bool{}
	for _, method := range req.Interface.Methods {
		names[method.Name] = true
	}

	for _, method := range req.Interface.Methods {
		if method.Name == "Mock" || names["Expect"+method.Name] {
			return fmt.Errorf("%w: %s.%s", ErrNameCollision, req.Interface.Name, method.Name)
		}
	}

	return nil
}

//nolint:funlen // Straight-line assembly of template fields
func newMethodData(method detect.Method) methodData {
	var (
		quoted    []string
		signature []string
		locals    []string
	)

	for _, param := range method.Params {
		local := param.Name
		if reservedLocals[local] {
			local += "Arg"
		}

		typ := param.Type
		if param.Variadic {
			typ = "..." + typ
		}

		quoted = append(quoted, strconv.Quote(param.Name))
		signature = append(signature, local+" "+typ)
		locals = append(locals, local)
	}

	values := method.ValueResults()
	data := methodData{
		Name:         method.Name,
		ParamNames:   strings.Join(quoted, ", "),
		Signature:    strings.Join(signature, ", "),
		CallArgs:     strings.Join(locals, ", "),
		ValueVar:     "_",
		HasError:     method.HasErrorResult(),
		Unpack:       len(values) > 1,
		ValueResults: values,
		Returns:      len(method.Results) > 0,
	}

	switch len(method.Results) {
	case 0:
	case 1:
		data.Results = " " + method.Results[0]
	default:
		data.Results = " (" + strings.Join(method.Results, ", ") + ")"
	}

	if len(values) > 0 {
		data.ValueVar = "value"
	}

	var zeros, returns []string

	for i, typ := range values {
		zeros = append(zeros, "impmock.ResultAs["+typ+"](nil), ")

		switch {
		case data.Unpack:
			returns = append(returns, fmt.Sprintf("impmock.ResultAs[%s](results[%d])", typ, i))
		default:
			returns = append(returns, "impmock.ResultAs["+typ+"](value)")
		}
	}

	if data.HasError {
		returns = append(returns, "nil")
	}

	data.ZeroReturn = strings.Join(zeros, "")
	data.ReturnList = strings.Join(returns, ", ")

	return data
}
