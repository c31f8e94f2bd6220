package generate

import (
	"text/template"
)

//nolint:gochecknoglobals // Parsed once, read-only afterwards
var mockTmpl = template.Must(template.New("mock").Parse(tmplMock))

const tmplMock = `// Code generated by expectgen. DO NOT EDIT.

package {{.PkgName}}

import (
	"github.com/toejough/impmock"
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.MockName}} is a recording, programmable {{.InterfaceRef}}.
type {{.MockName}} struct {
	Mock *impmock.Mock
}

// New{{.MockName}} returns a {{.MockName}} with one member per method of {{.InterfaceRef}}.
func New{{.MockName}}(t impmock.TestReporter, opts ...impmock.Option) *{{.MockName}} {
	m := &{{.MockName}}{
		Mock: impmock.NewMock(t, append([]impmock.Option{impmock.WithName("{{.DisplayName}}")}, opts...)...),
	}
{{range .Methods}}
	m.Expect{{.Name}}()
{{- end}}

	return m
}

var _ {{.InterfaceRef}} = (*{{.MockName}})(nil)
{{range .Methods}}
// Expect{{.Name}} returns the member that backs {{.Name}}.
func (m *{{$.MockName}}) Expect{{.Name}}() *impmock.Mock {
	return m.Mock.LookupOrExpects("{{.Name}}", impmock.WithParams({{.ParamNames}}))
}

// {{.Name}} records the call and answers as configured on Expect{{.Name}}.
func (m *{{$.MockName}}) {{.Name}}({{.Signature}}){{.Results}} {
	{{.ValueVar}}, err := m.Expect{{.Name}}().Call({{.CallArgs}})
{{- if .HasError}}
	if err != nil {
		return {{.ZeroReturn}}err
	}
{{- else}}
	if err != nil {
		panic(err)
	}
{{- end}}
{{- if .Unpack}}

	results := impmock.Unpack(value, {{len .ValueResults}})
{{- end}}
{{- if .Returns}}

	return {{.ReturnList}}
{{- end}}
}
{{end}}`
