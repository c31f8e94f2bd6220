package generate_test

import (
	"go/parser"
	"go/token"
	"testing"

	. "github.com/onsi/gomega"
	detect "github.com/toejough/impmock/expectgen/run/3_detect"
	generate "github.com/toejough/impmock/expectgen/run/5_generate"
)

func TestMock_CollidingNames(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, methods := range [][]detect.Method{
		{{Name: "Mock"}},
		{{Name: "Exec"}, {Name: "ExpectExec"}},
	} {
		_, err := generate.Mock(generate.Request{
			PkgName:   "p",
			MockName:  "XMock",
			Interface: detect.Interface{Name: "X", Methods: methods},
		})

		g.Expect(err).To(MatchError(generate.ErrNameCollision))
	}
}

func TestMock_ForeignInterface(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	code, err := generate.Mock(generate.Request{
		PkgName:   "app_test",
		MockName:  "StoreMock",
		Qualifier: "db",
		Interface: detect.Interface{
			Name:    "Store",
			Imports: []detect.Import{{Path: "example.com/app/db"}},
			Methods: []detect.Method{
				{Name: "Get", Params: []detect.Param{{Name: "id", Type: "int"}}, Results: []string{"*db.Row", "error"}},
			},
		},
	})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(code).To(ContainSubstring("package app_test"))
	g.Expect(code).To(ContainSubstring(`"example.com/app/db"`))
	g.Expect(code).To(ContainSubstring("var _ db.Store = (*StoreMock)(nil)"))
	g.Expect(code).To(ContainSubstring(`impmock.WithName("Store")`))
	g.Expect(code).To(ContainSubstring("return impmock.ResultAs[*db.Row](value), nil"))
	mustParse(t, code)
}

func TestMock_MethodShapes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	code, err := generate.Mock(generate.Request{
		PkgName:  "db",
		MockName: "DBMock",
		Interface: detect.Interface{
			Name:    "DB",
			Imports: []detect.Import{{Path: "context"}, {Name: "sq", Path: "database/sql"}},
			Methods: []detect.Method{
				{
					Name: "Exec",
					Params: []detect.Param{
						{Name: "ctx", Type: "context.Context"},
						{Name: "query", Type: "string"},
						{Name: "args", Type: "any", Variadic: true},
					},
					Results: []string{"sq.Result", "error"},
				},
				{Name: "Close", Results: []string{"error"}},
				{Name: "Reset", Params: []detect.Param{{Name: "value", Type: "int"}}},
				{Name: "Pair", Results: []string{"string", "int", "error"}},
				{Name: "Name", Results: []string{"string"}},
			},
		},
	})

	g.Expect(err).NotTo(HaveOccurred())
	mustParse(t, code)

	g.Expect(code).To(HavePrefix("// Code generated by expectgen. DO NOT EDIT."))
	g.Expect(code).To(ContainSubstring(`sq "database/sql"`))
	g.Expect(code).To(ContainSubstring("var _ DB = (*DBMock)(nil)"))

	// constructor registers every member up front
	g.Expect(code).To(ContainSubstring("m.ExpectExec()\n\tm.ExpectClose()"))

	// accessors carry parameter names for keyword matching
	g.Expect(code).To(ContainSubstring(`m.Mock.LookupOrExpects("Exec", impmock.WithParams("ctx", "query", "args"))`))
	g.Expect(code).To(ContainSubstring(`m.Mock.LookupOrExpects("Close", impmock.WithParams())`))

	// variadic arguments are forwarded as one slice
	g.Expect(code).To(ContainSubstring("func (m *DBMock) Exec(ctx context.Context, query string, args ...any) (sq.Result, error)"))
	g.Expect(code).To(ContainSubstring("value, err := m.ExpectExec().Call(ctx, query, args)"))
	g.Expect(code).To(ContainSubstring("return impmock.ResultAs[sq.Result](nil), err"))

	// error-only methods answer nil unless raised
	g.Expect(code).To(ContainSubstring("_, err := m.ExpectClose().Call()"))

	// no error result: raised errors panic, locals do not shadow params
	g.Expect(code).To(ContainSubstring("func (m *DBMock) Reset(valueArg int)"))
	g.Expect(code).To(ContainSubstring("m.ExpectReset().Call(valueArg)"))
	g.Expect(code).To(ContainSubstring(`impmock.WithParams("value")`))
	g.Expect(code).To(ContainSubstring("panic(err)"))

	// several value results come from Values(...)
	g.Expect(code).To(ContainSubstring("results := impmock.Unpack(value, 2)"))
	g.Expect(code).To(ContainSubstring("return impmock.ResultAs[string](results[0]), impmock.ResultAs[int](results[1]), nil"))

	g.Expect(code).To(ContainSubstring("func (m *DBMock) Name() string"))
	g.Expect(code).To(ContainSubstring("return impmock.ResultAs[string](value)\n"))
}

func mustParse(t *testing.T, code string) {
	t.Helper()

	_, err := parser.ParseFile(token.NewFileSet(), "generated.go", code, parser.AllErrors)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, code)
	}
}
