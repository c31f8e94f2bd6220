package core_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/impmock/internal/core"
	"github.com/toejough/impmock/match"
)

func TestMock_ExpectsCreatesCallableMember(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock(t, core.WithParams("targ1", "targ2"))
	member := mock.Expects("testfn", core.WithParams("targ1", "targ2"))
	member.On(5).Returns(9)

	g.Expect(mock.Invoke("testfn", 5)).To(Equal(9))
	g.Expect(mock.Member("testfn")).To(BeIdenticalTo(member))
	g.Expect(mock.Verify()).To(Succeed())
}

func TestMock_ExecSQLScenario(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	errBad := errors.New("bad")

	mock := core.NewMock(t)
	execSQL := mock.Expects("exec_sql")
	execSQL.On(match.Like(`select \* from table where id=5`)).Returns("some columns")
	execSQL.On(match.Like(`select \* from table where id=6`)).Raises(errBad)
	execSQL.On(match.Like(`select \* from table where id=[0-9]`)).Returns("some more columns")

	g.Expect(mock.Invoke("exec_sql", "select * from table where id=5")).To(Equal("some columns"))
	g.Expect(mock.Invoke("exec_sql", "select * from table where id=1")).To(Equal("some more columns"))
	g.Expect(mock.Invoke("exec_sql", "select * from table where id=7")).To(Equal("some more columns"))

	_, err := mock.Invoke("exec_sql", "select * from table where id=6")
	g.Expect(err).To(BeIdenticalTo(errBad))

	g.Expect(mock.Verify()).To(Succeed())
	g.Expect(execSQL.CallCount()).To(Equal(4))
}

func TestMock_VerifyPropagatesToMembers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock(t)
	member := mock.Expects("memfn")
	member.Never()

	g.Expect(mock.Verify()).To(Succeed())
	g.Expect(member.Verify()).To(Succeed())

	_, _ = mock.Invoke("memfn")

	g.Expect(mock.Verify()).To(MatchError(core.ErrVerification))
	g.Expect(member.Verify()).To(MatchError(core.ErrVerification))
}

func TestMock_VerifyMembersBeforeOwnChecks(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock(t, core.WithName("db"))
	mock.Once()
	mock.Expects("first").Once()
	mock.Expects("second").Once()

	var verr *core.VerificationError

	g.Expect(errors.As(mock.Verify(), &verr)).To(BeTrue())
	g.Expect(verr.Name).To(Equal("db.first"))

	_, _ = mock.Invoke("first")
	g.Expect(errors.As(mock.Verify(), &verr)).To(BeTrue())
	g.Expect(verr.Name).To(Equal("db.second"))

	_, _ = mock.Invoke("second")
	g.Expect(errors.As(mock.Verify(), &verr)).To(BeTrue())
	g.Expect(verr.Name).To(Equal("db"))

	_, _ = mock.Call()
	g.Expect(mock.Verify()).To(Succeed())
}

func TestMock_NestedMembersCompose(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock(t, core.WithName("client"))
	users := mock.Expects("users")
	get := users.Expects("get", core.WithParams("id"))
	get.On(1).Returns("root")
	get.AtLeast(1)

	g.Expect(mock.Verify()).To(MatchError(ContainSubstring("client.users.get was called 0 time(s)")))

	g.Expect(mock.Member("users").Invoke("get", core.Named{"id": 1})).To(Equal("root"))
	g.Expect(mock.Verify()).To(Succeed())
}

func TestMock_ReRegistrationReplacesInPlace(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock(t)
	first := mock.Expects("a").Returns(1)
	mock.Expects("b")
	mock.Expects("a").Returns(2)

	g.Expect(mock.Members()).To(Equal([]string{"a", "b"}))
	g.Expect(mock.Member("a")).NotTo(BeIdenticalTo(first))
	g.Expect(mock.Invoke("a")).To(Equal(2))
}

func TestMock_LookupOrExpectsKeepsExistingMember(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock(t, core.WithName("db"))
	query := mock.Expects("query").Returns("rows")

	g.Expect(mock.LookupOrExpects("query", core.WithParams("sql"))).To(BeIdenticalTo(query))
	g.Expect(mock.Invoke("query")).To(Equal("rows"))

	exec := mock.LookupOrExpects("exec", core.WithParams("sql"))
	g.Expect(exec.Name()).To(Equal("db.exec"))
	g.Expect(exec.Params()).To(Equal([]string{"sql"}))
	g.Expect(mock.Members()).To(Equal([]string{"query", "exec"}))
}

func TestMock_ConfigurationChainsStayOnTheMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock(t, core.WithName("db"))
	mock.Expects("close").Never()
	_, _ = mock.Invoke("close")

	_, _ = mock.Call()

	// Verify at the end of the chain still covers the members.
	err := mock.Returns("self").Once().Verify()
	g.Expect(err).To(MatchError(ContainSubstring("db.close was called 1 time(s)")))

	chained := mock.AtLeast(1).Times(1).CalledWith().Never().Raises(errors.New("x")).Panics(nil).AddCheck(core.CalledAtLeast{N: 0})
	g.Expect(chained).To(BeIdenticalTo(mock))
}

func TestMock_UnknownMember(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &fakeReporter{}
	mock := core.NewMock(reporter, core.WithName("db"))
	mock.Expects("query")

	member := mock.Member("exec")
	g.Expect(member).NotTo(BeNil())
	g.Expect(reporter.Fatals()).To(ConsistOf(And(
		ContainSubstring(`unknown member: "exec"`),
		ContainSubstring("[query]"),
	)))

	_, ok := mock.Lookup("exec")
	g.Expect(ok).To(BeFalse())
}

func TestMock_RestoreDropsMembers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock(t, core.WithName("db"))
	member := mock.Expects("query").Never()
	_, _ = mock.Invoke("query")
	mock.Returns("self").Once()

	g.Expect(mock.Verify()).NotTo(Succeed())
	g.Expect(mock.Restore()).To(BeIdenticalTo(mock))

	_, ok := mock.Lookup("query")
	g.Expect(ok).To(BeFalse())
	g.Expect(mock.Members()).To(BeEmpty())
	g.Expect(mock.Verify()).To(Succeed())
	g.Expect(mock.Call()).To(BeNil())
	g.Expect(mock.Name()).To(Equal("db"))

	// The detached member keeps working for whoever still holds it.
	g.Expect(member.CallCount()).To(Equal(1))
}

func TestMock_MembersInheritLogging(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &fakeReporter{}
	mock := core.NewMock(reporter, core.WithName("db"), core.WithLogging())
	mock.Expects("query", core.WithParams("sql"))

	_, _ = mock.Invoke("query", "select 1")

	g.Expect(reporter.Logs()).To(ConsistOf(`db.query{sql: "select 1"}: default response`))
}

func TestMock_AutoVerifyCoversMembers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &fakeReporter{}
	mock := core.NewMock(reporter, core.WithAutoVerify())
	mock.Expects("fn").Never()
	_, _ = mock.Invoke("fn")

	reporter.runCleanups()
	g.Expect(reporter.Fatals()).To(ConsistOf(ContainSubstring("fn was called 1 time(s)")))
}

func TestMock_MemberSignatureFromStruct(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type execArgs struct {
		Query string `param:"query"`
		Limit int    `param:"limit"`
	}

	mock := core.NewMock(t)
	exec := mock.Expects("exec", core.WithSignature[execArgs]())
	exec.On(core.Named{"query": match.Like("select"), "limit": 10}).Returns("rows")

	g.Expect(exec.Params()).To(Equal([]string{"query", "limit"}))
	g.Expect(mock.Invoke("exec", "select 1", 10)).To(Equal("rows"))
	g.Expect(mock.Invoke("exec", "select 1", core.Named{"limit": 10})).To(Equal("rows"))
	g.Expect(mock.Invoke("exec", "delete", 10)).To(BeNil())
}
