package domain_test

import (
	"errors"
	"io/fs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/LogTriage/internal/domain"
)

var _ = Describe("TestStep", func() {
	DescribeTable("PassResult",
		func(retries int, want string) {
			Expect(domain.PassResult(retries)).To(Equal(want))
		},
		Entry("no retries", 0, "PASS"),
		Entry("a single attempt", 1, "PASS"),
		Entry("retried", 3, "PASS (Retry 3)"),
	)

	It("should number log lines", func() {
		s := domain.TestStep{FullLog: []string{"a", "b"}}
		Expect(s.NumberedLog()).To(Equal("   1. a\n   2. b"))
		Expect(domain.NumberLines([]string{"x"}, "  ")).To(Equal("     1. x"))
	})

	It("should leave a consolidated log as is", func() {
		s := domain.TestStep{IsConsolidated: true, FullLog: []string{"步驟 1: Wait", "     1. Do"}}
		Expect(s.NumberedLog()).To(Equal("步驟 1: Wait\n     1. Do"))
	})

	It("should tell failed and retried steps apart", func() {
		Expect(domain.TestStep{Result: domain.ResultFail, RetryCount: 5}.Retried()).To(BeFalse())
		Expect(domain.TestStep{Result: "PASS (Retry 2)", RetryCount: 2}.Retried()).To(BeTrue())
		Expect(domain.TestStep{Result: domain.ResultFail}.Failed()).To(BeTrue())
	})
})

var _ = Describe("ParseResult", func() {
	It("should start empty", func() {
		r := domain.NewEmptyResult("x.log")
		Expect(r.LogType).To(Equal(domain.LogTypeUnknown))
		Expect(r.FailLineIdx).To(Equal(domain.NoLine))
		Expect(r.Steps()).To(BeEmpty())
		_, ok := r.FirstFailReason()
		Expect(ok).To(BeFalse())
	})

	It("should list PASS before FAIL and report the first reason", func() {
		r := domain.NewEmptyResult("x.log")
		r.PassItems = []domain.TestStep{{StepName: "A"}}
		r.FailItems = []domain.TestStep{{StepName: "B", ErrorReason: "first"}, {StepName: "C", ErrorReason: "second"}}
		Expect(r.Steps()).To(HaveLen(3))
		Expect(r.Steps()[0].StepName).To(Equal("A"))
		reason, ok := r.FirstFailReason()
		Expect(ok).To(BeTrue())
		Expect(reason).To(Equal("first"))
	})
})

var _ = Describe("LogTriageError", func() {
	It("should format phase, location, cause and hint", func() {
		err := domain.NewErrorWithSuggestion("parse", "a.log", 12, "bad line", "check the file", fs.ErrNotExist)
		Expect(err.Error()).To(Equal("[parse] a.log:12: bad line: file does not exist (hint: check the file)"))
		Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
	})

	It("should omit what is not set", func() {
		Expect(domain.NewError("config", "", 0, "oops", nil).Error()).To(Equal("[config]: oops"))
	})
})
