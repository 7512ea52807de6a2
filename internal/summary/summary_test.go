package summary_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/LogTriage/internal/domain"
	"github.com/fjglira/LogTriage/internal/summary"
)

var _ = Describe("Extract", func() {
	It("should read date and time from the first timestamp", func() {
		s := summary.Extract("run.log", []string{"header", "2025-07-08 14:10:22 start", "2025/07/09 00:00:00 later"})
		Expect(s.TestDate).To(Equal("2025/07/08"))
		Expect(s.TestTime).To(Equal("14:10:22"))
	})

	It("should fall back to the stamp in the file name", func() {
		s := summary.Extract("1+Funtion-WE33-20250708141022-PASS.log", []string{"no time here"})
		Expect(s.TestDate).To(Equal("2025/07/08"))
		Expect(s.TestTime).To(Equal("14:10:22"))
	})

	It("should leave unknown fields empty", func() {
		s := summary.Extract("run.log", []string{"nothing"})
		Expect(s).To(Equal(domain.FileSummary{}))
		Expect(summary.FormatDuration(s)).To(BeEmpty())
	})

	DescribeTable("power state",
		func(line, want string) {
			Expect(summary.Extract("x.log", []string{line}).OnOff).To(Equal(want))
		},
		Entry("power mode header", "Power Mode: ON", "ON"),
		Entry("on/off header", "ON/OFF = off", "OFF"),
		Entry("power command", `> :Power,"OFF"`, "OFF"),
		Entry("unrelated", "Powered by coffee", ""),
	)

	It("should prefer an explicit total duration", func() {
		s := summary.Extract("x.log", []string{"----- 1.5 Sec.", "Total test time: 8.0 s"})
		Expect(s.HasDuration).To(BeTrue())
		Expect(s.DurationSeconds).To(Equal(8.0))
	})

	It("should sum step timings without a total", func() {
		s := summary.Extract("x.log", []string{"----- 1.5 Sec.", "----- 2 Sec.", "----- 0.5 Sec."})
		Expect(s.HasDuration).To(BeTrue())
		Expect(s.DurationSeconds).To(Equal(4.0))
	})
})

var _ = Describe("FormatDuration", func() {
	DescribeTable("renders seconds",
		func(secs float64, want string) {
			Expect(summary.FormatDuration(domain.FileSummary{DurationSeconds: secs, HasDuration: true})).To(Equal(want))
		},
		Entry("seconds", 12.5, "12.5s"),
		Entry("minutes", 123.5, "2m3.5s"),
		Entry("hours", 3723.0, "1h02m03s"),
	)
})

var _ = Describe("Grouping", func() {
	step := func(name string) domain.TestStep {
		return domain.TestStep{StepName: name, Result: domain.ResultPass}
	}
	failStep := func(name, reason string) domain.TestStep {
		return domain.TestStep{StepName: name, Result: domain.ResultFail, ErrorReason: reason}
	}
	file := func(name string, pass []domain.TestStep, fail []domain.TestStep) *domain.ParseResult {
		r := domain.NewEmptyResult(name)
		r.LogType = domain.LogTypePass
		r.PassItems = pass
		if fail != nil {
			r.LogType = domain.LogTypeFail
			r.FailItems = fail
		}
		return r
	}

	var files []*domain.ParseResult

	BeforeEach(func() {
		files = []*domain.ParseResult{
			file("a-PASS.log", []domain.TestStep{step("A"), step("B")}, nil),
			file("b-FAIL.log", []domain.TestStep{step("A")}, []domain.TestStep{failStep("B", "fan is Fail")}),
			file("c-PASS.log", []domain.TestStep{step("B"), step("A")}, nil),
			file("d-PASS.log", []domain.TestStep{step("A"), step("B")}, nil),
			file("e-FAIL.log", nil, []domain.TestStep{failStep("X", "fan is Fail"), failStep("Y", "other")}),
			file("f-FAIL.log", nil, []domain.TestStep{failStep("Z", "NACK")}),
		}
	})

	It("should group passing files by their ordered step names", func() {
		groups := summary.GroupPassFiles(files)
		Expect(groups).To(HaveLen(2))
		Expect(groups[0].StepNames).To(Equal([]string{"A", "B"}))
		Expect(groups[0].Files).To(HaveLen(2))
		Expect(groups[0].Files[1].SourceFile).To(Equal("d-PASS.log"))
		Expect(groups[1].StepNames).To(Equal([]string{"B", "A"}))
	})

	It("should group failing files by their first FAIL reason", func() {
		groups := summary.GroupFailFiles(files)
		Expect(groups).To(HaveLen(2))
		Expect(groups[0].Reason).To(Equal("fan is Fail"))
		Expect(groups[0].Files).To(HaveLen(2))
		Expect(groups[1].Reason).To(Equal("NACK"))
	})

	It("should put every file on exactly one side", func() {
		pass, fail := 0, 0
		for _, g := range summary.GroupPassFiles(files) {
			pass += len(g.Files)
		}
		for _, g := range summary.GroupFailFiles(files) {
			fail += len(g.Files)
		}
		Expect(pass + fail).To(Equal(len(files)))
	})

	It("should leave unreadable and empty files out of both sides", func() {
		unreadable := domain.NewEmptyResult("gone-PASS.log")
		empty := domain.NewEmptyResult("b-FAIL.log")
		empty.LogType = domain.LogTypeFail
		files = append(files, unreadable, empty)

		for _, g := range summary.GroupPassFiles(files) {
			Expect(g.StepNames).NotTo(BeEmpty())
			Expect(g.Files).NotTo(ContainElement(unreadable))
			Expect(g.Files).NotTo(ContainElement(empty))
		}
		for _, g := range summary.GroupFailFiles(files) {
			Expect(g.Files).NotTo(ContainElement(unreadable))
			Expect(g.Files).NotTo(ContainElement(empty))
		}
		Expect(summary.GroupPassFiles(files)).To(HaveLen(2))
		Expect(summary.IsPassFile(unreadable)).To(BeFalse())
		Expect(summary.IsFailFile(unreadable)).To(BeFalse())
		Expect(summary.IsPassFile(empty)).To(BeFalse())
	})

	It("should list the members of a MULTI result", func() {
		multi := &domain.ParseResult{LogType: domain.LogTypeMulti, Files: files}
		Expect(summary.Files(multi)).To(HaveLen(len(files)))
		Expect(summary.Files(files[0])).To(Equal([]*domain.ParseResult{files[0]}))
		Expect(summary.Files(nil)).To(BeNil())
	})
})
