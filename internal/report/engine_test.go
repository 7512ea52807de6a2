package report_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/LogTriage/internal/compare"
	"github.com/fjglira/LogTriage/internal/domain"
	"github.com/fjglira/LogTriage/internal/parser"
	"github.com/fjglira/LogTriage/internal/report"
	"github.com/fjglira/LogTriage/internal/summary"
)

func sampleData() report.Data {
	passFile := domain.NewEmptyResult("a-PASS.log")
	passFile.LogType = domain.LogTypePass
	passFile.PassItems = []domain.TestStep{
		{StepName: "CheckPower", Command: ":Power", Result: "PASS", SourceFile: "a-PASS.log"},
		{StepName: "ReadVersion", Command: ":Ver?", Result: "PASS (Retry 2)", RetryCount: 2, SourceFile: "a-PASS.log"},
	}
	passFile.Summary = domain.FileSummary{TestDate: "2025/07/08", TestTime: "14:10:22", OnOff: "ON"}

	failFile := domain.NewEmptyResult("b-FAIL.log")
	failFile.LogType = domain.LogTypeFail
	failFile.FailItems = []domain.TestStep{{
		StepName:    "CheckFirmware",
		Command:     ":Fw?",
		Response:    "V0.9",
		Result:      "FAIL",
		ErrorReason: "Check | Firmware version is Fail",
		FullLog:     []string{"Do @STEP002@CheckFirmware", "> :Fw?", "< V0.9", "Check | Firmware version is Fail"},
		SourceFile:  "b-FAIL.log",
	}}

	multi := parser.Aggregate([]*domain.ParseResult{passFile, failFile})
	files := summary.Files(multi)
	cmp := []compare.Entry{{TestID: "T-1", Status: compare.StatusNotExecuted, Note: "腳本中有但未執行"}}
	now := time.Date(2025, 7, 8, 15, 4, 5, 0, time.UTC)
	return report.NewData("Log Analysis Report", multi, summary.GroupPassFiles(files), summary.GroupFailFiles(files),
		cmp, parser.DefaultPatterns().Exchanges, now)
}

var _ = Describe("NewData", func() {
	It("should count steps and collect failures with exchanges", func() {
		data := sampleData()
		Expect(data.GeneratedAt).To(Equal("2025-07-08 15:04:05"))
		Expect(data.Stats).To(Equal(report.Stats{Files: 2, Total: 3, Pass: 2, Fail: 1, Retry: 1}))
		Expect(data.Failures).To(HaveLen(1))
		Expect(data.Failures[0].Exchanges).To(Equal([]domain.Exchange{{Command: ":Fw?", Responses: []string{"V0.9"}}}))
	})

	It("should tolerate a nil result", func() {
		data := report.NewData("t", nil, nil, nil, nil, nil, time.Now())
		Expect(data.Stats).To(Equal(report.Stats{}))
		Expect(data.Files).To(BeEmpty())
	})
})

var _ = Describe("ReportEngine", func() {
	var engine *report.DefaultEngine

	BeforeEach(func() {
		var err error
		engine, err = report.NewEngine("", "summary")
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("ListTemplates", func() {
		It("should list the built-in template", func() {
			Expect(engine.ListTemplates()).To(ContainElement("summary"))
		})
	})

	Describe("Render", func() {
		It("should render a Markdown report", func() {
			out, err := engine.Render(sampleData(), report.FormatMarkdown)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("# Log Analysis Report"))
			Expect(out).To(ContainSubstring("| 總測試數 | 3 |"))
			Expect(out).To(ContainSubstring("| 成功率 | 66.7% |"))
			Expect(out).To(ContainSubstring("### P1 (1 個檔案, 2 個測項)"))
			Expect(out).To(ContainSubstring("CheckPower → ReadVersion"))
			Expect(out).To(ContainSubstring(`| F1 | Check \| Firmware version is Fail | b-FAIL.log |`))
			Expect(out).To(ContainSubstring("### CheckFirmware (b-FAIL.log)"))
			Expect(out).To(ContainSubstring("| :Fw? | V0.9 |"))
			Expect(out).To(ContainSubstring("   2. > :Fw?"))
			Expect(out).To(ContainSubstring("| T-1 | NOT_EXECUTED | 腳本中有但未執行 |"))
		})

		It("should render an HTML page", func() {
			out, err := engine.Render(sampleData(), report.FormatHTML)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HavePrefix("<!DOCTYPE html>"))
			Expect(out).To(ContainSubstring("<title>Log Analysis Report</title>"))
			Expect(out).To(ContainSubstring("<table>"))
			Expect(out).To(ContainSubstring("<h2>統計摘要</h2>"))
			Expect(out).To(ContainSubstring("&lt; V0.9"))
		})

		It("should render markup from log text literally", func() {
			data := sampleData()
			data.Failures = []report.Failure{{Step: domain.TestStep{
				StepName:    "<b>Bold</b>",
				Command:     "a` <img src=y onerror=alert(2)>",
				Response:    "[x](javascript:alert(3))",
				Result:      "FAIL",
				ErrorReason: "ERROR <img src=x onerror=alert(1)>",
				FullLog:     []string{"Do @STEP001@<b>Bold</b>", "ERROR <img src=x onerror=alert(1)>"},
				SourceFile:  "x-FAIL.log",
			}}}
			data.PassGroups[0].StepNames = []string{"<script>alert(4)</script>"}

			out, err := engine.Render(data, report.FormatHTML)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).ToNot(ContainSubstring("<img"))
			Expect(out).ToNot(ContainSubstring("<b>Bold"))
			Expect(out).ToNot(ContainSubstring("<script>"))
			Expect(out).ToNot(ContainSubstring(`href="javascript`))
			Expect(out).To(ContainSubstring("&lt;img src=x onerror=alert(1)&gt;"))
			Expect(out).To(ContainSubstring("&lt;b&gt;Bold&lt;/b&gt; (x-FAIL.log)</h3>"))
		})

		It("should reject an unknown format", func() {
			_, err := engine.Render(sampleData(), "pdf")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown report format"))
		})

		It("should render a report without failures", func() {
			data := sampleData()
			data.Failures = nil
			data.FailGroups = nil
			out, err := engine.Render(data, report.FormatMarkdown)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).ToNot(ContainSubstring("FAIL 明細"))
		})
	})

	Describe("template directory", func() {
		It("should let a user template override the built-in one", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "summary.md.tmpl"), []byte("custom {{ .Title }} {{ .Stats.Fail }}"), 0644)).To(Succeed())

			custom, err := report.NewEngine(dir, "summary")
			Expect(err).ToNot(HaveOccurred())
			out, err := custom.Render(sampleData(), report.FormatMarkdown)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("custom Log Analysis Report 1"))
		})

		It("should load additional templates by name", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "short.tmpl"), []byte("{{ .Stats.Total }} steps"), 0644)).To(Succeed())

			custom, err := report.NewEngine(dir, "short")
			Expect(err).ToNot(HaveOccurred())
			Expect(custom.ListTemplates()).To(ConsistOf("short", "summary"))
			out, err := custom.Render(sampleData(), report.FormatMarkdown)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("3 steps"))
		})

		It("should fail for a template that does not parse", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "broken.tmpl"), []byte("{{ .Title "), 0644)).To(Succeed())
			_, err := report.NewEngine(dir, "summary")
			Expect(err).To(HaveOccurred())
		})

		It("should fail for a missing directory", func() {
			_, err := report.NewEngine("no_such_templates", "summary")
			Expect(err).To(HaveOccurred())
		})

		It("should fail for an unknown default template", func() {
			_, err := report.NewEngine("", "nope")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("available: summary"))
		})
	})

	It("should pick the file extension from the format", func() {
		Expect(report.Extension(report.FormatHTML)).To(Equal(".html"))
		Expect(report.Extension(report.FormatMarkdown)).To(Equal(".md"))
	})
})
