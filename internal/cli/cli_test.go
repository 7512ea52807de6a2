package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// run executes the root command with args and returns what it printed.
func run(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

var _ = Describe("CLI", func() {
	var (
		testdata = filepath.Join("..", "..", "testdata")
		logs     = filepath.Join(testdata, "logs")
		failLog  = filepath.Join(logs, "2+Function-WE33-20250708150000-FAIL.log")
	)

	BeforeEach(func() {
		resetFlags(rootCmd)
	})

	Describe("validate", func() {
		It("should accept a valid config", func() {
			out, err := run("validate", "-c", filepath.Join(testdata, "configs", "full.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("is valid"))
		})

		It("should fail for a missing config", func() {
			_, err := run("validate", "-c", "nonexistent.yaml")
			Expect(err).To(MatchError(ContainSubstring("failed to load config")))
		})
	})

	Describe("analyze", func() {
		It("should fall back to defaults and write the outputs", func() {
			dir := GinkgoT().TempDir()
			out, err := run("analyze", logs, "-o", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("PASS: 8  FAIL: 1"))
			Expect(out).To(ContainSubstring("Workbook: " + dir))
			Expect(out).To(ContainSubstring("Report:"))
		})

		It("should honor --no-workbook and --report none", func() {
			dir := GinkgoT().TempDir()
			out, err := run("analyze", failLog, "-o", dir, "--no-workbook", "--report", "none")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("PASS: 2  FAIL: 1"))
			Expect(out).ToNot(ContainSubstring("Workbook:"))
			Expect(out).ToNot(ContainSubstring("Report:"))
		})

		It("should not write files with --dry-run", func() {
			dir := filepath.Join(GinkgoT().TempDir(), "out")
			out, err := run("analyze", logs, "-o", dir, "--dry-run")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).ToNot(ContainSubstring("Workbook:"))
			Expect(dir).ToNot(BeADirectory())
		})

		It("should reject an invalid report format", func() {
			_, err := run("analyze", logs, "--report", "pdf")
			Expect(err).To(MatchError(ContainSubstring("output.report")))
		})

		It("should write to logging.file and close it afterwards", func() {
			dir := GinkgoT().TempDir()
			logPath := filepath.Join(dir, "run.log")
			cfgPath := filepath.Join(dir, "logtriage.yaml")
			Expect(os.WriteFile(cfgPath, []byte("logging:\n  level: info\n  file: "+logPath+"\n"), 0644)).To(Succeed())

			_, err := run("analyze", failLog, "-c", cfgPath, "--dry-run")
			Expect(err).ToNot(HaveOccurred())
			Expect(logFile).ToNot(BeNil())
			Expect(logFile.Name()).To(Equal(logPath))

			Expect(closeLogFile()).To(Succeed())
			Expect(logFile).To(BeNil())
			Expect(closeLogFile()).To(Succeed())

			content, err := os.ReadFile(logPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(content)).To(ContainSubstring("DRY-RUN"))
		})

		It("should fail when an explicit config is missing", func() {
			_, err := run("analyze", logs, "-c", "missing.yaml")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("show", func() {
		It("should print the annotated log and the step table", func() {
			out, err := run("show", failLog, "--no-color")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("1 FAIL"))
			Expect(out).To(ContainSubstring("Do @STEP002@CheckFirmware"))
			Expect(out).To(ContainSubstring("→ "))
			Expect(out).To(ContainSubstring("Result"))
		})

		It("should print one step in detail", func() {
			out, err := run("show", failLog, "--no-color", "--step", "3")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("CheckFirmware  FAIL"))
			Expect(out).To(ContainSubstring("指令/回應整理"))
			Expect(out).To(ContainSubstring("> :Firmware?"))
		})

		It("should reject a step out of range", func() {
			_, err := run("show", failLog, "--step", "99")
			Expect(err).To(MatchError(ContainSubstring("out of range")))
		})

		It("should require a file argument", func() {
			_, err := run("show")
			Expect(err).To(HaveOccurred())
		})
	})
})
