package scanner_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/LogTriage/internal/scanner"
)

var _ = Describe("Scanner", func() {
	var (
		s    *scanner.FileScanner
		ctx  context.Context
		logs = filepath.Join("..", "..", "testdata", "logs")
	)

	BeforeEach(func() {
		s = scanner.NewScanner(true)
		ctx = context.Background()
	})

	It("should find log files recursively", func() {
		files, err := s.Scan(ctx, logs, []string{"*.log"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))
	})

	It("should return sorted file paths", func() {
		files, err := s.Scan(ctx, logs, []string{"*.log"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))
		Expect(filepath.Base(files[0])).To(HavePrefix("1+"))
		Expect(filepath.Base(files[1])).To(HavePrefix("2+"))
		Expect(files[2]).To(ContainSubstring("nested"))
	})

	It("should match extensions regardless of case", func() {
		files, err := s.Scan(ctx, logs, []string{"*.LOG"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))
	})

	It("should not list a file twice when several patterns match", func() {
		files, err := s.Scan(ctx, logs, []string{"*.log", "*.LOG", "*PASS*"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))
	})

	It("should respect exclude patterns", func() {
		files, err := s.Scan(ctx, logs, []string{"*.log"}, []string{"*FAIL*"})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))
		for _, f := range files {
			Expect(f).ToNot(ContainSubstring("FAIL"))
		}
	})

	It("should skip excluded directories", func() {
		files, err := s.Scan(ctx, logs, []string{"*.log"}, []string{"nested/**"})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))
	})

	It("should handle non-recursive mode", func() {
		s = scanner.NewScanner(false)
		files, err := s.Scan(ctx, logs, []string{"*.log"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))
	})

	It("should return error for nonexistent directory", func() {
		_, err := s.Scan(ctx, "nonexistent_dir", []string{"*.log"}, nil)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("hint:"))
	})

	It("should stop when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.Scan(cancelled, logs, []string{"*.log"}, nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})
