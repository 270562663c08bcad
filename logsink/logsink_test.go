package logsink_test

import (
	"bufio"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/robocupgc/gamecontroller/gamestate"
	"github.com/robocupgc/gamecontroller/logsink"
)

func mustParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var _ = Describe("Sink", func() {
	var dir string
	var path string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "logsink")
		Expect(err).NotTo(HaveOccurred())
		path = filepath.Join(dir, "run.log")
	})

	AfterEach(func() {
		_ = os.RemoveAll(dir)
	})

	It("writes one JSON line per entry plus a terminating End entry", func() {
		sink, err := logsink.Open(path, false)
		Expect(err).NotTo(HaveOccurred())

		sink.LogMetadata(map[string]string{"home": "A", "away": "B"})
		sink.LogTeamMessage(gamestate.Home, []byte("hi"), false)
		Expect(sink.Close()).To(Succeed())

		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		lines := 0
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			Expect(scanner.Text()).To(ContainSubstring(`"kind"`))
			lines++
		}
		Expect(lines).To(Equal(3))
	})

	It("tracks entry count and reports no error after a successful write", func() {
		sink, err := logsink.Open(path, false)
		Expect(err).NotTo(HaveOccurred())
		defer sink.Close()

		sink.LogMetadata(nil)
		Expect(sink.NumEntries()).To(Equal(int64(1)))
		Expect(sink.Err()).NotTo(HaveOccurred())
	})

	It("names files by start time and team shortnames", func() {
		Expect(logsink.FileName(
			mustParseTime("2026-07-31T10:00:00Z"), "home", "away"),
		).To(Equal("20260731T100000Z_home-vs-away.log"))
	})
})
