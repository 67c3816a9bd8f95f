package logger_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"uptime-monitor/pkg/logger"
)

var _ = Describe("Logger", func() {
	It("writes JSON with service and env fields in production", func() {
		var buf bytes.Buffer
		log := logger.New(&buf, "production", "uptime-monitor")

		log.Info().Str("check_id", "abc").Msg("probe finished")

		var line map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &line)).To(Succeed())
		Expect(line).To(HaveKeyWithValue("service", "uptime-monitor"))
		Expect(line).To(HaveKeyWithValue("env", "production"))
		Expect(line).To(HaveKeyWithValue("check_id", "abc"))
		Expect(line).To(HaveKeyWithValue("message", "probe finished"))
	})

	It("writes console output with an upper-case level outside production", func() {
		var buf bytes.Buffer
		log := logger.New(&buf, "development", "uptime-monitor")

		log.Warn().Msg("invalid check record")

		Expect(buf.String()).To(ContainSubstring("[WARN]"))
		Expect(buf.String()).To(ContainSubstring("invalid check record"))
	})
})
