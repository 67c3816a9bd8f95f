package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"uptime-monitor/config"
)

func writeConfig(body string) string {
	path := filepath.Join(GinkgoT().TempDir(), "env.yaml")
	Expect(os.WriteFile(path, []byte(body), 0o644)).To(Succeed())
	return path
}

var _ = Describe("LoadConfig", func() {
	It("applies defaults for everything the file leaves out", func() {
		path := writeConfig("auth:\n  secret: a-very-long-test-secret\n")

		cfg, err := config.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Port).To(Equal(8080))
		Expect(cfg.Scheduler.Interval).To(Equal(time.Minute))
		Expect(cfg.Rotation.Interval).To(Equal(24 * time.Hour))
		Expect(cfg.Store.Driver).To(Equal("file"))
		Expect(cfg.Store.Dir).To(Equal(".data"))
		Expect(cfg.Log.Dir).To(Equal(".logs"))
		Expect(cfg.Alert.Driver).To(Equal("log"))
		Expect(cfg.Checks.MaxPerUser).To(Equal(5))
		Expect(cfg.Inflight.Driver).To(Equal("local"))
	})

	It("reads durations and nested keys from the file", func() {
		path := writeConfig(`
env: production
scheduler:
  interval: 15s
rotation:
  interval: 1h
auth:
  secret: a-very-long-test-secret
`)

		cfg, err := config.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Env).To(Equal("production"))
		Expect(cfg.Scheduler.Interval).To(Equal(15 * time.Second))
		Expect(cfg.Rotation.Interval).To(Equal(time.Hour))
	})

	It("rejects an unknown store driver", func() {
		path := writeConfig("store:\n  driver: mongo\nauth:\n  secret: a-very-long-test-secret\n")

		_, err := config.LoadConfig(path)
		Expect(err).To(MatchError(ContainSubstring("Config.Store.Driver")))
	})

	It("requires a signing secret", func() {
		path := writeConfig("port: 9000\n")

		_, err := config.LoadConfig(path)
		Expect(err).To(MatchError(ContainSubstring("Config.Auth.Secret")))
	})

	It("requires twilio credentials for the sms driver", func() {
		path := writeConfig("alert:\n  driver: sms\nauth:\n  secret: a-very-long-test-secret\n")

		_, err := config.LoadConfig(path)
		Expect(err).To(MatchError(ContainSubstring("twilio")))
	})

	It("fails when the file does not exist", func() {
		_, err := config.LoadConfig(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(MatchError(ContainSubstring("read config")))
	})
})
