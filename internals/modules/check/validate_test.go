package check_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"uptime-monitor/internals/modules/check"
)

func validCheck() check.Check {
	return check.Check{
		ID:             "abcdefghij0123456789",
		OwnerPhone:     "155512345678",
		Protocol:       check.HTTP,
		URL:            "example.com",
		Method:         check.Get,
		SuccessCodes:   []int{200},
		TimeoutSeconds: 3,
	}
}

var _ = Describe("Validate", func() {
	It("accepts a complete record without state or lastChecked", func() {
		c := validCheck()
		Expect(check.Validate(&c)).To(Succeed())
		Expect(c.HasBeenChecked()).To(BeFalse())
		Expect(c.ComparableState()).To(Equal(check.StateDown))
	})

	It("trims the id and phone before checking their length", func() {
		c := validCheck()
		c.ID = "  " + c.ID + " "
		c.OwnerPhone = " " + c.OwnerPhone

		Expect(check.Validate(&c)).To(Succeed())
		Expect(c.ID).To(Equal("abcdefghij0123456789"))
		Expect(c.OwnerPhone).To(Equal("155512345678"))
	})

	It("never rejects a record because of its state", func() {
		c := validCheck()
		c.State = "checking"
		c.LastChecked = -5

		Expect(check.Validate(&c)).To(Succeed())
		Expect(c.ComparableState()).To(Equal(check.StateDown))
		Expect(c.HasBeenChecked()).To(BeFalse())
	})

	DescribeTable("rejects malformed records",
		func(mutate func(*check.Check), field string) {
			c := validCheck()
			mutate(&c)
			Expect(check.Validate(&c)).To(MatchError(ContainSubstring(field)))
		},
		Entry("short id", func(c *check.Check) { c.ID = "short" }, "ID"),
		Entry("short phone", func(c *check.Check) { c.OwnerPhone = "12345" }, "OwnerPhone"),
		Entry("unknown protocol", func(c *check.Check) { c.Protocol = "ftp" }, "Protocol"),
		Entry("empty url", func(c *check.Check) { c.URL = "" }, "URL"),
		Entry("blank url", func(c *check.Check) { c.URL = "   " }, "URL"),
		Entry("unknown method", func(c *check.Check) { c.Method = "patch" }, "Method"),
		Entry("upper-case method", func(c *check.Check) { c.Method = "GET" }, "Method"),
		Entry("no success codes", func(c *check.Check) { c.SuccessCodes = nil }, "SuccessCodes"),
		Entry("zero timeout", func(c *check.Check) { c.TimeoutSeconds = 0 }, "TimeoutSeconds"),
		Entry("timeout above five", func(c *check.Check) { c.TimeoutSeconds = 6 }, "TimeoutSeconds"),
	)
})

var _ = Describe("Check", func() {
	It("builds the probe target from protocol and url", func() {
		c := validCheck()
		c.Protocol = check.HTTPS
		c.URL = "example.com/health"
		Expect(c.Target()).To(Equal("https://example.com/health"))
	})

	It("compares UP only when the stored state is UP", func() {
		c := validCheck()
		c.State = check.StateUp
		Expect(c.ComparableState()).To(Equal(check.StateUp))
	})

	It("matches success codes by membership", func() {
		c := validCheck()
		c.SuccessCodes = []int{200, 201}
		Expect(c.HasSuccessCode(201)).To(BeTrue())
		Expect(c.HasSuccessCode(500)).To(BeFalse())
	})
})
