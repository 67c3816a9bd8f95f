package sms_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"uptime-monitor/config"
	"uptime-monitor/pkg/apperror"
	"uptime-monitor/pkg/sms"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Twilio client", func() {
	var (
		server   *httptest.Server
		status   int
		received *http.Request
		form     map[string]string
		client   *sms.Client
	)

	BeforeEach(func() {
		status = http.StatusCreated
		received = nil
		form = map[string]string{}

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received = r
			_ = r.ParseForm()
			for k := range r.PostForm {
				form[k] = r.PostForm.Get(k)
			}
			w.WriteHeader(status)
		}))
		DeferCleanup(server.Close)

		client = sms.NewClient(&config.TwilioConfig{
			BaseURL:    server.URL,
			AccountSID: "AC123",
			AuthToken:  "secret",
			FromPhone:  "+15550000000",
		})
	})

	It("posts the message form with basic auth", func() {
		Expect(client.Send(context.Background(), "155512345678", "check is down")).To(Succeed())

		Expect(received).NotTo(BeNil())
		Expect(received.Method).To(Equal(http.MethodPost))
		Expect(received.URL.Path).To(Equal("/2010-04-01/Accounts/AC123/Messages.json"))

		user, pass, ok := received.BasicAuth()
		Expect(ok).To(BeTrue())
		Expect(user).To(Equal("AC123"))
		Expect(pass).To(Equal("secret"))

		Expect(form).To(HaveKeyWithValue("To", "+155512345678"))
		Expect(form).To(HaveKeyWithValue("From", "+15550000000"))
		Expect(form).To(HaveKeyWithValue("Body", "check is down"))
	})

	It("accepts 200 as success", func() {
		status = http.StatusOK
		Expect(client.Send(context.Background(), "155512345678", "hi")).To(Succeed())
	})

	It("reports other statuses as a dependency error", func() {
		status = http.StatusBadRequest
		err := client.Send(context.Background(), "155512345678", "hi")
		Expect(apperror.IsKind(err, apperror.Dependency)).To(BeTrue())
	})

	DescribeTable("rejects bad input without calling twilio",
		func(phone, message string) {
			err := client.Send(context.Background(), phone, message)
			Expect(apperror.IsKind(err, apperror.InvalidInput)).To(BeTrue())
			Expect(received).To(BeNil())
		},
		Entry("short phone", "15551234", "hi"),
		Entry("empty message", "155512345678", "   "),
	)
})
