package security_test

import (
	"uptime-monitor/config"
	"uptime-monitor/internals/security"
	"uptime-monitor/pkg/apperror"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Passwords", func() {
	It("verifies the original password and rejects others", func() {
		hash, err := security.HashPassword("correct horse")
		Expect(err).NotTo(HaveOccurred())
		Expect(hash).NotTo(ContainSubstring("correct horse"))

		ok, err := security.ComparePassword("correct horse", hash)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		ok, err = security.ComparePassword("battery staple", hash)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("RandomString", func() {
	It("returns lower-case alphanumerics of the requested length", func() {
		s, err := security.RandomString(20)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(MatchRegexp(`^[a-z0-9]{20}$`))

		other, err := security.RandomString(20)
		Expect(err).NotTo(HaveOccurred())
		Expect(other).NotTo(Equal(s))
	})
})

var _ = Describe("TokenService", func() {
	var svc *security.TokenService

	BeforeEach(func() {
		svc = security.NewTokenService(&config.AuthConfig{Secret: "0123456789abcdef", ExpiryMin: 60})
	})

	It("round-trips phone and token id", func() {
		tok, err := svc.GenerateAccessToken("155512345678")
		Expect(err).NotTo(HaveOccurred())
		Expect(tok.ID).NotTo(BeEmpty())

		claims, err := svc.ValidateAccessToken(tok.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.Phone()).To(Equal("155512345678"))
		Expect(claims.TokenID()).To(Equal(tok.ID))
	})

	It("rejects tokens signed with another secret", func() {
		other := security.NewTokenService(&config.AuthConfig{Secret: "fedcba9876543210", ExpiryMin: 60})
		tok, err := other.GenerateAccessToken("155512345678")
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.ValidateAccessToken(tok.Token)
		Expect(apperror.IsKind(err, apperror.Unauthorised)).To(BeTrue())
	})

	It("rejects garbage", func() {
		_, err := svc.ValidateAccessToken("not.a.token")
		Expect(apperror.IsKind(err, apperror.Unauthorised)).To(BeTrue())
	})
})
