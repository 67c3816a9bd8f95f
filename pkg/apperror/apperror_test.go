package apperror_test

import (
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"uptime-monitor/pkg/apperror"
)

var _ = Describe("Error", func() {
	It("formats op and wrapped error", func() {
		err := apperror.New(apperror.StorageErr, "store.file.read", errors.New("disk gone"))
		Expect(err.Error()).To(Equal("store.file.read: disk gone"))
	})

	It("is found through fmt wrapping", func() {
		inner := &apperror.Error{Kind: apperror.NotFound, Op: "store.file.read"}
		wrapped := fmt.Errorf("load check: %w", inner)

		Expect(apperror.IsKind(wrapped, apperror.NotFound)).To(BeTrue())
		Expect(apperror.IsKind(wrapped, apperror.AlreadyExists)).To(BeFalse())
		Expect(apperror.KindOf(wrapped)).To(Equal(apperror.NotFound))
	})

	It("treats foreign errors as internal", func() {
		Expect(apperror.KindOf(errors.New("boom"))).To(Equal(apperror.Internal))
		Expect(apperror.HTTPStatus(errors.New("boom"))).To(Equal(http.StatusInternalServerError))
	})

	It("captures a stack only for internal and dependency kinds", func() {
		Expect(apperror.New(apperror.Internal, "op", nil).Stack).NotTo(BeEmpty())
		Expect(apperror.New(apperror.NotFound, "op", nil).Stack).To(BeEmpty())
	})

	DescribeTable("maps kinds to HTTP status codes",
		func(kind apperror.Kind, status int) {
			Expect(apperror.GetHTTPStatus(kind)).To(Equal(status))
		},
		Entry("invalid input", apperror.InvalidInput, http.StatusBadRequest),
		Entry("not found", apperror.NotFound, http.StatusNotFound),
		Entry("already exists", apperror.AlreadyExists, http.StatusConflict),
		Entry("limit reached", apperror.LimitReached, http.StatusUnprocessableEntity),
		Entry("unauthorised", apperror.Unauthorised, http.StatusUnauthorized),
		Entry("forbidden", apperror.Forbidden, http.StatusForbidden),
		Entry("storage", apperror.StorageErr, http.StatusInternalServerError),
	)
})
