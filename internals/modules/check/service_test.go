package check_test

import (
	"context"
	"errors"
	"io"

	"uptime-monitor/internals/modules/check"
	"uptime-monitor/pkg/apperror"
	"uptime-monitor/pkg/filestore"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

type fakeOwners struct {
	checks  map[string][]string
	addErr  error
	removed []string
}

func (o *fakeOwners) AddCheck(_ context.Context, phone, id string, limit int) error {
	if o.addErr != nil {
		return o.addErr
	}
	if len(o.checks[phone]) >= limit {
		return &apperror.Error{Kind: apperror.LimitReached}
	}
	o.checks[phone] = append(o.checks[phone], id)
	return nil
}

func (o *fakeOwners) RemoveCheck(_ context.Context, phone, id string) error {
	o.removed = append(o.removed, id)
	return nil
}

var _ = Describe("Service", func() {
	const owner = "155512345678"

	var (
		ctx    context.Context
		repo   *check.Repository
		owners *fakeOwners
		svc    *check.Service
		cmd    check.CreateCheckCmd
	)

	BeforeEach(func() {
		ctx = context.Background()
		records, err := filestore.New(afero.NewMemMapFs(), "/data")
		Expect(err).NotTo(HaveOccurred())
		repo = check.NewRepository(records)
		owners = &fakeOwners{checks: map[string][]string{}}
		logger := zerolog.New(io.Discard)
		svc = check.NewService(repo, owners, 1, &logger)
		cmd = check.CreateCheckCmd{
			Protocol:       check.HTTPS,
			URL:            " example.com/status ",
			Method:         check.Get,
			SuccessCodes:   []int{200},
			TimeoutSeconds: 2,
		}
	})

	It("creates a never-checked record owned by the caller", func() {
		c, err := svc.Create(ctx, owner, cmd)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.ID).To(HaveLen(check.IDLength))
		Expect(c.URL).To(Equal("example.com/status"))
		Expect(owners.checks[owner]).To(ConsistOf(c.ID))

		stored, err := repo.Get(ctx, c.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.HasBeenChecked()).To(BeFalse())
		Expect(stored.State).To(BeEmpty())
	})

	It("does not store anything when the owner has no slot left", func() {
		_, err := svc.Create(ctx, owner, cmd)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Create(ctx, owner, cmd)
		Expect(apperror.IsKind(err, apperror.LimitReached)).To(BeTrue())

		ids, err := repo.ListIDs(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(HaveLen(1))
	})

	It("rejects invalid definitions before reserving a slot", func() {
		cmd.TimeoutSeconds = 0
		_, err := svc.Create(ctx, owner, cmd)
		Expect(apperror.IsKind(err, apperror.InvalidInput)).To(BeTrue())
		Expect(owners.checks).To(BeEmpty())
	})

	It("propagates owner lookup failures", func() {
		owners.addErr = errors.New("users unavailable")
		_, err := svc.Create(ctx, owner, cmd)
		Expect(err).To(MatchError("users unavailable"))
	})

	It("keeps state when the definition is updated", func() {
		c, err := svc.Create(ctx, owner, cmd)
		Expect(err).NotTo(HaveOccurred())
		c.State = check.StateUp
		c.LastChecked = 1700000000000
		Expect(repo.Update(ctx, c)).To(Succeed())

		timeout := 5
		updated, err := svc.Update(ctx, owner, c.ID, check.UpdateCheckCmd{TimeoutSeconds: &timeout})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.TimeoutSeconds).To(Equal(5))
		Expect(updated.State).To(Equal(check.StateUp))
		Expect(updated.LastChecked).To(Equal(int64(1700000000000)))
	})

	It("hides other users' checks", func() {
		c, err := svc.Create(ctx, owner, cmd)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Get(ctx, "199999999999", c.ID)
		Expect(apperror.IsKind(err, apperror.Forbidden)).To(BeTrue())

		err = svc.Delete(ctx, "199999999999", c.ID)
		Expect(apperror.IsKind(err, apperror.Forbidden)).To(BeTrue())
	})

	It("removes the record and the owner's reference on delete", func() {
		c, err := svc.Create(ctx, owner, cmd)
		Expect(err).NotTo(HaveOccurred())

		Expect(svc.Delete(ctx, owner, c.ID)).To(Succeed())
		Expect(owners.removed).To(ConsistOf(c.ID))

		_, err = repo.Get(ctx, c.ID)
		Expect(apperror.IsKind(err, apperror.NotFound)).To(BeTrue())
	})
})
