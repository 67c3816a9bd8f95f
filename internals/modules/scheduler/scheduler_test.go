package scheduler_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"uptime-monitor/config"
	"uptime-monitor/internals/modules/check"
	"uptime-monitor/internals/modules/scheduler"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

type fakeRepo struct {
	ids     []string
	listErr error
	checks  map[string]check.Check
}

func (r *fakeRepo) ListIDs(context.Context) ([]string, error) {
	return r.ids, r.listErr
}

func (r *fakeRepo) Get(_ context.Context, id string) (check.Check, error) {
	c, ok := r.checks[id]
	if !ok {
		return check.Check{}, errors.New("not found")
	}
	return c, nil
}

type fakeExecutor struct {
	mu      sync.Mutex
	started []string
	release chan struct{}
}

func (e *fakeExecutor) Execute(_ context.Context, c check.Check) {
	e.mu.Lock()
	e.started = append(e.started, c.ID)
	e.mu.Unlock()
	if e.release != nil {
		<-e.release
	}
}

func (e *fakeExecutor) Started() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.started...)
}

func checkWithID(id string) check.Check {
	return check.Check{
		ID:             id,
		OwnerPhone:     "155512345678",
		Protocol:       check.HTTPS,
		URL:            "example.com",
		Method:         check.Get,
		SuccessCodes:   []int{200},
		TimeoutSeconds: 1,
	}
}

const (
	idA = "aaaaaaaaaaaaaaaaaaaa"
	idB = "bbbbbbbbbbbbbbbbbbbb"
)

var _ = Describe("Scheduler", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		repo   *fakeRepo
		exec   *fakeExecutor
		logger zerolog.Logger
		cfg    *config.SchedulerConfig
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		DeferCleanup(cancel)
		repo = &fakeRepo{checks: map[string]check.Check{}}
		exec = &fakeExecutor{}
		logger = zerolog.New(io.Discard)
		cfg = &config.SchedulerConfig{Interval: time.Hour}
	})

	newScheduler := func() *scheduler.Scheduler {
		return scheduler.NewScheduler(ctx, cfg, repo, scheduler.NewLocalGuard(), exec, &logger)
	}

	It("dispatches every valid check once per cycle", func() {
		repo.ids = []string{idA, idB}
		repo.checks[idA] = checkWithID(idA)
		repo.checks[idB] = checkWithID(idB)

		sc := newScheduler()
		Expect(sc.RunCycle()).To(Equal(2))
		sc.Wait()

		Expect(exec.Started()).To(ConsistOf(idA, idB))
	})

	It("skips invalid records and unreadable ids", func() {
		bad := checkWithID(idB)
		bad.TimeoutSeconds = 9
		repo.ids = []string{idA, idB, "cccccccccccccccccccc"}
		repo.checks[idA] = checkWithID(idA)
		repo.checks[idB] = bad

		sc := newScheduler()
		Expect(sc.RunCycle()).To(Equal(1))
		sc.Wait()

		Expect(exec.Started()).To(ConsistOf(idA))
	})

	It("skips the cycle when listing fails or nothing is stored", func() {
		sc := newScheduler()
		Expect(sc.RunCycle()).To(BeZero())

		repo.listErr = errors.New("disk gone")
		repo.ids = []string{idA}
		repo.checks[idA] = checkWithID(idA)
		Expect(sc.RunCycle()).To(BeZero())

		sc.Wait()
		Expect(exec.Started()).To(BeEmpty())
	})

	It("never has two probes of the same check in flight", func() {
		exec.release = make(chan struct{})
		repo.ids = []string{idA}
		repo.checks[idA] = checkWithID(idA)

		sc := newScheduler()
		Expect(sc.RunCycle()).To(Equal(1))
		Eventually(exec.Started).Should(HaveLen(1))

		Expect(sc.RunCycle()).To(BeZero())

		close(exec.release)
		sc.Wait()

		Expect(sc.RunCycle()).To(Equal(1))
		sc.Wait()
		Expect(exec.Started()).To(HaveLen(2))
	})

	It("runs a cycle immediately and stops when cancelled", func() {
		repo.ids = []string{idA}
		repo.checks[idA] = checkWithID(idA)

		sc := newScheduler()
		done := make(chan struct{})
		go func() {
			defer close(done)
			sc.Run()
		}()

		Eventually(exec.Started).Should(ConsistOf(idA))
		cancel()
		Eventually(done).Should(BeClosed())
		sc.Wait()
	})

	It("lets in-flight probes finish after cancellation", func() {
		exec.release = make(chan struct{})
		repo.ids = []string{idA}
		repo.checks[idA] = checkWithID(idA)

		sc := newScheduler()
		Expect(sc.RunCycle()).To(Equal(1))
		cancel()

		waited := make(chan struct{})
		go func() {
			defer close(waited)
			sc.Wait()
		}()
		Consistently(waited, 100*time.Millisecond).ShouldNot(BeClosed())

		close(exec.release)
		Eventually(waited).Should(BeClosed())
	})
})

var _ = Describe("LocalGuard", func() {
	It("admits one holder per id until released", func() {
		g := scheduler.NewLocalGuard()
		ctx := context.Background()

		ok, err := g.TryAcquire(ctx, idA)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		ok, _ = g.TryAcquire(ctx, idA)
		Expect(ok).To(BeFalse())

		ok, _ = g.TryAcquire(ctx, idB)
		Expect(ok).To(BeTrue())

		g.Release(ctx, idA)
		ok, _ = g.TryAcquire(ctx, idA)
		Expect(ok).To(BeTrue())
	})
})
