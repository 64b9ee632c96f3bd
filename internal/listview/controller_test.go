package listview_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	internalErrors "github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/listview"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// recordingFetcher serves canned pages and records every query it saw. A
// per-search gate can hold a fetch open to simulate a slow response.
type recordingFetcher struct {
	mu      sync.Mutex
	queries []pagination.PageQuery
	rows    map[string][]string
	gates   map[string]chan struct{}
}

func newRecordingFetcher() *recordingFetcher {
	return &recordingFetcher{
		rows:  make(map[string][]string),
		gates: make(map[string]chan struct{}),
	}
}

func (f *recordingFetcher) gate(search string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := make(chan struct{})
	f.gates[search] = g
	return g
}

func (f *recordingFetcher) fetch(_ context.Context, q pagination.PageQuery) (*pagination.PageResult[string], error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	g := f.gates[q.Search]
	rows := f.rows[q.Search]
	f.mu.Unlock()

	if g != nil {
		<-g
	}

	result := pagination.NewPageResult(rows, q, int64(len(rows)))
	return &result, nil
}

func (f *recordingFetcher) seen() []pagination.PageQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]pagination.PageQuery, len(f.queries))
	copy(out, f.queries)
	return out
}

var _ = Describe("Controller", func() {
	var (
		fetcher    *recordingFetcher
		controller *listview.Controller[string]
		logger     *slog.Logger
	)

	BeforeEach(func() {
		fetcher = newRecordingFetcher()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		controller = listview.NewController[string](fetcher.fetch, nil, logger)
		controller.SetDebounceDelay(30 * time.Millisecond)
	})

	AfterEach(func() {
		controller.Close()
	})

	Describe("search", func() {
		It("should fetch once with the final term of a rapid burst", func() {
			fetcher.rows["abc"] = []string{"match"}

			controller.SetSearch("a")
			controller.SetSearch("ab")
			controller.SetSearch("abc")

			Eventually(func() []string {
				return controller.Snapshot().Rows
			}, "2s").Should(Equal([]string{"match"}))

			queries := fetcher.seen()
			Expect(queries).To(HaveLen(1))
			Expect(queries[0].Search).To(Equal("abc"))
			Expect(queries[0].Page).To(Equal(1))
		})

		It("should reset to page 1 when a new search lands", func() {
			controller.SetPage(3)
			Eventually(func() int {
				return controller.Snapshot().Query.Page
			}, "1s").Should(Equal(3))

			controller.SetSearch("shoes")
			Eventually(func() pagination.PageQuery {
				return controller.Snapshot().Query
			}, "2s").Should(Equal(pagination.NewPageQuery(1, pagination.DefaultPageSize, "shoes")))
		})
	})

	Describe("stale responses", func() {
		It("should discard a slow response for a superseded query", func() {
			fetcher.rows[""] = []string{"old page"}
			fetcher.rows["new"] = []string{"new rows"}
			slowGate := fetcher.gate("")

			// slow fetch for the initial query
			controller.Refresh()

			// the query moves on before the slow fetch lands
			controller.SetSearch("new")
			Eventually(func() []string {
				return controller.Snapshot().Rows
			}, "2s").Should(Equal([]string{"new rows"}))

			// releasing the stale fetch must not overwrite the newer rows
			close(slowGate)
			Consistently(func() []string {
				return controller.Snapshot().Rows
			}, "300ms").Should(Equal([]string{"new rows"}))
		})
	})

	Describe("mutations", func() {
		It("should reset to page 1, refetch and clear the draft on success", func() {
			controller.SetPage(2)
			Eventually(func() int {
				return controller.Snapshot().Query.Page
			}, "1s").Should(Equal(2))

			controller.SetDraftField("name", "half-typed")

			outcome := controller.Mutate(listview.MutationWrite, func() error { return nil })
			Expect(outcome.State).To(Equal(listview.MutationSucceeded))

			Eventually(func() int {
				return controller.Snapshot().Query.Page
			}, "1s").Should(Equal(1))
			Expect(controller.Draft()).To(BeEmpty())
		})

		It("should classify a conflict without refetching or clearing the draft", func() {
			controller.SetDraftField("name", "Duplicate")
			before := len(fetcher.seen())

			outcome := controller.Mutate(listview.MutationWrite, func() error {
				return internalErrors.NewConflictError("Brand name already exists", internalErrors.ErrCodeDuplicateName)
			})

			Expect(outcome.State).To(Equal(listview.MutationConflict))
			Expect(outcome.Message).To(Equal("Brand name already exists"))
			Expect(len(fetcher.seen())).To(Equal(before))
			Expect(controller.Draft()).To(HaveKeyWithValue("name", "Duplicate"))
		})

		It("should treat deleting a missing row as a conflict, not a success", func() {
			outcome := controller.Mutate(listview.MutationDelete, func() error {
				return internalErrors.ErrBrandNotFound
			})
			Expect(outcome.State).To(Equal(listview.MutationConflict))
		})

		It("should keep not-found on a write as a failure", func() {
			outcome := controller.Mutate(listview.MutationWrite, func() error {
				return internalErrors.ErrBrandNotFound
			})
			Expect(outcome.State).To(Equal(listview.MutationFailed))
		})

		It("should surface a generic failure message", func() {
			outcome := controller.Mutate(listview.MutationWrite, func() error {
				return internalErrors.NewInternalError("backend exploded", nil)
			})
			Expect(outcome.State).To(Equal(listview.MutationFailed))
			Expect(outcome.Message).To(Equal("backend exploded"))
		})
	})

	Describe("reference updates", func() {
		It("should refetch references on entity-changed events without touching the draft", func() {
			bus := events.NewEventBus(logger)
			withBus := listview.NewController[string](fetcher.fetch, bus, logger)
			defer withBus.Close()

			var refMu sync.Mutex
			refFetches := 0
			withBus.WatchReferences([]string{events.BrandChanged}, func() {
				refMu.Lock()
				refFetches++
				refMu.Unlock()
			})

			withBus.SetDraftField("name", "in progress")

			err := bus.PublishSync(context.Background(),
				events.NewEntityChanged(events.BrandChanged, events.ActionCreated, 1, "Acme"))
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() int {
				refMu.Lock()
				defer refMu.Unlock()
				return refFetches
			}, "1s").Should(Equal(1))
			Expect(withBus.Draft()).To(HaveKeyWithValue("name", "in progress"))
		})

		It("should stop receiving events after Close", func() {
			bus := events.NewEventBus(logger)
			withBus := listview.NewController[string](fetcher.fetch, bus, logger)

			var refMu sync.Mutex
			refFetches := 0
			withBus.WatchReferences([]string{events.CategoryChanged}, func() {
				refMu.Lock()
				refFetches++
				refMu.Unlock()
			})

			withBus.Close()

			err := bus.PublishSync(context.Background(),
				events.NewEntityChanged(events.CategoryChanged, events.ActionDeleted, 2, ""))
			Expect(err).NotTo(HaveOccurred())

			Consistently(func() int {
				refMu.Lock()
				defer refMu.Unlock()
				return refFetches
			}, "200ms").Should(BeZero())
		})
	})
})
