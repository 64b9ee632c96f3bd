package listview_test

import (
	"testing"
	"time"

	"github.com/commerceops/backoffice/internal/listview"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestListview(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Listview Suite")
}

var _ = Describe("Debouncer", func() {
	It("should emit only the last value of a rapid burst", func() {
		d := listview.NewDebouncer(30 * time.Millisecond)
		defer d.Stop()

		d.Observe("a")
		d.Observe("ab")
		d.Observe("abc")

		var got string
		Eventually(d.C(), "500ms").Should(Receive(&got))
		Expect(got).To(Equal("abc"))
		Consistently(d.C(), "100ms").ShouldNot(Receive())
	})

	It("should emit again after a quiet window passes between values", func() {
		d := listview.NewDebouncer(20 * time.Millisecond)
		defer d.Stop()

		d.Observe("first")
		var got string
		Eventually(d.C(), "500ms").Should(Receive(&got))
		Expect(got).To(Equal("first"))

		d.Observe("second")
		Eventually(d.C(), "500ms").Should(Receive(&got))
		Expect(got).To(Equal("second"))
	})

	It("should keep the final value even when the consumer is slow", func() {
		d := listview.NewDebouncer(10 * time.Millisecond)
		defer d.Stop()

		d.Observe("stale")
		time.Sleep(50 * time.Millisecond)
		// nothing read yet; a newer value replaces the waiting one
		d.Observe("fresh")
		time.Sleep(50 * time.Millisecond)

		var got string
		Eventually(d.C(), "500ms").Should(Receive(&got))
		Expect(got).To(Equal("fresh"))
	})

	It("should not emit after Stop", func() {
		d := listview.NewDebouncer(20 * time.Millisecond)

		d.Observe("never")
		d.Stop()

		Consistently(d.C(), "150ms").ShouldNot(Receive())
	})

	It("should ignore Observe after Stop", func() {
		d := listview.NewDebouncer(10 * time.Millisecond)
		d.Stop()

		d.Observe("late")
		Consistently(d.C(), "100ms").ShouldNot(Receive())
	})

	It("should fall back to the default delay for a non-positive one", func() {
		d := listview.NewDebouncer(0)
		defer d.Stop()

		start := time.Now()
		d.Observe("value")

		var got string
		Eventually(d.C(), "2s").Should(Receive(&got))
		Expect(time.Since(start)).To(BeNumerically(">=", 450*time.Millisecond))
	})
})
