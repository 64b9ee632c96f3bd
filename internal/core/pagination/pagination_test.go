package pagination_test

import (
	"testing"

	"github.com/commerceops/backoffice/internal/core/pagination"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPagination(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pagination Suite")
}

var _ = Describe("PageQuery", func() {
	It("should normalize page below 1 to 1", func() {
		q := pagination.NewPageQuery(0, 10, "")
		Expect(q.Page).To(Equal(1))

		q = pagination.NewPageQuery(-3, 10, "")
		Expect(q.Page).To(Equal(1))
	})

	It("should default a non-positive page size", func() {
		q := pagination.NewPageQuery(1, 0, "")
		Expect(q.PageSize).To(Equal(pagination.DefaultPageSize))
	})

	It("should trim the search term", func() {
		q := pagination.NewPageQuery(1, 10, "  acme  ")
		Expect(q.Search).To(Equal("acme"))
		Expect(q.HasSearch()).To(BeTrue())
	})

	It("should treat whitespace-only search as no filter", func() {
		q := pagination.NewPageQuery(1, 10, "   ")
		Expect(q.Search).To(Equal(""))
		Expect(q.HasSearch()).To(BeFalse())
	})

	It("should compute the row window offset", func() {
		Expect(pagination.NewPageQuery(1, 10, "").Offset()).To(Equal(0))
		Expect(pagination.NewPageQuery(3, 10, "").Offset()).To(Equal(20))
		Expect(pagination.NewPageQuery(2, 25, "").Offset()).To(Equal(25))
	})
})

var _ = Describe("TotalPages", func() {
	It("should be at least 1 even with zero rows", func() {
		Expect(pagination.TotalPages(0, 10)).To(Equal(1))
	})

	It("should round up partial pages", func() {
		Expect(pagination.TotalPages(25, 10)).To(Equal(3))
		Expect(pagination.TotalPages(30, 10)).To(Equal(3))
		Expect(pagination.TotalPages(31, 10)).To(Equal(4))
		Expect(pagination.TotalPages(1, 10)).To(Equal(1))
	})

	It("should satisfy max(1, ceil(n/p)) across sizes", func() {
		for _, size := range []int{1, 2, 5, 10, 25, 100} {
			for _, total := range []int64{0, 1, 9, 10, 11, 99, 100, 101} {
				want := int((total + int64(size) - 1) / int64(size))
				if want < 1 {
					want = 1
				}
				Expect(pagination.TotalPages(total, size)).To(Equal(want))
			}
		}
	})
})

var _ = Describe("NewPageResult", func() {
	It("should carry items, totals and derived page count", func() {
		q := pagination.NewPageQuery(1, 10, "")
		res := pagination.NewPageResult([]string{"a", "b"}, q, 25)
		Expect(res.Items).To(HaveLen(2))
		Expect(res.TotalRows).To(Equal(int64(25)))
		Expect(res.TotalPages).To(Equal(3))
		Expect(res.Page).To(Equal(1))
	})

	It("should never return nil items", func() {
		q := pagination.NewPageQuery(1, 10, "")
		res := pagination.NewPageResult[string](nil, q, 0)
		Expect(res.Items).NotTo(BeNil())
		Expect(res.TotalPages).To(Equal(1))
	})
})
