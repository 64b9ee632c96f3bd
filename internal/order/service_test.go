package order_test

import (
	"errors"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"

	internalErrors "github.com/commerceops/backoffice/internal"
	orderDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/order"
	productDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/product"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/order"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOrderService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Service Suite")
}

// MockRepository implements order.RepositoryAPI for testing
type MockRepository struct {
	orders map[int64]*orderDatamodel.Order
	items  map[int64][]*orderDatamodel.OrderItem
	nextID int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		orders: make(map[int64]*orderDatamodel.Order),
		items:  make(map[int64][]*orderDatamodel.OrderItem),
		nextID: 1,
	}
}

func (m *MockRepository) List(query pagination.PageQuery) ([]*orderDatamodel.Order, int64, error) {
	var all []*orderDatamodel.Order
	for _, o := range m.orders {
		if query.HasSearch() && !strings.Contains(strings.ToLower(o.Number), query.SearchPattern()) {
			continue
		}
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })
	return all, int64(len(all)), nil
}

func (m *MockRepository) GetByID(id int64) (*orderDatamodel.Order, []*orderDatamodel.OrderItem, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil, errors.New("record not found")
	}
	return o, m.items[id], nil
}

func (m *MockRepository) Create(o *orderDatamodel.Order, items []*orderDatamodel.OrderItem) error {
	o.ID = m.nextID
	m.nextID++
	m.orders[o.ID] = o
	m.items[o.ID] = items
	return nil
}

func (m *MockRepository) UpdateStatus(id int64, status orderDatamodel.Status) (int64, error) {
	o, ok := m.orders[id]
	if !ok {
		return 0, nil
	}
	o.Status = status
	return 1, nil
}

func (m *MockRepository) Delete(id int64) (int64, error) {
	if _, ok := m.orders[id]; !ok {
		return 0, nil
	}
	delete(m.orders, id)
	delete(m.items, id)
	return 1, nil
}

// MockProductReader resolves products for order lines
type MockProductReader struct {
	products map[int64]*productDatamodel.Product
}

func (m *MockProductReader) GetByID(id int64) (*productDatamodel.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

var _ = Describe("Order Service", func() {
	var (
		mockRepo *MockRepository
		products *MockProductReader
		service  *order.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		products = &MockProductReader{products: map[int64]*productDatamodel.Product{
			1: {ID: 1, Name: "Widget", Price: 10.0},
			2: {ID: 2, Name: "Gadget", Price: 2.5},
		}}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = order.NewService(mockRepo, products, nil, logger)
	})

	Describe("Create", func() {
		It("should snapshot unit prices and compute the total", func() {
			resp, err := service.Create(order.OrderRequest{
				CustomerID: 1,
				Items: []order.OrderItemRequest{
					{ProductID: 1, Quantity: 2},
					{ProductID: 2, Quantity: 4},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Total).To(Equal(30.0))
			Expect(resp.Status).To(Equal("pending"))
			Expect(resp.Number).To(HavePrefix("ORD-"))
			Expect(resp.Items).To(HaveLen(2))
			Expect(resp.Items[0].Subtotal).To(Equal(20.0))
		})

		It("should reject an empty item list locally", func() {
			_, err := service.Create(order.OrderRequest{CustomerID: 1})
			appErr, ok := internalErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internalErrors.ErrorTypeValidation))
			Expect(mockRepo.orders).To(BeEmpty())
		})

		It("should classify an unknown product as conflict", func() {
			_, err := service.Create(order.OrderRequest{
				CustomerID: 1,
				Items:      []order.OrderItemRequest{{ProductID: 99, Quantity: 1}},
			})
			Expect(internalErrors.IsConflict(err)).To(BeTrue())
		})
	})

	Describe("UpdateStatus", func() {
		var created *order.OrderResponse

		BeforeEach(func() {
			var err error
			created, err = service.Create(order.OrderRequest{
				CustomerID: 1,
				Items:      []order.OrderItemRequest{{ProductID: 1, Quantity: 1}},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should allow pending to paid", func() {
			resp, err := service.UpdateStatus(created.ID, order.StatusUpdateRequest{Status: "paid"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Status).To(Equal("paid"))
		})

		It("should refuse pending to delivered", func() {
			_, err := service.UpdateStatus(created.ID, order.StatusUpdateRequest{Status: "delivered"})
			Expect(internalErrors.IsConflict(err)).To(BeTrue())

			appErr, _ := internalErrors.IsAppError(err)
			Expect(appErr.Code).To(Equal(internalErrors.ErrCodeStatusForbidden))
		})

		It("should refuse any move out of a terminal state", func() {
			_, err := service.UpdateStatus(created.ID, order.StatusUpdateRequest{Status: "paid"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.UpdateStatus(created.ID, order.StatusUpdateRequest{Status: "cancelled"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.UpdateStatus(created.ID, order.StatusUpdateRequest{Status: "paid"})
			Expect(internalErrors.IsConflict(err)).To(BeTrue())
		})

		It("should reject an unknown status locally", func() {
			_, err := service.UpdateStatus(created.ID, order.StatusUpdateRequest{Status: "teleported"})
			appErr, ok := internalErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internalErrors.ErrorTypeValidation))
		})

		It("should report a missing order as not found", func() {
			_, err := service.UpdateStatus(404, order.StatusUpdateRequest{Status: "paid"})
			Expect(internalErrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should report a missing order as not found instead of a phantom success", func() {
			Expect(internalErrors.IsNotFound(service.Delete(404))).To(BeTrue())
		})
	})
})
