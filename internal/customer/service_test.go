package customer_test

import (
	"errors"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"

	internalErrors "github.com/commerceops/backoffice/internal"
	customerDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/customer"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/customer"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCustomerService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Customer Service Suite")
}

// MockRepository implements customer.RepositoryAPI for testing
type MockRepository struct {
	customers map[int64]*customerDatamodel.Customer
	nextID    int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		customers: make(map[int64]*customerDatamodel.Customer),
		nextID:    1,
	}
}

func (m *MockRepository) List(query pagination.PageQuery) ([]*customerDatamodel.Customer, int64, error) {
	var all []*customerDatamodel.Customer
	for _, c := range m.customers {
		if query.HasSearch() {
			pattern := query.SearchPattern()
			if !strings.Contains(strings.ToLower(c.Name), pattern) &&
				!strings.Contains(strings.ToLower(c.Email), pattern) {
				continue
			}
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	start := query.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + query.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *MockRepository) GetByID(id int64) (*customerDatamodel.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (m *MockRepository) Create(c *customerDatamodel.Customer) error {
	for _, existing := range m.customers {
		if existing.Email == c.Email {
			return errors.New("UNIQUE constraint failed: customers.email")
		}
	}
	c.ID = m.nextID
	m.nextID++
	m.customers[c.ID] = c
	return nil
}

func (m *MockRepository) Update(c *customerDatamodel.Customer) error {
	for _, existing := range m.customers {
		if existing.ID != c.ID && existing.Email == c.Email {
			return errors.New("UNIQUE constraint failed: customers.email")
		}
	}
	m.customers[c.ID] = c
	return nil
}

var _ = Describe("Customer Service", func() {
	var (
		mockRepo *MockRepository
		service  *customer.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = customer.NewService(mockRepo, nil, logger)
	})

	Describe("Create", func() {
		It("should create a customer", func() {
			resp, err := service.Create(customer.CustomerRequest{Name: "Ada", Email: "ada@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Email).To(Equal("ada@example.com"))
		})

		It("should reject a malformed email locally", func() {
			_, err := service.Create(customer.CustomerRequest{Name: "Ada", Email: "not-an-email"})
			appErr, ok := internalErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internalErrors.ErrorTypeValidation))
			Expect(mockRepo.customers).To(BeEmpty())
		})

		It("should classify a duplicate email as conflict", func() {
			_, err := service.Create(customer.CustomerRequest{Name: "Ada", Email: "ada@example.com"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(customer.CustomerRequest{Name: "Ada Again", Email: "ada@example.com"})
			Expect(internalErrors.IsConflict(err)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("should report a missing customer as not found", func() {
			_, err := service.Update(99, customer.CustomerRequest{Name: "Ghost", Email: "ghost@example.com"})
			Expect(internalErrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for _, c := range []customer.CustomerRequest{
				{Name: "Ada Lovelace", Email: "ada@example.com"},
				{Name: "Grace Hopper", Email: "grace@example.com"},
				{Name: "Alan Kay", Email: "kay@example.com"},
			} {
				_, err := service.Create(c)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should match the search term against email as well as name", func() {
			result, err := service.List(pagination.NewPageQuery(1, 10, "grace@"))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.TotalRows).To(Equal(int64(1)))
			Expect(result.Items[0].Name).To(Equal("Grace Hopper"))
		})

		It("should order rows by name ascending", func() {
			result, err := service.List(pagination.NewPageQuery(1, 10, ""))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Items[0].Name).To(Equal("Ada Lovelace"))
			Expect(result.Items[1].Name).To(Equal("Alan Kay"))
		})
	})
})
