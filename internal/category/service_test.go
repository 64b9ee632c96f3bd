package category_test

import (
	"errors"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"

	internalErrors "github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/category"
	categoryDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/category"
	"github.com/commerceops/backoffice/internal/core/pagination"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// MockRepository implements category.RepositoryAPI for testing
type MockRepository struct {
	categories map[int64]*categoryDatamodel.Category
	nextID     int64
	deleteErr  error
	listErr    error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		categories: make(map[int64]*categoryDatamodel.Category),
		nextID:     1,
	}
}

func (m *MockRepository) List(query pagination.PageQuery) ([]*categoryDatamodel.Category, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}

	var all []*categoryDatamodel.Category
	for _, c := range m.categories {
		if query.HasSearch() && !strings.Contains(strings.ToLower(c.Name), query.SearchPattern()) {
			continue
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

func (m *MockRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (m *MockRepository) Create(c *categoryDatamodel.Category) error {
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return errors.New("UNIQUE constraint failed: categories.name")
		}
	}
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = c
	return nil
}

func (m *MockRepository) Update(c *categoryDatamodel.Category) error {
	for _, existing := range m.categories {
		if existing.ID != c.ID && existing.Name == c.Name {
			return errors.New("UNIQUE constraint failed: categories.name")
		}
	}
	m.categories[c.ID] = c
	return nil
}

func (m *MockRepository) Delete(id int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.categories[id]; !ok {
		return 0, nil
	}
	delete(m.categories, id)
	return 1, nil
}

var _ = Describe("Category Service", func() {
	var (
		mockRepo *MockRepository
		service  *category.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, nil, logger)
	})

	Describe("Create", func() {
		It("should create a category", func() {
			resp, err := service.Create(category.CategoryRequest{Name: "Electronics", Description: "Gadgets"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Name).To(Equal("Electronics"))
		})

		It("should reject a blank name locally", func() {
			_, err := service.Create(category.CategoryRequest{Description: "no name"})
			appErr, ok := internalErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internalErrors.ErrorTypeValidation))
			Expect(mockRepo.categories).To(BeEmpty())
		})

		It("should classify duplicate names as conflict", func() {
			_, err := service.Create(category.CategoryRequest{Name: "Electronics"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(category.CategoryRequest{Name: "Electronics"})
			Expect(internalErrors.IsConflict(err)).To(BeTrue())

			appErr, _ := internalErrors.IsAppError(err)
			Expect(appErr.Message).To(Equal("Category name already exists"))
		})
	})

	Describe("Update", func() {
		It("should classify renaming onto an existing name as conflict", func() {
			a, err := service.Create(category.CategoryRequest{Name: "Electronics"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(category.CategoryRequest{Name: "Apparel"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(a.ID, category.CategoryRequest{Name: "Apparel"})
			Expect(internalErrors.IsConflict(err)).To(BeTrue())
		})

		It("should report a missing category as not found", func() {
			_, err := service.Update(42, category.CategoryRequest{Name: "Ghost"})
			Expect(internalErrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should classify a referenced category as conflict and keep it", func() {
			resp, err := service.Create(category.CategoryRequest{Name: "Electronics"})
			Expect(err).NotTo(HaveOccurred())

			mockRepo.deleteErr = errors.New("FOREIGN KEY constraint failed")
			err = service.Delete(resp.ID)
			Expect(internalErrors.IsConflict(err)).To(BeTrue())

			appErr, _ := internalErrors.IsAppError(err)
			Expect(appErr.Code).To(Equal(internalErrors.ErrCodeEntityInUse))
			Expect(mockRepo.categories).To(HaveLen(1))
		})

		It("should report a missing category as not found", func() {
			Expect(internalErrors.IsNotFound(service.Delete(999))).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("should page 25 categories into 3 pages of 10", func() {
			for i := 0; i < 25; i++ {
				name := "Category " + string(rune('A'+i))
				_, err := service.Create(category.CategoryRequest{Name: name})
				Expect(err).NotTo(HaveOccurred())
			}

			page1, err := service.List(pagination.NewPageQuery(1, 10, ""))
			Expect(err).NotTo(HaveOccurred())
			Expect(page1.TotalRows).To(Equal(int64(25)))
			Expect(page1.TotalPages).To(Equal(3))
			Expect(page1.Items).To(HaveLen(10))

			page3, err := service.List(pagination.NewPageQuery(3, 10, ""))
			Expect(err).NotTo(HaveOccurred())
			Expect(page3.Items).To(HaveLen(5))
		})
	})
})
