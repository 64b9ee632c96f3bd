package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/commerceops/backoffice/internal/category"
	categoryPostgres "github.com/commerceops/backoffice/internal/category/postgres"
	categoryDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/category"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		service *category.Service
		handler *category.Handler
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.Category{})
		Expect(err).NotTo(HaveOccurred())

		repo := categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, nil, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = category.NewHandler(baseHandler, service)

		for _, name := range []string{"Electronics", "Apparel", "Garden"} {
			_, err := service.Create(category.CategoryRequest{Name: name})
			Expect(err).NotTo(HaveOccurred())
		}
	})

	It("should list categories as a page envelope ordered by name", func() {
		req := httptest.NewRequest(http.MethodGet, "/categories?page=1", nil)
		w := httptest.NewRecorder()

		handler.ListCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response pagination.PageResult[category.CategoryResponse]
		err := json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())

		Expect(response.TotalRows).To(Equal(int64(3)))
		Expect(response.TotalPages).To(Equal(1))
		Expect(response.Items[0].Name).To(Equal("Apparel"))
	})

	It("should filter by search term from the query string", func() {
		req := httptest.NewRequest(http.MethodGet, "/categories?page=1&search=ele", nil)
		w := httptest.NewRecorder()

		handler.ListCategories(w, req)

		var response pagination.PageResult[category.CategoryResponse]
		err := json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())

		Expect(response.TotalRows).To(Equal(int64(1)))
		Expect(response.Items[0].Name).To(Equal("Electronics"))
	})

	It("should return a conflict envelope for a duplicate create", func() {
		body := strings.NewReader(`{"name":"Electronics"}`)
		req := httptest.NewRequest(http.MethodPost, "/categories", body)
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring("Category name already exists"))
	})

	It("should return 400 with field details for a blank name", func() {
		body := strings.NewReader(`{"name":""}`)
		req := httptest.NewRequest(http.MethodPost, "/categories", body)
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("name is required"))
	})
})
