package analytics_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/commerceops/backoffice/internal/analytics"
	analyticsPostgres "github.com/commerceops/backoffice/internal/analytics/postgres"
	customerDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/customer"
	orderDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/order"
	productDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/product"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAnalyticsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analytics Service Suite")
}

var _ = Describe("Analytics Summary", func() {
	var (
		db      *gorm.DB
		service *analytics.Service
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&productDatamodel.Product{},
			&orderDatamodel.Order{},
			&customerDatamodel.Customer{},
		)
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = analytics.NewService(analyticsPostgres.NewAnalyticsRepository(db), slogger)

		products := []productDatamodel.Product{
			{Name: "Widget", SKU: "WID-001", Price: 10, Stock: 50, CategoryID: 1, BrandID: 1},
			{Name: "Gadget", SKU: "GAD-001", Price: 5, Stock: 3, CategoryID: 1, BrandID: 1},
			{Name: "Sprocket", SKU: "SPR-001", Price: 2, Stock: 0, CategoryID: 1, BrandID: 1},
		}
		Expect(db.Create(&products).Error).To(Succeed())

		Expect(db.Create(&customerDatamodel.Customer{Name: "Ada", Email: "ada@example.com"}).Error).To(Succeed())

		orders := []orderDatamodel.Order{
			{Number: "ORD-1", CustomerID: 1, Status: orderDatamodel.StatusPaid, Total: 100},
			{Number: "ORD-2", CustomerID: 1, Status: orderDatamodel.StatusDelivered, Total: 40},
			{Number: "ORD-3", CustomerID: 1, Status: orderDatamodel.StatusPending, Total: 999},
			{Number: "ORD-4", CustomerID: 1, Status: orderDatamodel.StatusCancelled, Total: 999},
		}
		Expect(db.Create(&orders).Error).To(Succeed())
	})

	It("should count entities and sum only realized revenue", func() {
		summary, err := service.Summary(productDatamodel.LowStockThreshold)
		Expect(err).NotTo(HaveOccurred())

		Expect(summary.ProductCount).To(Equal(int64(3)))
		Expect(summary.OrderCount).To(Equal(int64(4)))
		Expect(summary.CustomerCount).To(Equal(int64(1)))
		Expect(summary.Revenue).To(Equal(140.0))
	})

	It("should count products under the low stock threshold", func() {
		summary, err := service.Summary(productDatamodel.LowStockThreshold)
		Expect(err).NotTo(HaveOccurred())

		// Gadget (3) and Sprocket (0) are below the threshold of 10
		Expect(summary.LowStockCount).To(Equal(int64(2)))
	})
})
