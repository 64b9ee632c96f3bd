package product

import (
	"context"
	"log/slog"

	"github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/core/common/validation"
	productDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/product"
	"github.com/commerceops/backoffice/internal/core/dberrors"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/core/pagination"
)

type RepositoryAPI interface {
	List(query pagination.PageQuery) ([]*productDatamodel.Product, int64, error)
	GetByID(id int64) (*productDatamodel.Product, error)
	Create(product *productDatamodel.Product) error
	Update(product *productDatamodel.Product) error
	Delete(id int64) (int64, error)
	CountLowStock(threshold int) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) List(query pagination.PageQuery) (*pagination.PageResult[ProductResponse], error) {
	rows, total, err := s.repo.List(query)
	if err != nil {
		s.logger.Error("failed to list products", "error", err)
		return nil, internal.NewInternalError("failed to list products", err)
	}

	responses := make([]ProductResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, FromDataModel(row).ToResponse())
	}

	result := pagination.NewPageResult(responses, query, total)
	return &result, nil
}

func (s *Service) Get(id int64) (*ProductResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrProductNotFound
		}
		s.logger.Error("failed to get product", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get product", err)
	}

	resp := FromDataModel(row).ToResponse()
	return &resp, nil
}

func (s *Service) Create(req ProductRequest) (*ProductResponse, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	model := ToDataModel(NewProduct(req))
	if err := s.repo.Create(model); err != nil {
		return nil, s.classifyWriteError(err, "create")
	}

	s.publish(events.ActionCreated, model.ID, model.Name)

	resp := FromDataModel(model).ToResponse()
	return &resp, nil
}

func (s *Service) Update(id int64, req ProductRequest) (*ProductResponse, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrProductNotFound
		}
		return nil, internal.NewInternalError("failed to get product", err)
	}

	model.Name = req.Name
	model.SKU = req.SKU
	model.Description = req.Description
	model.Price = req.Price
	model.Stock = req.Stock
	model.ImageURL = req.ImageURL
	model.CategoryID = req.CategoryID
	model.BrandID = req.BrandID

	if err := s.repo.Update(model); err != nil {
		return nil, s.classifyWriteError(err, "update")
	}

	s.publish(events.ActionUpdated, model.ID, model.Name)

	resp := FromDataModel(model).ToResponse()
	return &resp, nil
}

func (s *Service) Delete(id int64) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return internal.NewConflictError("Cannot delete product because it is referenced by orders", internal.ErrCodeEntityInUse)
		}
		s.logger.Error("failed to delete product", "id", id, "error", err)
		return internal.NewInternalError("failed to delete product", err)
	}

	if rows == 0 {
		return internal.ErrProductNotFound
	}

	s.publish(events.ActionDeleted, id, "")
	return nil
}

// classifyWriteError maps database constraint failures on product writes to
// their user-facing conflict shapes.
func (s *Service) classifyWriteError(err error, op string) error {
	switch {
	case dberrors.IsUniqueViolation(err):
		return internal.NewConflictError("Product SKU already exists", internal.ErrCodeDuplicateName)
	case dberrors.IsForeignKeyViolation(err):
		return internal.NewConflictError("Category or brand does not exist", internal.ErrCodeEntityInUse)
	default:
		s.logger.Error("failed to "+op+" product", "error", err)
		return internal.NewInternalError("failed to "+op+" product", err)
	}
}

func (s *Service) publish(action events.ChangeAction, id int64, name string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), events.NewEntityChanged(events.ProductChanged, action, id, name)); err != nil {
		s.logger.Warn("failed to publish product change", "id", id, "error", err)
	}
}

func validateProduct(req ProductRequest) error {
	validator := validation.NewValidator()

	validator.Field("name", req.Name).Required().MaxLength(255)
	validator.Field("sku", req.SKU).Required().MaxLength(64)
	validator.Field("price", req.Price).NonNegativeFloat(internal.ErrCodeInvalidPrice)
	validator.Field("stock", req.Stock).NonNegativeInt(internal.ErrCodeInvalidStock)
	validator.Field("category_id", req.CategoryID).Required()
	validator.Field("brand_id", req.BrandID).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
