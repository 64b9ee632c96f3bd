package category

import (
	"context"
	"log/slog"

	"github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/core/common/validation"
	categoryDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/category"
	"github.com/commerceops/backoffice/internal/core/dberrors"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/core/pagination"
)

type RepositoryAPI interface {
	List(query pagination.PageQuery) ([]*categoryDatamodel.Category, int64, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	Create(category *categoryDatamodel.Category) error
	Update(category *categoryDatamodel.Category) error
	Delete(id int64) (int64, error)
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

func (s *Service) List(query pagination.PageQuery) (*pagination.PageResult[CategoryResponse], error) {
	rows, total, err := s.repo.List(query)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, internal.NewInternalError("failed to list categories", err)
	}

	responses := make([]CategoryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, FromDataModel(row).ToResponse())
	}

	result := pagination.NewPageResult(responses, query, total)
	return &result, nil
}

func (s *Service) Get(id int64) (*CategoryResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrCategoryNotFound
		}
		s.logger.Error("failed to get category", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get category", err)
	}

	resp := FromDataModel(row).ToResponse()
	return &resp, nil
}

func (s *Service) Create(req CategoryRequest) (*CategoryResponse, error) {
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	model := ToDataModel(NewCategory(req.Name, req.Description))
	if err := s.repo.Create(model); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, internal.NewConflictError("Category name already exists", internal.ErrCodeDuplicateName)
		}
		s.logger.Error("failed to create category", "name", req.Name, "error", err)
		return nil, internal.NewInternalError("failed to create category", err)
	}

	s.publish(events.ActionCreated, model.ID, model.Name)

	resp := FromDataModel(model).ToResponse()
	return &resp, nil
}

func (s *Service) Update(id int64, req CategoryRequest) (*CategoryResponse, error) {
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrCategoryNotFound
		}
		return nil, internal.NewInternalError("failed to get category", err)
	}

	model.Name = req.Name
	model.Description = req.Description
	if err := s.repo.Update(model); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, internal.NewConflictError("Category name already exists", internal.ErrCodeDuplicateName)
		}
		s.logger.Error("failed to update category", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to update category", err)
	}

	s.publish(events.ActionUpdated, model.ID, model.Name)

	resp := FromDataModel(model).ToResponse()
	return &resp, nil
}

func (s *Service) Delete(id int64) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return internal.NewConflictError("Cannot delete category because it is associated with products", internal.ErrCodeEntityInUse)
		}
		s.logger.Error("failed to delete category", "id", id, "error", err)
		return internal.NewInternalError("failed to delete category", err)
	}

	if rows == 0 {
		return internal.ErrCategoryNotFound
	}

	s.publish(events.ActionDeleted, id, "")
	return nil
}

func (s *Service) publish(action events.ChangeAction, id int64, name string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), events.NewEntityChanged(events.CategoryChanged, action, id, name)); err != nil {
		s.logger.Warn("failed to publish category change", "id", id, "error", err)
	}
}

func validateCategory(req CategoryRequest) error {
	validator := validation.NewValidator()

	validator.Field("name", req.Name).Required().MaxLength(255)
	validator.Field("description", req.Description).MaxLength(1000)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
