package brand

import (
	"context"
	"log/slog"

	"github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/core/common/validation"
	brandDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/brand"
	"github.com/commerceops/backoffice/internal/core/dberrors"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/core/pagination"
)

type RepositoryAPI interface {
	List(query pagination.PageQuery) ([]*brandDatamodel.Brand, int64, error)
	GetByID(id int64) (*brandDatamodel.Brand, error)
	Create(brand *brandDatamodel.Brand) error
	Update(brand *brandDatamodel.Brand) error
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

func (s *Service) List(query pagination.PageQuery) (*pagination.PageResult[BrandResponse], error) {
	rows, total, err := s.repo.List(query)
	if err != nil {
		s.logger.Error("failed to list brands", "error", err)
		return nil, internal.NewInternalError("failed to list brands", err)
	}

	responses := make([]BrandResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, FromDataModel(row).ToResponse())
	}

	result := pagination.NewPageResult(responses, query, total)
	return &result, nil
}

func (s *Service) Get(id int64) (*BrandResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrBrandNotFound
		}
		s.logger.Error("failed to get brand", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get brand", err)
	}

	resp := FromDataModel(row).ToResponse()
	return &resp, nil
}

func (s *Service) Create(req BrandRequest) (*BrandResponse, error) {
	if err := validateBrand(req); err != nil {
		return nil, err
	}

	model := ToDataModel(NewBrand(req.Name))
	if err := s.repo.Create(model); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, internal.NewConflictError("Brand name already exists", internal.ErrCodeDuplicateName)
		}
		s.logger.Error("failed to create brand", "name", req.Name, "error", err)
		return nil, internal.NewInternalError("failed to create brand", err)
	}

	s.publish(events.ActionCreated, model.ID, model.Name)

	resp := FromDataModel(model).ToResponse()
	return &resp, nil
}

func (s *Service) Update(id int64, req BrandRequest) (*BrandResponse, error) {
	if err := validateBrand(req); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrBrandNotFound
		}
		return nil, internal.NewInternalError("failed to get brand", err)
	}

	model.Name = req.Name
	if err := s.repo.Update(model); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, internal.NewConflictError("Brand name already exists", internal.ErrCodeDuplicateName)
		}
		s.logger.Error("failed to update brand", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to update brand", err)
	}

	s.publish(events.ActionUpdated, model.ID, model.Name)

	resp := FromDataModel(model).ToResponse()
	return &resp, nil
}

func (s *Service) Delete(id int64) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return internal.NewConflictError("Cannot delete brand because it is associated with products", internal.ErrCodeEntityInUse)
		}
		s.logger.Error("failed to delete brand", "id", id, "error", err)
		return internal.NewInternalError("failed to delete brand", err)
	}

	if rows == 0 {
		return internal.ErrBrandNotFound
	}

	s.publish(events.ActionDeleted, id, "")
	return nil
}

func (s *Service) publish(action events.ChangeAction, id int64, name string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), events.NewEntityChanged(events.BrandChanged, action, id, name)); err != nil {
		s.logger.Warn("failed to publish brand change", "id", id, "error", err)
	}
}

func validateBrand(req BrandRequest) error {
	validator := validation.NewValidator()

	validator.Field("name", req.Name).Required().MaxLength(255)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
