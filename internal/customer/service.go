package customer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/core/common/validation"
	customerDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/customer"
	"github.com/commerceops/backoffice/internal/core/dberrors"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/core/pagination"
)

type RepositoryAPI interface {
	List(query pagination.PageQuery) ([]*customerDatamodel.Customer, int64, error)
	GetByID(id int64) (*customerDatamodel.Customer, error)
	Create(customer *customerDatamodel.Customer) error
	Update(customer *customerDatamodel.Customer) error
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

func (s *Service) List(query pagination.PageQuery) (*pagination.PageResult[CustomerResponse], error) {
	rows, total, err := s.repo.List(query)
	if err != nil {
		s.logger.Error("failed to list customers", "error", err)
		return nil, internal.NewInternalError("failed to list customers", err)
	}

	responses := make([]CustomerResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, FromDataModel(row).ToResponse())
	}

	result := pagination.NewPageResult(responses, query, total)
	return &result, nil
}

func (s *Service) Get(id int64) (*CustomerResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrCustomerNotFound
		}
		s.logger.Error("failed to get customer", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get customer", err)
	}

	resp := FromDataModel(row).ToResponse()
	return &resp, nil
}

func (s *Service) Create(req CustomerRequest) (*CustomerResponse, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	model := ToDataModel(NewCustomer(req.Name, req.Email))
	if err := s.repo.Create(model); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, internal.NewConflictError("Customer email already exists", internal.ErrCodeDuplicateName)
		}
		s.logger.Error("failed to create customer", "email", req.Email, "error", err)
		return nil, internal.NewInternalError("failed to create customer", err)
	}

	s.publish(events.ActionCreated, model.ID, model.Name)

	resp := FromDataModel(model).ToResponse()
	return &resp, nil
}

func (s *Service) Update(id int64, req CustomerRequest) (*CustomerResponse, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrCustomerNotFound
		}
		return nil, internal.NewInternalError("failed to get customer", err)
	}

	model.Name = req.Name
	model.Email = req.Email
	if err := s.repo.Update(model); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, internal.NewConflictError("Customer email already exists", internal.ErrCodeDuplicateName)
		}
		s.logger.Error("failed to update customer", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to update customer", err)
	}

	s.publish(events.ActionUpdated, model.ID, model.Name)

	resp := FromDataModel(model).ToResponse()
	return &resp, nil
}

func (s *Service) publish(action events.ChangeAction, id int64, name string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), events.NewEntityChanged(events.CustomerChanged, action, id, name)); err != nil {
		s.logger.Warn("failed to publish customer change", "id", id, "error", err)
	}
}

func validateCustomer(req CustomerRequest) error {
	validator := validation.NewValidator()

	validator.Field("name", req.Name).Required().MaxLength(255)
	validator.Field("email", req.Email).Required().MaxLength(255).Custom(func(value interface{}) *internal.AppError {
		v, _ := value.(string)
		if v != "" && !strings.Contains(v, "@") {
			return internal.NewValidationFieldError("email", "email must be a valid address", internal.ErrCodeValidationFailed)
		}
		return nil
	})

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
