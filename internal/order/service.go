package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/core/common/validation"
	orderDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/order"
	productDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/product"
	"github.com/commerceops/backoffice/internal/core/dberrors"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/core/pagination"
)

type RepositoryAPI interface {
	List(query pagination.PageQuery) ([]*orderDatamodel.Order, int64, error)
	GetByID(id int64) (*orderDatamodel.Order, []*orderDatamodel.OrderItem, error)
	Create(order *orderDatamodel.Order, items []*orderDatamodel.OrderItem) error
	UpdateStatus(id int64, status orderDatamodel.Status) (int64, error)
	Delete(id int64) (int64, error)
}

// ProductReaderAPI resolves order line products so unit prices are
// snapshotted at order time.
type ProductReaderAPI interface {
	GetByID(id int64) (*productDatamodel.Product, error)
}

type Service struct {
	repo     RepositoryAPI
	products ProductReaderAPI
	bus      *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, products ProductReaderAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		bus:      bus,
		logger:   logger,
	}
}

func (s *Service) List(query pagination.PageQuery) (*pagination.PageResult[OrderResponse], error) {
	rows, total, err := s.repo.List(query)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		return nil, internal.NewInternalError("failed to list orders", err)
	}

	responses := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, FromDataModel(row, nil).ToResponse())
	}

	result := pagination.NewPageResult(responses, query, total)
	return &result, nil
}

func (s *Service) Get(id int64) (*OrderResponse, error) {
	row, items, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrOrderNotFound
		}
		s.logger.Error("failed to get order", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to get order", err)
	}

	resp := FromDataModel(row, items).ToResponse()
	return &resp, nil
}

func (s *Service) Create(req OrderRequest) (*OrderResponse, error) {
	if err := validateOrder(req); err != nil {
		return nil, err
	}

	now := time.Now()
	model := &orderDatamodel.Order{
		Number:     NewOrderNumber(),
		CustomerID: req.CustomerID,
		Status:     orderDatamodel.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	items := make([]*orderDatamodel.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		p, err := s.products.GetByID(line.ProductID)
		if err != nil {
			if dberrors.IsNotFound(err) {
				return nil, internal.NewConflictError(
					fmt.Sprintf("Product %d does not exist", line.ProductID),
					internal.ErrCodeEntityInUse)
			}
			return nil, internal.NewInternalError("failed to resolve order line product", err)
		}

		items = append(items, &orderDatamodel.OrderItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
		})
		model.Total += float64(line.Quantity) * p.Price
	}

	if err := s.repo.Create(model, items); err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return nil, internal.NewConflictError("Order number already exists", internal.ErrCodeDuplicateName)
		case dberrors.IsForeignKeyViolation(err):
			return nil, internal.NewConflictError("Customer or product does not exist", internal.ErrCodeEntityInUse)
		default:
			s.logger.Error("failed to create order", "error", err)
			return nil, internal.NewInternalError("failed to create order", err)
		}
	}

	s.publish(events.ActionCreated, model.ID, model.Number)

	resp := FromDataModel(model, items).ToResponse()
	return &resp, nil
}

func (s *Service) UpdateStatus(id int64, req StatusUpdateRequest) (*OrderResponse, error) {
	next := orderDatamodel.Status(req.Status)
	if !next.Valid() {
		return nil, internal.NewValidationFieldError("status",
			fmt.Sprintf("%q is not a valid order status", req.Status),
			internal.ErrCodeInvalidStatus)
	}

	model, items, err := s.repo.GetByID(id)
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, internal.ErrOrderNotFound
		}
		return nil, internal.NewInternalError("failed to get order", err)
	}

	if !model.Status.CanTransitionTo(next) {
		return nil, internal.NewConflictError(
			fmt.Sprintf("Cannot move order from %s to %s", model.Status, next),
			internal.ErrCodeStatusForbidden)
	}

	rows, err := s.repo.UpdateStatus(id, next)
	if err != nil {
		s.logger.Error("failed to update order status", "id", id, "error", err)
		return nil, internal.NewInternalError("failed to update order status", err)
	}
	if rows == 0 {
		return nil, internal.ErrOrderNotFound
	}

	model.Status = next
	s.publish(events.ActionUpdated, model.ID, model.Number)

	resp := FromDataModel(model, items).ToResponse()
	return &resp, nil
}

func (s *Service) Delete(id int64) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete order", "id", id, "error", err)
		return internal.NewInternalError("failed to delete order", err)
	}

	if rows == 0 {
		return internal.ErrOrderNotFound
	}

	s.publish(events.ActionDeleted, id, "")
	return nil
}

func (s *Service) publish(action events.ChangeAction, id int64, number string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), events.NewEntityChanged(events.OrderChanged, action, id, number)); err != nil {
		s.logger.Warn("failed to publish order change", "id", id, "error", err)
	}
}

func validateOrder(req OrderRequest) error {
	validator := validation.NewValidator()

	validator.Field("customer_id", req.CustomerID).Required()
	validator.Field("items", req.Items).Custom(func(value interface{}) *internal.AppError {
		items, _ := value.([]OrderItemRequest)
		if len(items) == 0 {
			return internal.NewValidationFieldError("items", "order needs at least one item", internal.ErrCodeValidationFailed)
		}
		for _, item := range items {
			if item.ProductID == 0 {
				return internal.NewValidationFieldError("items", "order item needs a product", internal.ErrCodeValidationFailed)
			}
			if item.Quantity < 1 {
				return internal.NewValidationFieldError("items", "order item quantity must be at least 1", internal.ErrCodeValidationFailed)
			}
		}
		return nil
	})

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
