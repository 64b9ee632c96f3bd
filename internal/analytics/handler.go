package analytics

import (
	"net/http"

	productDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/product"
	"github.com/commerceops/backoffice/internal/transport"
)

type ServiceAPI interface {
	Summary(lowStockThreshold int) (*Summary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetSummary handles GET /analytics/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(productDatamodel.LowStockThreshold)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
