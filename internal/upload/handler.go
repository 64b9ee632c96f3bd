package upload

import (
	"context"
	"io"
	"net/http"

	"github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/transport"
)

// UploadData carries the stored object's public URL.
type UploadData struct {
	PublicURL string `json:"publicUrl"`
}

// UploadEnvelope is the fixed response shape of the upload endpoint.
type UploadEnvelope struct {
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Data    *UploadData `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ServiceAPI interface {
	Upload(ctx context.Context, filename string, size int64, body io.Reader, oldKey string) (string, error)
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

// UploadImage handles POST /upload with a multipart "file" field and an
// optional "oldKey" field naming the object this upload replaces.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFileSize+1<<20)

	if err := r.ParseMultipartForm(MaxFileSize); err != nil {
		h.writeEnvelope(w, http.StatusBadRequest, nil, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeEnvelope(w, http.StatusBadRequest, nil, "file field is required")
		return
	}
	defer file.Close()

	oldKey := r.FormValue("oldKey")

	publicURL, err := h.Service.Upload(r.Context(), header.Filename, header.Size, file, oldKey)
	if err != nil {
		status := http.StatusInternalServerError
		message := "upload failed"
		if appErr, ok := internal.IsAppError(err); ok {
			message = appErr.Message
			if appErr.Type == internal.ErrorTypeValidation {
				status = http.StatusBadRequest
			}
		}
		h.writeEnvelope(w, status, nil, message)
		return
	}

	h.writeEnvelope(w, http.StatusOK, &UploadData{PublicURL: publicURL}, "")
}

func (h *Handler) writeEnvelope(w http.ResponseWriter, code int, data *UploadData, message string) {
	status := "success"
	if code >= 400 {
		status = "error"
	}
	h.WriteJSON(w, code, UploadEnvelope{
		Code:    code,
		Status:  status,
		Data:    data,
		Message: message,
	})
}
