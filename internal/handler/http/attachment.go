package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentum-hr/performance-backend-go/internal/handler/http/response"
	"github.com/momentum-hr/performance-backend-go/internal/service/file"
)

type AttachmentHandler interface {
	// Upload handles POST /tasks/{id}/attachment/upload (multipart field "file")
	Upload(w http.ResponseWriter, r *http.Request)
	// Remove handles DELETE /tasks/{id}/attachment
	Remove(w http.ResponseWriter, r *http.Request)
}

type attachmentHandlerImpl struct {
	attachmentService file.AttachmentService
}

func NewAttachmentHandler(attachmentService file.AttachmentService) AttachmentHandler {
	return &attachmentHandlerImpl{attachmentService: attachmentService}
}

func (h *attachmentHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, file.MaxAttachmentSize+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		slog.Error("UploadAttachment parse error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file", map[string]string{"file": "file is required"})
		return
	}
	defer f.Close()

	result, err := h.attachmentService.Upload(r.Context(), caller, chi.URLParam(r, "id"), header.Filename, f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attachment uploaded", result)
}

func (h *attachmentHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.attachmentService.Remove(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attachment removed", result)
}
