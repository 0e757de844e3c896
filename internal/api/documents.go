package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/vetdesk/internal/clinic"
	"github.com/starford/vetdesk/internal/models"
)

const defaultMaxUpload = 50 << 20 // 50 MB

// ListDocuments handles GET /api/pets/{id}/documents.
//
//	@Summary		List a pet's medical documents
//	@Tags			documents
//	@Produce		json
//	@Param			id				path		int		true	"Pet id"
//	@Param			search			query		string	false	"Matches file name, description or uploader"
//	@Param			documentType	query		string	false	"Document type"
//	@Success		200				{object}	view.Snapshot[models.Document]
//	@Security		BearerAuth
//	@Router			/pets/{id}/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	petID, ok := intParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid pet id"))
		return
	}
	q := r.URL.Query()
	snap, err := h.svc.ListDocuments(r.Context(), petID, clinic.DocumentFilters.Parse(q), pageRequest(q))
	if err != nil {
		writeServiceError(w, "list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DocumentHandler accepts and serves uploaded document files.
type DocumentHandler struct {
	svc      *clinic.Service
	maxBytes int64
}

// NewDocumentHandler creates a handler limiting uploads to maxBytes.
func NewDocumentHandler(svc *clinic.Service, maxBytes int64) *DocumentHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	return &DocumentHandler{svc: svc, maxBytes: maxBytes}
}

// Upload handles POST /api/pets/{id}/documents (multipart/form-data with
// fields "file", "documentType" and "description").
//
//	@Summary		Upload a medical document
//	@Tags			documents
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id				path		int		true	"Pet id"
//	@Param			file			formData	file	true	"Document file"
//	@Param			documentType	formData	string	false	"Document type"
//	@Success		201				{object}	models.Document
//	@Failure		400				{object}	errResponse
//	@Security		BearerAuth
//	@Router			/pets/{id}/documents [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	petID, ok := intParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid pet id"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}

	doc, err := h.svc.UploadDocument(clinic.Upload{
		PetID:        petID,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		DocumentType: models.DocumentType(r.FormValue("documentType")),
		Description:  r.FormValue("description"),
		UploadedBy:   UserEmail(r.Context()),
		Data:         data,
	})
	if err != nil {
		writeServiceError(w, "upload document", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// ServeFile handles GET /api/pets/{id}/documents/{filename}.
func (h *DocumentHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	petID, ok := intParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid pet id"))
		return
	}
	abs, err := h.svc.DocumentFile(petID, chi.URLParam(r, "filename"))
	if err != nil {
		writeServiceError(w, "serve document", err)
		return
	}
	http.ServeFile(w, r, abs)
}
