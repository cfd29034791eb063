package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

// DocumentHandler handles deal document uploads.
type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload handles POST /v1/deals/:reference/documents: multipart upload by the
// owning agent.
//
// @Summary      Attach a document to a deal
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true   "Deal reference"
// @Param        file       formData  file    true   "Document file"
// @Param        file_type  formData  string  false  "Document type tag (e.g. contract, id_copy)"
// @Success      201        {object}  domain.DealDocument
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/deals/{reference}/documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	doc, err := h.service.Attach(c.Request().Context(), c.Param("reference"), ports.AttachDocumentInput{
		FileType: c.FormValue("file_type"),
		FileName: fileHeader.Filename,
		Content:  src,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, doc)
}

// List handles GET /v1/deals/:reference/documents.
//
// @Summary      List documents attached to a deal
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path     string  true  "Deal reference"
// @Success      200        {array}  domain.DealDocument
// @Failure      403        {object} errorResponse
// @Failure      404        {object} errorResponse
// @Router       /v1/deals/{reference}/documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	docs, err := h.service.ListForDeal(c.Request().Context(), c.Param("reference"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}
