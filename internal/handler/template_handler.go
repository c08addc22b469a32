package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
	"github.com/GabrielHenriqueHE/sinapse/internal/service"
)

type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Create saves a new certificate template
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, bindErrorMessage(err))
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusCreated, "Modelo de certificado criado com sucesso!", template)
}

// Get returns one of the caller's templates
func (h *TemplateHandler) Get(c *gin.Context) {
	templateID, ok := parseIDParam(c)
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), templateID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// List returns the caller's templates
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, templates)
}

// Update edits one of the caller's templates
func (h *TemplateHandler) Update(c *gin.Context) {
	templateID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, bindErrorMessage(err))
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), templateID, currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Modelo de certificado atualizado com sucesso!", template)
}

// Delete removes one of the caller's templates
func (h *TemplateHandler) Delete(c *gin.Context) {
	templateID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), templateID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Modelo de certificado excluído com sucesso.", nil)
}

// Duplicate clones one of the caller's templates
func (h *TemplateHandler) Duplicate(c *gin.Context) {
	templateID, ok := parseIDParam(c)
	if !ok {
		return
	}

	template, err := h.templateService.DuplicateTemplate(c.Request.Context(), templateID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusCreated, "Modelo de certificado duplicado com sucesso!", template)
}

// QuickPreview renders a template preview with sample data without saving it
func (h *TemplateHandler) QuickPreview(c *gin.Context) {
	var req dto.QuickPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, bindErrorMessage(err))
		return
	}

	preview, err := h.templateService.QuickPreview(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, preview)
}
