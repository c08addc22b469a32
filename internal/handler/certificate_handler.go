package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GabrielHenriqueHE/sinapse/internal/response"
	"github.com/GabrielHenriqueHE/sinapse/internal/service"
)

type CertificateHandler struct {
	certificateService service.CertificateService
}

func NewCertificateHandler(certificateService service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

// List returns the caller's participations eligible for a certificate
func (h *CertificateHandler) List(c *gin.Context) {
	certificates, err := h.certificateService.ListCertificates(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, certificates)
}

// Download renders and streams the caller's certificate for an event
func (h *CertificateHandler) Download(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.certificateService.GenerateCertificate(c.Request.Context(), eventID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
