package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
	"github.com/GabrielHenriqueHE/sinapse/internal/service"
)

type ParticipationHandler struct {
	enrollmentService service.EnrollmentService
}

func NewParticipationHandler(enrollmentService service.EnrollmentService) *ParticipationHandler {
	return &ParticipationHandler{enrollmentService: enrollmentService}
}

// Enroll registers the authenticated student in an event
func (h *ParticipationHandler) Enroll(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.enrollmentService.Enroll(c.Request.Context(), eventID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.SendMessage(c, status, result.Notice, result.Participation)
}

// CancelEnrollment removes the authenticated student's enrollment
func (h *ParticipationHandler) CancelEnrollment(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.enrollmentService.CancelEnrollment(c.Request.Context(), eventID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, result.Notice, nil)
}

// GetAttendance returns the attendance sheet for the event creator
func (h *ParticipationHandler) GetAttendance(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	attendance, err := h.enrollmentService.GetAttendance(c.Request.Context(), eventID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, attendance)
}

// UpdateAttendance marks a participant present or absent
func (h *ParticipationHandler) UpdateAttendance(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, bindErrorMessage(err))
		return
	}

	participation, err := h.enrollmentService.UpdateAttendance(c.Request.Context(), eventID, currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Presença registrada com sucesso.", participation)
}
