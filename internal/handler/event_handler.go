package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
	"github.com/GabrielHenriqueHE/sinapse/internal/service"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create creates a new event owned by the authenticated teacher
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, bindErrorMessage(err))
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusCreated, "Evento criado com sucesso!", event)
}

// Get returns one event with its participant count
func (h *EventHandler) Get(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, event)
}

// Dashboard returns the event listings for the events page
func (h *EventHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.eventService.GetDashboard(c.Request.Context(), currentUserID(c), currentUserRole(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dashboard)
}

// Update edits an event owned by the caller
func (h *EventHandler) Update(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, bindErrorMessage(err))
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), eventID, currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Evento atualizado com sucesso!", event)
}

// Close freezes enrollment on an event
func (h *EventHandler) Close(c *gin.Context) {
	h.lifecycle(c, h.eventService.CloseEvent)
}

// Cancel cancels an event
func (h *EventHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, h.eventService.CancelEvent)
}

// Finish finishes an ended event, unlocking certificates
func (h *EventHandler) Finish(c *gin.Context) {
	h.lifecycle(c, h.eventService.FinishEvent)
}

// Delete removes a canceled event
func (h *EventHandler) Delete(c *gin.Context) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), eventID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Evento excluído com sucesso.", nil)
}

// ListCategories lists the categories available for the event form
func (h *EventHandler) ListCategories(c *gin.Context) {
	categories, err := h.eventService.ListCategories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, categories)
}

// lifecycle runs one of the close/cancel/finish transitions and renders the
// result, surfacing no-ops as informational messages
func (h *EventHandler) lifecycle(c *gin.Context, transition func(ctx context.Context, eventID, userID uuid.UUID) (*dto.LifecycleResult, error)) {
	eventID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := transition(c.Request.Context(), eventID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, result.Notice, result.Event)
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Identificador inválido.")
		return uuid.Nil, false
	}
	return id, true
}
