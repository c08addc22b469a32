package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses
func handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Recurso não encontrado.")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		statusCode := mapErrorCodeToHTTPStatus(appErr.Code)
		response.SendError(c, statusCode, appErr.Code, appErr.Message)
		return
	}

	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal,
		"Ocorreu um erro interno. Tente novamente mais tarde.")
}

// bindErrorMessage turns binding failures into a user-facing message,
// special-casing the date rules so the form can say what is wrong
func bindErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			switch {
			case fieldErr.Field() == "StartDate" && fieldErr.Tag() == "future":
				return "A data de início deve ser futura."
			case fieldErr.Field() == "EndDate" && fieldErr.Tag() == "gtfield":
				return "A data de término deve ser posterior à data de início."
			case fieldErr.Field() == "ParticipantsLimit" && fieldErr.Tag() == "min":
				return "O limite de participantes deve ser de pelo menos 1."
			}
		}
	}
	return "Dados inválidos. Verifique os campos e tente novamente."
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeAlreadyExists, response.ErrCodeConflict:
		return http.StatusConflict
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	case response.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case response.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
