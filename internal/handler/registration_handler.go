package handler

import (
	"errors"
	"net/http"

	"github.com/Raghugowd/Internx-sub001/internal/model"
	"github.com/Raghugowd/Internx-sub001/internal/response"
	"github.com/Raghugowd/Internx-sub001/internal/service"
	"github.com/Raghugowd/Internx-sub001/internal/validator"
	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles the account-creation endpoint.
type RegistrationHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(userService *service.UserService, authService *service.AuthService) *RegistrationHandler {
	return &RegistrationHandler{userService: userService, authService: authService}
}

// Register godoc
// POST /api/v1/auth/register
// Creates an account in one atomic call: profile fields, the OTP for the
// email, and optional encoded attachments. On success returns a bearer token
// and the user snapshot; on failure no partial account exists.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOTPInvalidOrExpired):
			response.Fail(c, http.StatusUnauthorized, response.ErrOTPInvalidOrExpired)
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			response.Fail(c, http.StatusConflict, response.ErrEmailAlreadyRegistered)
		case errors.Is(err, service.ErrAttachmentTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrAttachmentTooLarge)
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFileType)
		case errors.Is(err, service.ErrAttachmentUnreadable):
			response.Fail(c, http.StatusBadRequest, response.ErrAttachmentUnreadable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	token, err := h.authService.GenerateToken(service.TokenTypeUser, user.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, model.RegisterResponse{Token: token, User: *user})
}
