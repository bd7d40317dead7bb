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

// OTPHandler handles email verification endpoints.
type OTPHandler struct {
	otpService *service.OTPService
}

// NewOTPHandler creates a new OTPHandler.
func NewOTPHandler(otpService *service.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// SendOTP godoc
// POST /api/v1/auth/send-otp
// Issues a fresh verification code for the email, replacing any outstanding
// challenge, and dispatches it by mail.
func (h *OTPHandler) SendOTP(c *gin.Context) {
	var req model.SendOTPRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.otpService.RequestChallenge(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrOTPDispatchFailed) {
			response.Fail(c, http.StatusBadGateway, response.ErrOTPDispatchFailed)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sent": true})
}
