package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/internal/dto"
	"github.com/tuanvo/exam-portal/internal/service"
)

type NotificationController struct {
	otpService         service.OTPService
	certificateService service.CertificateService
}

func NewNotificationController(otp service.OTPService, certs service.CertificateService) *NotificationController {
	return &NotificationController{otpService: otp, certificateService: certs}
}

// SendOTP godoc
// @Summary Email a 5-digit verification code
// @Description The code is returned in the response body; the client performs the comparison. Deliberately not a security boundary.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body dto.SendOTPRequest true "Recipient email"
// @Success 200 {object} dto.SendOTPResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid email"
// @Failure 500 {object} dto.ErrorResponse "Delivery failure"
// @Router /send-otp [post]
func (c *NotificationController) SendOTP(ctx *gin.Context) {
	var req dto.SendOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Email is required", Details: []string{err.Error()}})
		return
	}

	code, err := c.otpService.SendOTP(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("SendOTP: delivery failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to send OTP email"})
		return
	}
	ctx.JSON(http.StatusOK, dto.SendOTPResponse{
		Message: "An OTP code has been sent to your email",
		Email:   req.Email,
		OTP:     code,
	})
}

// SendCertificate godoc
// @Summary Email the result certificate
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body dto.SendCertificateRequest true "Recipient, score and optional exam reference for the review link"
// @Success 200 {object} dto.SendCertificateResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields or score outside [0,10]"
// @Failure 500 {object} dto.ErrorResponse "Delivery failure"
// @Router /send-certificate [post]
func (c *NotificationController) SendCertificate(ctx *gin.Context) {
	var req dto.SendCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing required fields: email, recipientName, score", Details: []string{err.Error()}})
		return
	}

	err := c.certificateService.SendCertificate(req.Email, req.RecipientName, *req.Score, req.ExamRef)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrMissingRecipient), errors.Is(err, service.ErrInvalidScore):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("SendCertificate: delivery failed")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to send certificate email"})
		}
		return
	}
	ctx.JSON(http.StatusOK, dto.SendCertificateResponse{Message: "Certificate sent to your email"})
}
