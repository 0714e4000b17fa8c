// Package http provides HTTP handlers for the PIN block protocol.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/pinshield/internal/httputil"
	"github.com/allisson/pinshield/internal/pinblock/http/dto"
	pinblockUseCase "github.com/allisson/pinshield/internal/pinblock/usecase"
	customValidation "github.com/allisson/pinshield/internal/validation"
)

// PinBlockHandler handles the public key, encrypt and decrypt endpoints.
type PinBlockHandler struct {
	pinBlockUseCase pinblockUseCase.PinBlockUseCase
	logger          *slog.Logger
}

// NewPinBlockHandler creates a new PIN block handler.
func NewPinBlockHandler(
	pinBlockUseCase pinblockUseCase.PinBlockUseCase,
	logger *slog.Logger,
) *PinBlockHandler {
	return &PinBlockHandler{
		pinBlockUseCase: pinBlockUseCase,
		logger:          logger,
	}
}

// PublicKeyHandler returns the transport public key.
// GET /public-key
func (h *PinBlockHandler) PublicKeyHandler(c *gin.Context) {
	publicKey, err := h.pinBlockUseCase.PublicKey(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicKeyResponse{PublicKey: publicKey})
}

// EncryptHandler opens the transport envelope and returns the encrypted PIN block
// along with its intermediate fields.
// POST /encrypt
func (h *PinBlockHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.pinBlockUseCase.Encrypt(c.Request.Context(), req.EncryptedData)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncryptResponse(result))
}

// DecryptHandler decrypts a PIN block and extracts the PIN with the given PAN.
// POST /decrypt
func (h *PinBlockHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.pinBlockUseCase.Decrypt(c.Request.Context(), req.EncryptedBlockHex, req.PAN)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecryptResponse(result))
}
