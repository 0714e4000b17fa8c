package commands

import (
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
	cryptoService "github.com/allisson/pinshield/internal/crypto/service"
	"github.com/allisson/pinshield/internal/pinblock/http/dto"
)

// RunWrapPayload seals {pin, pan} for the server holding publicKeyPEM, the same
// way a client does before calling /encrypt.
//
// Text output is the bare base64 envelope; json output is a ready /encrypt
// request body.
func RunWrapPayload(
	transportCipher cryptoService.TransportCipher,
	writer io.Writer,
	publicKeyPEM []byte,
	pin string,
	pan string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	publicKey, err := cryptoDomain.ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return err
	}

	payload := &cryptoDomain.TransportPayload{PIN: pin, PAN: pan}
	defer payload.Zero()

	envelope, err := transportCipher.Wrap(payload, publicKey)
	if err != nil {
		return fmt.Errorf("failed to wrap payload: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, dto.EncryptRequest{EncryptedData: envelope})
	}

	_, err = fmt.Fprintln(writer, envelope)
	return err
}
