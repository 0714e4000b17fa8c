package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	cryptoService "github.com/allisson/pinshield/internal/crypto/service"
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
	"github.com/allisson/pinshield/internal/pinblock/http/dto"
	pinblockService "github.com/allisson/pinshield/internal/pinblock/service"
)

// RunEncryptPinBlock builds the Format 0 block for pin and pan and encrypts it
// under the configured zone key. The transport layer is skipped, so this is
// meant for operators checking interoperability with another node.
func RunEncryptPinBlock(
	zoneCipher cryptoService.ZoneCipher,
	codec pinblockService.Codec,
	logger *slog.Logger,
	writer io.Writer,
	pin string,
	pan string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	fields, err := codec.Encode(pin, pan)
	if err != nil {
		return err
	}
	defer fields.Zero()

	encrypted, err := zoneCipher.EncryptBlock(fields.ClearBlock)
	if err != nil {
		return fmt.Errorf("failed to encrypt pin block: %w", err)
	}

	response := dto.EncryptResponse{
		PinField:       fields.PinField,
		PanField:       fields.PanField,
		ClearBlock:     fields.ClearBlockHex(),
		EncryptedBlock: pinblockDomain.UpperHex(encrypted),
	}

	logger.Info("pin block encrypted", slog.String("algorithm", string(zoneCipher.Algorithm())))

	if format == "json" {
		return writeJSON(writer, response)
	}

	_, _ = fmt.Fprintf(writer, "Algorithm:       %s\n", zoneCipher.Algorithm())
	_, _ = fmt.Fprintf(writer, "PIN field:       %s\n", response.PinField)
	_, _ = fmt.Fprintf(writer, "PAN field:       %s\n", response.PanField)
	_, _ = fmt.Fprintf(writer, "Clear block:     %s\n", response.ClearBlock)
	_, _ = fmt.Fprintf(writer, "Encrypted block: %s\n", response.EncryptedBlock)
	return nil
}

// RunVerifyPinBlock decrypts an encrypted PIN block under the configured zone key
// and recovers the PIN with pan.
func RunVerifyPinBlock(
	zoneCipher cryptoService.ZoneCipher,
	codec pinblockService.Codec,
	logger *slog.Logger,
	writer io.Writer,
	encryptedBlockHex string,
	pan string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if err := pinblockService.ValidatePAN(pan); err != nil {
		return err
	}

	encrypted, err := hex.DecodeString(strings.TrimSpace(encryptedBlockHex))
	if err != nil {
		return fmt.Errorf("%w: %v", pinblockDomain.ErrInvalidEncryptedBlockHex, err)
	}

	clearBlock, err := zoneCipher.DecryptBlock(encrypted)
	if err != nil {
		return fmt.Errorf("failed to decrypt pin block: %w", err)
	}
	if len(clearBlock) != pinblockDomain.BlockSize {
		return pinblockDomain.ErrDecodeFailed
	}

	decoded, err := codec.Decode(clearBlock, pan)
	if err != nil {
		return err
	}

	response := dto.DecryptResponse{
		PinField:     decoded.PinField,
		ExtractedPIN: decoded.ExtractedPIN,
	}

	logger.Info("pin block verified",
		slog.String("algorithm", string(zoneCipher.Algorithm())),
		slog.String("decode_mode", string(codec.Mode())),
	)

	if format == "json" {
		return writeJSON(writer, response)
	}

	_, _ = fmt.Fprintf(writer, "PIN field:     %s\n", response.PinField)
	_, _ = fmt.Fprintf(writer, "Extracted PIN: %s\n", response.ExtractedPIN)
	return nil
}
