package commands

import (
	"bytes"
	"encoding/hex"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/pinshield/internal/config"
	cryptoService "github.com/allisson/pinshield/internal/crypto/service"
	apperrors "github.com/allisson/pinshield/internal/errors"
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
	pinblockService "github.com/allisson/pinshield/internal/pinblock/service"
)

func demoAESCipher(t *testing.T) cryptoService.ZoneCipher {
	t.Helper()
	key, err := hex.DecodeString(config.DemoZoneKeyHex)
	require.NoError(t, err)
	zoneCipher, err := cryptoService.NewAESECB(key)
	require.NoError(t, err)
	return zoneCipher
}

func TestRunEncryptPinBlock(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	codec := pinblockService.NewISO0Codec(pinblockDomain.DecodeStrict)

	t.Run("text-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncryptPinBlock(demoAESCipher(t), codec, logger, &out, "1234", "4012345678901234", "text")
		require.NoError(t, err)

		assert.Contains(t, out.String(), "PIN field:       041234FFFFFFFFFF")
		assert.Contains(t, out.String(), "PAN field:       0000234567890123")
		assert.Contains(t, out.String(), "Clear block:     041217BA9876FEDC")
		assert.Contains(t, out.String(), "Encrypted block: 978E708B09074A084055189D4F6B77D7")
	})

	t.Run("json-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncryptPinBlock(demoAESCipher(t), codec, logger, &out, "1234", "4012345678901234", "json")
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"pinField": "041234FFFFFFFFFF",
			"panField": "0000234567890123",
			"clearBlock": "041217BA9876FEDC",
			"encryptedBlock": "978E708B09074A084055189D4F6B77D7"
		}`, out.String())
	})

	t.Run("tdes", func(t *testing.T) {
		key, err := hex.DecodeString("0123456789ABCDEFFEDCBA9876543210")
		require.NoError(t, err)
		zoneCipher, err := cryptoService.NewTripleDESECB(key)
		require.NoError(t, err)

		var out bytes.Buffer
		err = RunEncryptPinBlock(zoneCipher, codec, logger, &out, "1234", "4012345678901234", "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Encrypted block: BF5D44D08D106392")
	})

	t.Run("invalid-pin", func(t *testing.T) {
		err := RunEncryptPinBlock(demoAESCipher(t), codec, logger, &bytes.Buffer{}, "12a4", "4012345678901234", "text")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunEncryptPinBlock(demoAESCipher(t), codec, logger, &bytes.Buffer{}, "1234", "4012345678901234", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}

func TestRunVerifyPinBlock(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	strict := pinblockService.NewISO0Codec(pinblockDomain.DecodeStrict)

	t.Run("text-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunVerifyPinBlock(
			demoAESCipher(t), strict, logger, &out,
			"978e708b09074a084055189d4f6b77d7", "4012345678901234", "text",
		)
		require.NoError(t, err)

		assert.Contains(t, out.String(), "PIN field:     041234FFFFFFFFFF")
		assert.Contains(t, out.String(), "Extracted PIN: 1234")
	})

	t.Run("json-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunVerifyPinBlock(
			demoAESCipher(t), strict, logger, &out,
			"978E708B09074A084055189D4F6B77D7", "4012345678901234", "json",
		)
		require.NoError(t, err)
		assert.JSONEq(t, `{"pinField":"041234FFFFFFFFFF","extractedPin":"1234"}`, out.String())
	})

	t.Run("wrong-pan-strict", func(t *testing.T) {
		err := RunVerifyPinBlock(
			demoAESCipher(t), strict, logger, &bytes.Buffer{},
			"978E708B09074A084055189D4F6B77D7", "4111111111111111", "text",
		)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrProtocolViolation))
	})

	t.Run("wrong-pan-lenient", func(t *testing.T) {
		lenient := pinblockService.NewISO0Codec(pinblockDomain.DecodeLenient)

		var out bytes.Buffer
		err := RunVerifyPinBlock(
			demoAESCipher(t), lenient, logger, &out,
			"978E708B09074A084055189D4F6B77D7", "4111111111111111", "text",
		)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "PIN field:     041206AB8967EFCD")
		assert.Contains(t, out.String(), "Extracted PIN: 1206")
	})

	t.Run("invalid-hex", func(t *testing.T) {
		err := RunVerifyPinBlock(demoAESCipher(t), strict, logger, &bytes.Buffer{}, "zz", "4012345678901234", "text")
		assert.ErrorIs(t, err, pinblockDomain.ErrInvalidEncryptedBlockHex)
	})

	t.Run("invalid-pan", func(t *testing.T) {
		err := RunVerifyPinBlock(
			demoAESCipher(t), strict, logger, &bytes.Buffer{},
			"978E708B09074A084055189D4F6B77D7", "1234", "text",
		)
		assert.ErrorIs(t, err, pinblockDomain.ErrInvalidPANLength)
	})

	t.Run("crypto-failure", func(t *testing.T) {
		err := RunVerifyPinBlock(
			demoAESCipher(t), strict, logger, &bytes.Buffer{},
			"0011223344556677", "4012345678901234", "text",
		)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrCryptoFailure))
	})
}
