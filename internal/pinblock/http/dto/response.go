package dto

import (
	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
)

// PublicKeyResponse carries the transport public key.
type PublicKeyResponse struct {
	PublicKey string `json:"publicKey"` // SPKI PEM
}

// EncryptResponse exposes every stage of the encrypt flow. All values are
// uppercase hex.
type EncryptResponse struct {
	PinField       string `json:"pinField"`
	PanField       string `json:"panField"`
	ClearBlock     string `json:"clearBlock"`
	EncryptedBlock string `json:"encryptedBlock"`
}

// MapEncryptResponse converts an EncryptResult to its response.
func MapEncryptResponse(result *pinblockDomain.EncryptResult) EncryptResponse {
	return EncryptResponse{
		PinField:       result.PinField,
		PanField:       result.PanField,
		ClearBlock:     result.ClearBlock,
		EncryptedBlock: result.EncryptedBlock,
	}
}

// DecryptResponse is the result of the verify flow.
type DecryptResponse struct {
	PinField     string `json:"pinField"`
	ExtractedPIN string `json:"extractedPin"`
}

// MapDecryptResponse converts a VerifyResult to its response.
func MapDecryptResponse(result *pinblockDomain.VerifyResult) DecryptResponse {
	return DecryptResponse{
		PinField:     result.PinField,
		ExtractedPIN: result.ExtractedPIN,
	}
}
