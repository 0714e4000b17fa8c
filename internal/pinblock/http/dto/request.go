// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	pinblockDomain "github.com/allisson/pinshield/internal/pinblock/domain"
	customValidation "github.com/allisson/pinshield/internal/validation"
)

// EncryptRequest carries the RSA-OAEP envelope of {"pin","pan"}.
type EncryptRequest struct {
	EncryptedData string `json:"encryptedData"` // Base64 RSA-OAEP/SHA-256 ciphertext
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EncryptedData,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
	)
}

// DecryptRequest carries an encrypted PIN block and the PAN it is bound to.
type DecryptRequest struct {
	EncryptedBlockHex string `json:"encryptedBlockHex"`
	PAN               string `json:"pan"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EncryptedBlockHex,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
		validation.Field(&r.PAN,
			validation.Required,
			customValidation.Digits,
			validation.Length(pinblockDomain.MinPANLength, pinblockDomain.MaxPANLength),
		),
	)
}
