package service

import (
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/allisson/pinshield/internal/crypto/domain"
)

// ecbEncrypt enciphers each block of src independently. The payload must be a
// non-empty multiple of the block size and at most MaxBlockPayload bytes.
func ecbEncrypt(block cipher.Block, src []byte) ([]byte, error) {
	if err := checkECBLength(block.BlockSize(), len(src)); err != nil {
		return nil, err
	}

	bs := block.BlockSize()
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		block.Encrypt(dst[i:i+bs], src[i:i+bs])
	}
	return dst, nil
}

// ecbDecrypt is the inverse of ecbEncrypt.
func ecbDecrypt(block cipher.Block, src []byte) ([]byte, error) {
	if err := checkECBLength(block.BlockSize(), len(src)); err != nil {
		return nil, err
	}

	bs := block.BlockSize()
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		block.Decrypt(dst[i:i+bs], src[i:i+bs])
	}
	return dst, nil
}

func checkECBLength(blockSize, n int) error {
	switch {
	case n == 0:
		return fmt.Errorf("%w: empty input", cryptoDomain.ErrInvalidBlockLength)
	case n%blockSize != 0:
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", cryptoDomain.ErrInvalidBlockLength, n, blockSize)
	case n > cryptoDomain.MaxBlockPayload:
		return fmt.Errorf(
			"%w: %d bytes exceeds %d",
			cryptoDomain.ErrInvalidBlockLength,
			n,
			cryptoDomain.MaxBlockPayload,
		)
	}
	return nil
}
