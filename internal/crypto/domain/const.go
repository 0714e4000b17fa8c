package domain

// Algorithm identifies the block cipher variant protecting PIN blocks on the zone
// key layer. The variant is never chosen by callers: it follows from the length of
// the configured zone key.
type Algorithm string

const (
	// AES256ECB is AES-256 in ECB mode with PKCS#7 padding. An 8-byte clear PIN
	// block becomes a single 16-byte cipher block.
	AES256ECB Algorithm = "aes-256-ecb-pkcs7"

	// TripleDESECB is Triple-DES (EDE) in ECB mode without padding. The 8-byte
	// clear PIN block maps onto exactly one DES block.
	TripleDESECB Algorithm = "tdes-ecb"
)

// Zone key sizes in bytes.
const (
	AES256KeySize          = 32
	TripleDESDoubleKeySize = 16
	TripleDESTripleKeySize = 24
)

// MaxBlockPayload bounds the data accepted by the ECB zone ciphers.
const MaxBlockPayload = 32

// MinTransportKeyBits is the smallest RSA modulus accepted for the transport
// keypair.
const MinTransportKeyBits = 2048
