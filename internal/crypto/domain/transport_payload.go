package domain

// TransportPayload is the clear content of a transport envelope, serialized as
// compact JSON ({"pin":"1234","pan":"4012345678901234"}) before RSA-OAEP.
type TransportPayload struct {
	PIN string `json:"pin"`
	PAN string `json:"pan"`
}

// Zero drops the references to the sensitive strings. Go strings are immutable,
// so this only shortens their lifetime.
func (p *TransportPayload) Zero() {
	if p == nil {
		return
	}
	p.PIN = ""
	p.PAN = ""
}
