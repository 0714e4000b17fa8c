package domain

// Zero overwrites b with zeros so key material and clear PIN data do not linger
// in memory after use. A nil slice is a no-op.
func Zero(b []byte) {
	clear(b)
}
