package ticketid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// Prefix marks minted identifiers so scanned payloads are recognizable at a
// glance in rosters and logs.
const Prefix = "TIX-"

const tokenBytes = 15

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// New mints a ticket identifier: the TIX- prefix followed by 120 bits of
// entropy, base32 encoded. The identifier doubles as the scan payload, so it
// must be unguessable and globally unique with overwhelming probability.
func New() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("ticketid: read entropy: %w", err)
	}
	return Prefix + encoding.EncodeToString(b), nil
}
