// Package invite generates the shareable codes that let users self-join
// lists and groups.
package invite

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
)

// CodeLength is the number of hex characters in an invite code.
const CodeLength = 16

// Generator produces invite codes and the links embedding them.
type Generator struct {
	frontendBaseURL string
}

// NewGenerator returns a Generator that builds links against base, e.g.
// "https://app.listplus.io".
func NewGenerator(base string) *Generator {
	return &Generator{frontendBaseURL: strings.TrimRight(base, "/")}
}

// Code returns a fresh lowercase hex invite code drawn from crypto/rand.
// Uniqueness is enforced at the storage layer, not here.
func (g *Generator) Code() (string, error) {
	buf := make([]byte, CodeLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate invite code")
	}
	return hex.EncodeToString(buf), nil
}

// ListLink returns the frontend join link for a list invite code.
func (g *Generator) ListLink(code string) string {
	return g.frontendBaseURL + "/join/" + code
}

// GroupLink returns the frontend join link for a group invite code.
func (g *Generator) GroupLink(code string) string {
	return g.frontendBaseURL + "/joingroup/" + code
}
