package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"hash"

	"ordering/internal/core/domain/model/kernel"
)

// AccessHasher issues the token that lets an order be read without a session,
// e.g. from a guest order link.
//
// Without a secret the token is an unsalted SHA-256 of the order id, which
// anyone can recompute: it hides sequential ids but is not access control.
// With a secret it is an HMAC-SHA-256 and cannot be forged without the key.
// Tokens use unpadded URL-safe base64.
type AccessHasher struct {
	secret []byte
}

func NewAccessHasher() AccessHasher {
	return AccessHasher{}
}

func NewKeyedAccessHasher(secret string) AccessHasher {
	if secret == "" {
		return NewAccessHasher()
	}
	return AccessHasher{secret: []byte(secret)}
}

func (h AccessHasher) IsKeyed() bool {
	return len(h.secret) > 0
}

func (h AccessHasher) Generate(orderID kernel.ID) string {
	var mac hash.Hash
	if h.IsKeyed() {
		mac = hmac.New(sha256.New, h.secret)
	} else {
		mac = sha256.New()
	}
	mac.Write([]byte(orderID.String()))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (h AccessHasher) Check(orderID kernel.ID, token string) bool {
	if token == "" || orderID.Validate() != nil {
		return false
	}
	expected := h.Generate(orderID)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
