package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RecipeIDLength is the encoded length of 8 random bytes without padding.
const RecipeIDLength = 11

// GenerateRecipeID returns 64 random bits as URL-safe, unpadded base64.
// Collisions are not checked against the store.
func GenerateRecipeID() string {
	var data [8]byte
	if _, err := rand.Read(data[:]); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(data[:])
}
