package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"github.com/google/uuid"
)

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const roomCodeLength = 6

// GenerateRoomCode - generates a short uppercase identifier for a room.
func GenerateRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomCodeAlphabet))))
		if err != nil {
			return "error-generating-room-code"
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}

	return string(code)
}

// GenerateUserID - generates a unique identifier for a user.
func GenerateUserID() string {
	return uuid.NewString()
}

// GenerateConnID - generates a new unique identifier for a live connection.
func GenerateConnID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-conn-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}
