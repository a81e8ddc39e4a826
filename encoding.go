package uuidshim

import (
	"encoding/hex"
)

// EncodeToHex encodes the UUID to a hexadecimal string without hyphens
func (u UUID) EncodeToHex() string {
	return hex.EncodeToString(u[:])
}

// DecodeFromHex decodes a 32 digit hexadecimal string to UUID
func DecodeFromHex(s string) (UUID, error) {
	var uuid UUID
	if len(s) != 32 {
		return uuid, ErrInvalidFormat
	}
	_, err := hex.Decode(uuid[:], []byte(s))
	if err != nil {
		return uuid, ErrInvalidFormat
	}
	return uuid, nil
}

// FromBytes creates a UUID from a byte slice
func FromBytes(b []byte) (UUID, error) {
	var uuid UUID
	if len(b) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], b)
	return uuid, nil
}

// MustFromBytes is like FromBytes but panics on error
func MustFromBytes(b []byte) UUID {
	uuid, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return uuid
}

// ParseBytes validates a canonical UUID string and returns its 16 raw bytes.
func ParseBytes(s string) ([]byte, error) {
	uuid, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return uuid.Bytes(), nil
}

// Format converts 16 raw bytes into the canonical lowercase string. The
// result is parsed again before it is returned.
func Format(b []byte) (string, error) {
	uuid, err := FromBytes(b)
	if err != nil {
		return "", err
	}
	s := uuid.String()
	if _, err := Parse(s); err != nil {
		return "", err
	}
	return s, nil
}
