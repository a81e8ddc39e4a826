package uuidshim

import (
	"context"
	"strconv"
	"strings"
)

// Create returns a new UUID string of the requested kind using the default
// generator. Unknown kinds are logged and produce a random UUID.
func Create(kind Kind) string {
	return Must(Default().New(context.Background(), kind)).String()
}

// IsValid reports whether s is a canonical UUID string.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Compare orders two UUID strings lexicographically as given, without
// normalizing case. It returns an error if either string is not a valid UUID.
func Compare(a, b string) (int, error) {
	if _, err := Parse(a); err != nil {
		return 0, err
	}
	if _, err := Parse(b); err != nil {
		return 0, err
	}
	return strings.Compare(a, b), nil
}

// IsNull reports whether s is exactly the nil UUID string.
func IsNull(s string) bool {
	return s == nilString
}

// TypeOf returns the version of s, or VersionNull if s is the nil UUID.
func TypeOf(s string) (Version, error) {
	uuid, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return uuid.Version(), nil
}

// VariantOf returns the variant of s, or VariantNull if s is the nil UUID.
func VariantOf(s string) (Variant, error) {
	uuid, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return uuid.Variant(), nil
}

// TimeOf returns the Unix time in seconds embedded in a version 1 UUID string.
func TimeOf(s string) (int64, error) {
	uuid, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return uuid.Unix()
}

// NodeOf returns the node of a version 1 UUID string as unpadded lowercase hex.
func NodeOf(s string) (string, error) {
	uuid, err := Parse(s)
	if err != nil {
		return "", err
	}
	node, err := uuid.Node()
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(node, 16), nil
}
