package uuidshim

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// UUID represents a Universally Unique Identifier as defined by RFC 4122.
// The UUID is a 128-bit (16 byte) value that is used to uniquely identify information.
type UUID [16]byte

// TypeNull is the classification reported for the nil UUID by both
// Version and Variant (and therefore TypeOf and VariantOf).
const TypeNull = -1

// Version represents the UUID version
type Version int8

const (
	_ Version = iota
	VersionTimeBased
	VersionDCESecurity
	VersionNameBasedMD5
	VersionRandom
	VersionNameBasedSHA1
	_
	VersionTimeSorted // UUIDv7
	VersionCustom     // UUIDv8
)

// VersionNull is the version reported for the nil UUID.
const VersionNull Version = TypeNull

// Variant represents the UUID variant
type Variant int8

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

const (
	// VariantDCE is the DCE 1.1 layout described by RFC 4122.
	VariantDCE = VariantRFC4122

	// VariantNull is the variant reported for the nil UUID. It shares its
	// value with VersionNull.
	VariantNull Variant = TypeNull
)

// Fields is the RFC 4122 decomposition of a UUID.
type Fields struct {
	TimeLow          uint32
	TimeMid          uint16
	TimeHiAndVersion uint16 // top 4 bits hold the version
	ClockSeq         uint16 // top 1-3 bits hold the variant
	Node             uint64 // 48 bits
}

const nodeMask = 0xffff_ffff_ffff

// Nil is the nil UUID (all zeros)
var Nil UUID

const nilString = "00000000-0000-0000-0000-000000000000"

// Version returns the version nibble of the UUID, or VersionNull for the nil UUID.
func (u UUID) Version() Version {
	if u.IsNil() {
		return VersionNull
	}
	return Version(u[6] >> 4)
}

// Variant returns the variant of the UUID, or VariantNull for the nil UUID.
// The top bits of clock_seq are checked in priority order.
func (u UUID) Variant() Variant {
	switch {
	case u.IsNil():
		return VariantNull
	case (u[8] & 0x80) == 0x00:
		return VariantNCS
	case (u[8] & 0xc0) == 0x80:
		return VariantRFC4122
	case (u[8] & 0xe0) == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// Fields decodes the UUID into its RFC 4122 fields.
func (u UUID) Fields() Fields {
	return Fields{
		TimeLow:          binary.BigEndian.Uint32(u[0:4]),
		TimeMid:          binary.BigEndian.Uint16(u[4:6]),
		TimeHiAndVersion: binary.BigEndian.Uint16(u[6:8]),
		ClockSeq:         binary.BigEndian.Uint16(u[8:10]),
		Node:             binary.BigEndian.Uint64(u[8:16]) & nodeMask,
	}
}

// FromFields packs RFC 4122 fields into a UUID. Bits of Node above 48 are ignored.
func FromFields(f Fields) UUID {
	var uuid UUID
	binary.BigEndian.PutUint32(uuid[0:4], f.TimeLow)
	binary.BigEndian.PutUint16(uuid[4:6], f.TimeMid)
	binary.BigEndian.PutUint16(uuid[6:8], f.TimeHiAndVersion)
	binary.BigEndian.PutUint64(uuid[8:16], f.Node&nodeMask)
	binary.BigEndian.PutUint16(uuid[8:10], f.ClockSeq)
	return uuid
}

// String returns the canonical string representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	var buf [36]byte
	encodeHex(buf[:], u)
	return string(buf[:])
}

// encodeHex encodes UUID to its canonical hex representation
func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

// Parse parses a UUID from its canonical 36 character form
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx. Hex digits may be upper or lower case.
// Every other input, including the forms ParseLoose accepts, fails with ErrInvalidFormat.
func Parse(s string) (UUID, error) {
	var uuid UUID

	if len(s) != 36 {
		return uuid, ErrInvalidFormat
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid, ErrInvalidFormat
	}

	if err := decodeHexSegment(uuid[0:4], s[0:8]); err != nil {
		return uuid, err
	}
	if err := decodeHexSegment(uuid[4:6], s[9:13]); err != nil {
		return uuid, err
	}
	if err := decodeHexSegment(uuid[6:8], s[14:18]); err != nil {
		return uuid, err
	}
	if err := decodeHexSegment(uuid[8:10], s[19:23]); err != nil {
		return uuid, err
	}
	if err := decodeHexSegment(uuid[10:16], s[24:36]); err != nil {
		return uuid, err
	}
	return uuid, nil
}

// ParseLoose parses a UUID from any of the following formats:
//   - xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (canonical)
//   - urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//   - {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
//   - xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx (without hyphens)
func ParseLoose(s string) (UUID, error) {
	s = strings.TrimPrefix(s, "urn:uuid:")
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = s[1 : len(s)-1]
	}

	if len(s) == 32 {
		return DecodeFromHex(s)
	}
	return Parse(s)
}

// MustParse is like Parse but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) UUID {
	uuid, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("uuidshim: Parse(%q): %v", s, err))
	}
	return uuid
}

// ParseFields validates s and returns its RFC 4122 fields.
func ParseFields(s string) (Fields, error) {
	uuid, err := Parse(s)
	if err != nil {
		return Fields{}, err
	}
	return uuid.Fields(), nil
}

// decodeHexSegment decodes a hex string segment into a byte slice
func decodeHexSegment(dst []byte, src string) error {
	if _, err := hex.Decode(dst, []byte(src)); err != nil {
		return ErrInvalidFormat
	}
	return nil
}

// Bytes returns the UUID as a byte slice
func (u UUID) Bytes() []byte {
	return u[:]
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// Timestamp returns the 60-bit count of 100-nanosecond intervals since
// 1582-10-15 00:00:00 UTC carried by a version 1 UUID.
func (u UUID) Timestamp() (uint64, error) {
	if u.Version() != VersionTimeBased {
		return 0, ErrNotTimeBased
	}
	f := u.Fields()
	return uint64(f.TimeHiAndVersion&0x0fff)<<48 | uint64(f.TimeMid)<<32 | uint64(f.TimeLow), nil
}

// Unix returns the Unix time in seconds embedded in a version 1 UUID,
// truncated toward zero.
func (u UUID) Unix() (int64, error) {
	ts, err := u.Timestamp()
	if err != nil {
		return 0, err
	}
	return (int64(ts) - epochOffset) / intervalsPerSecond, nil
}

// Node returns the 48-bit node identifier of a version 1 UUID.
func (u UUID) Node() (uint64, error) {
	if u.Version() != VersionTimeBased {
		return 0, ErrNotTimeBased
	}
	return u.Fields().Node, nil
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [36]byte
	encodeHex(buf[:], u)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := ParseLoose(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u[:], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (u *UUID) UnmarshalBinary(data []byte) error {
	id, err := FromBytes(data)
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// Scan implements the sql.Scanner interface for database compatibility
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		id, err := ParseLoose(src)
		if err != nil {
			return err
		}
		*u = id
		return nil
	case []byte:
		if len(src) == 16 {
			copy(u[:], src)
			return nil
		}
		if len(src) == 0 {
			return nil
		}
		id, err := ParseLoose(string(src))
		if err != nil {
			return err
		}
		*u = id
		return nil
	default:
		return fmt.Errorf("uuidshim: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface for database compatibility
func (u UUID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Compare returns an integer comparing two UUIDs byte by byte.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u[:], other[:])
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}
