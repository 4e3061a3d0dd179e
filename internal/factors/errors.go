package factors

import "errors"

var (
	// ErrEmpty is returned when a collection that must never be empty has no elements.
	ErrEmpty = errors.New("factor sources: empty collection")

	// ErrDuplicateValuesFound is returned by identified construction on repeated values.
	ErrDuplicateValuesFound = errors.New("factor sources: duplicate values found when constructing collection")

	// ErrDuplicateIDOfValuesFound is returned by identified construction when
	// two distinct values share a factor source id.
	ErrDuplicateIDOfValuesFound = errors.New("factor sources: duplicate id of values found when constructing collection")

	// ErrNotMainBDFS is returned when a device factor source is not the main
	// Babylon device factor source.
	ErrNotMainBDFS = errors.New("factor sources: device factor source is not main BDFS")

	// ErrUnknownDiscriminator is returned when decoding a factor source of unknown kind.
	ErrUnknownDiscriminator = errors.New("factor sources: unknown discriminator")

	// ErrInvalidHash is returned when a factor source id body is not 32 bytes of hex.
	ErrInvalidHash = errors.New("factor sources: invalid id hash")
)
