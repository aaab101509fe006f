// Package idgen allocates item IDs.
//
// Short IDs have a prefix-suffix format such as "itm-a3f"; the random base36
// suffix grows with the collection so collisions stay unlikely. UUID IDs
// ("itm-1b4e28ba-2fa1-...") are available when IDs must be globally unique.
// Either way the Allocator rejects any candidate already in use.
package idgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// MinLength is the minimum number of base36 characters in a generated ID.
	MinLength = 3
	// MaxLength is the maximum number of base36 characters in a generated ID.
	MaxLength = 8
	// MaxCollisionProbability is the threshold above which the adaptive length
	// is increased. Based on the birthday paradox formula.
	MaxCollisionProbability = 0.25
	// AttemptsPerLength is how many candidates are tried at one length before
	// the allocator escalates to a longer suffix.
	AttemptsPerLength = 10
)

// ErrExhausted is returned when no unused ID could be found.
var ErrExhausted = errors.New("idgen: could not allocate an unused id")

// Format selects the ID shape.
type Format string

const (
	FormatShort Format = "short"
	FormatUUID  Format = "uuid"
)

// ParseFormat converts a config value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatShort:
		return FormatShort, nil
	case FormatUUID:
		return FormatUUID, nil
	default:
		return "", fmt.Errorf("idgen: unknown id format %q (allowed: short, uuid)", s)
	}
}

// RandomID generates a random ID with the given prefix and length.
// It uses crypto/rand to generate length random base36 characters.
// Returns an error if length is outside [MinLength, MaxLength].
func RandomID(prefix string, length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", fmt.Errorf("idgen: length %d out of range [%d, %d]", length, MinLength, MaxLength)
	}

	mod := new(big.Int).Exp(big.NewInt(36), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, mod)
	if err != nil {
		return "", fmt.Errorf("idgen: crypto/rand: %w", err)
	}

	encoded := n.Text(36)
	if pad := length - len(encoded); pad > 0 {
		encoded = strings.Repeat("0", pad) + encoded
	}
	return prefix + encoded, nil
}

// AdaptiveLength calculates the minimum ID length needed for the given
// number of existing items, using the birthday paradox collision formula:
//
//	P(collision) ≈ 1 - e^(-n²/2N)
//
// where n = existingCount and N = 36^length. Starting from MinLength,
// the length is incremented until the probability falls below
// MaxCollisionProbability, up to MaxLength.
func AdaptiveLength(existingCount int) int {
	n := float64(existingCount)
	for length := MinLength; length <= MaxLength; length++ {
		namespace := math.Pow(36, float64(length))
		if 1-math.Exp(-(n*n)/(2*namespace)) < MaxCollisionProbability {
			return length
		}
	}
	return MaxLength
}

// Allocator hands out IDs that are not yet taken.
type Allocator struct {
	Prefix string
	Format Format

	// random replaces RandomID in tests.
	random func(prefix string, length int) (string, error)
	// newUUID replaces uuid.NewString in tests.
	newUUID func() string
}

// NewAllocator returns an Allocator for prefix and format.
func NewAllocator(prefix string, format Format) *Allocator {
	if format == "" {
		format = FormatShort
	}
	return &Allocator{Prefix: prefix, Format: format}
}

// Next returns an ID for which taken reports false. count is the number of
// IDs currently in use; it sizes short IDs.
func (a *Allocator) Next(count int, taken func(id string) bool) (string, error) {
	if a.Format == FormatUUID {
		gen := a.newUUID
		if gen == nil {
			gen = uuid.NewString
		}
		for i := 0; i < AttemptsPerLength; i++ {
			id := a.Prefix + gen()
			if !taken(id) {
				return id, nil
			}
		}
		return "", ErrExhausted
	}

	gen := a.random
	if gen == nil {
		gen = RandomID
	}
	for length := AdaptiveLength(count); length <= MaxLength; length++ {
		for i := 0; i < AttemptsPerLength; i++ {
			id, err := gen(a.Prefix, length)
			if err != nil {
				return "", err
			}
			if !taken(id) {
				return id, nil
			}
		}
	}
	return "", ErrExhausted
}
