package utility

import (
	"math/rand/v2"
	"strings"
)

// ASCIISubset selects the characters ASCIIRand draws from.
type ASCIISubset int

const (
	// ASCIIAll is the union of ASCIIAlphanumeric and ASCIINonAlphanumeric (94 characters).
	ASCIIAll ASCIISubset = iota

	// ASCIIAlphanumeric is [a-zA-Z0-9] (62 characters).
	ASCIIAlphanumeric

	// ASCIINonAlphanumeric is space plus the printable ASCII punctuation
	// listed in NonAlphanumericChars (32 characters).
	ASCIINonAlphanumeric
)

const (
	// AlphanumericChars is the ASCIIAlphanumeric pool.
	AlphanumericChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// NonAlphanumericChars is the ASCIINonAlphanumeric pool.
	NonAlphanumericChars = " !\"#$%'()*+,./:;<=>?@[\\]^_`-{|}~"
)

// Pool returns the characters s draws from. Unknown subsets map to ASCIIAll.
func (s ASCIISubset) Pool() string {
	switch s {
	case ASCIIAlphanumeric:
		return AlphanumericChars
	case ASCIINonAlphanumeric:
		return NonAlphanumericChars
	default:
		return AlphanumericChars + NonAlphanumericChars
	}
}

// ASCIIRand returns a string of length characters picked uniformly, with
// replacement, from the subset's pool. It uses math/rand/v2 and must not
// be used for secrets. A length <= 0 yields "".
func ASCIIRand(length int, subset ASCIISubset) string {
	if length <= 0 {
		return ""
	}

	pool := subset.Pool()

	var sb strings.Builder
	sb.Grow(length)
	for range length {
		sb.WriteByte(pool[rand.IntN(len(pool))])
	}

	return sb.String()
}
