package game

import (
	cryptorand "crypto/rand"
	"math/big"
	"math/rand"
)

// CodeAlphabet is the 32-symbol invite-code alphabet. The letters O
// and I and the digits 0 and 9 are excluded so codes survive being
// read aloud or scribbled down.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ12345678"

// CodeLength is the fixed invite-code length.
const CodeLength = 6

// codeAllocationRetries bounds the collision retry loop. At 32^6
// possible codes a collision is astronomically unlikely, so the small
// budget is a mitigation, not a guarantee.
const codeAllocationRetries = 5

// GenerateInviteCode returns a random invite code. It prefers a
// cryptographically strong source and falls back to math/rand if that
// source is unavailable; codes are collision-avoidance tokens, not
// security tokens, so the weaker source is acceptable.
func GenerateInviteCode() (string, error) {
	code := make([]byte, CodeLength)
	max := big.NewInt(int64(len(CodeAlphabet)))

	for i := range code {
		n, err := cryptorand.Int(cryptorand.Reader, max)
		if err != nil {
			code[i] = CodeAlphabet[rand.Intn(len(CodeAlphabet))]
			continue
		}
		code[i] = CodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// AllocateInviteCode generates a code not currently in use. taken
// reports whether a candidate is already allocated; gen produces
// candidates (pass GenerateInviteCode outside of tests). After five
// colliding draws it gives up with ErrCodeAllocationExhausted rather
// than looping forever or silently reusing a code.
func AllocateInviteCode(taken func(string) (bool, error), gen func() (string, error)) (string, error) {
	if gen == nil {
		gen = GenerateInviteCode
	}

	for i := 0; i < codeAllocationRetries; i++ {
		code, err := gen()
		if err != nil {
			return "", err
		}
		inUse, err := taken(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}

	return "", ErrCodeAllocationExhausted
}
