// Package roundid generates short ids that tag every log line of one
// round, so interleaved session logs can be split apart afterwards.
package roundid

import (
	crand "crypto/rand"
	rand "math/rand/v2"
	"time"
)

// Crockford's base32 alphabet, lowercased.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of a rendered round id: 80 bits in base32.
const Length = 16

// Generator produces round ids. A nil rng means crypto randomness; a
// seeded rng makes the random half reproducible for tests.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator. rng may be nil.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, now: time.Now}
}

// New generates a round id with the default generator.
func New() string {
	return NewGenerator(nil).New()
}

// New renders 48 bits of millisecond timestamp followed by 32 random
// bits, so ids sort by creation time.
func (g *Generator) New() string {
	var raw [10]byte
	ms := uint64(g.now().UnixMilli())
	for i := 0; i < 6; i++ {
		raw[i] = byte(ms >> (40 - 8*i))
	}
	if g.rng != nil {
		r := g.rng.Uint32()
		raw[6] = byte(r >> 24)
		raw[7] = byte(r >> 16)
		raw[8] = byte(r >> 8)
		raw[9] = byte(r)
	} else {
		crand.Read(raw[6:])
	}
	return encode(raw)
}

// encode maps 80 bits to 16 base32 characters, 5 bits each.
func encode(raw [10]byte) string {
	var out [Length]byte
	for i := 0; i < Length; i++ {
		bit := i * 5
		idx := bit / 8
		shift := bit % 8
		v := uint16(raw[idx]) << 8
		if idx+1 < len(raw) {
			v |= uint16(raw[idx+1])
		}
		out[i] = alphabet[(v>>(11-shift))&0x1f]
	}
	return string(out[:])
}
