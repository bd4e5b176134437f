package constraint

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/zkmatter/rawr1cs/logger"
)

// Element represents a coefficient on 6 uint64 limbs. This fits the scalar
// field of every supported pairing curve; fields on fewer limbs leave the high
// limbs at zero, so there is some memory overhead for the smaller fields.
type Element [6]uint64

// IsZero returns true if coefficient == 0
func (z Element) IsZero() bool {
	return (z[5] | z[4] | z[3] | z[2] | z[1] | z[0]) == 0
}

// Bytes returns the Element as a big-endian byte slice.
func (z Element) Bytes() []byte {
	var b [48]byte
	binary.BigEndian.PutUint64(b[40:48], z[0])
	binary.BigEndian.PutUint64(b[32:40], z[1])
	binary.BigEndian.PutUint64(b[24:32], z[2])
	binary.BigEndian.PutUint64(b[16:24], z[3])
	binary.BigEndian.PutUint64(b[8:16], z[4])
	binary.BigEndian.PutUint64(b[0:8], z[5])
	return b[:]
}

// NewElement creates an Element from a big-endian byte slice, as produced by
// Bytes. It panics if the slice is not 48 bytes long.
func NewElement(b []byte) Element {
	if len(b) != 48 {
		panic(fmt.Sprintf("wrong length, expected 48 got %d", len(b)))
	}
	var e Element
	e[0] = binary.BigEndian.Uint64(b[40:48])
	e[1] = binary.BigEndian.Uint64(b[32:40])
	e[2] = binary.BigEndian.Uint64(b[24:32])
	e[3] = binary.BigEndian.Uint64(b[16:24])
	e[4] = binary.BigEndian.Uint64(b[8:16])
	e[5] = binary.BigEndian.Uint64(b[0:8])
	return e
}

// Field capability to perform arithmetic on Element
type Field interface {
	FromInterface(interface{}) Element
	ToBigInt(Element) *big.Int
	Mul(a, b Element) Element
	Add(a, b Element) Element
	Sub(a, b Element) Element
	Neg(a Element) Element
	Inverse(a Element) (Element, bool)
	One() Element
	IsOne(Element) bool
	String(Element) string
	Uint64(Element) (uint64, bool)
}

// Engines are registered by scalar field modulus. Deserializing a System
// needs its engine back, so each field package registers itself in its init
// function; importing a field package is what makes its modulus readable.
var (
	registry  = make(map[string]Field)
	registryM sync.RWMutex
)

// RegisterField registers the engine operating on the scalar field with the
// given modulus.
func RegisterField(modulus *big.Int, fd Field) {
	key := modulus.Text(16)
	registryM.Lock()
	defer registryM.Unlock()
	if _, ok := registry[key]; ok {
		log := logger.Logger()
		log.Warn().Str("modulus", key).Msg("field engine registered multiple times")
		return
	}
	registry[key] = fd
}

// FieldByModulus returns the engine registered for the given modulus, if any.
func FieldByModulus(modulus *big.Int) (Field, bool) {
	registryM.RLock()
	defer registryM.RUnlock()
	fd, ok := registry[modulus.Text(16)]
	return fd, ok
}
