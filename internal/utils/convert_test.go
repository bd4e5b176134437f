package utils

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

func TestFromInterfaceValidFormats(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("valid input should not panic")
		}
	}()

	var a fr.Element
	a.SetRandom()

	_ = FromInterface(a)
	_ = FromInterface(&a)
	_ = FromInterface(12)
	_ = FromInterface(big.NewInt(-42))
	_ = FromInterface(*big.NewInt(42))
	_ = FromInterface("8000")
	_ = FromInterface("0x2a")
	_ = FromInterface(uint64(42))
	_ = FromInterface([]byte{0x2a})
}

func TestFromInterfaceInvalidFormat(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("invalid input should panic")
		}
	}()

	_ = FromInterface("not-a-number")
}

func TestFromInterfaceValues(t *testing.T) {
	v := FromInterface(42)
	if v.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("expected 42, got %s", v.String())
	}

	var e fr.Element
	e.SetUint64(42)
	v = FromInterface(e)
	if v.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("expected 42, got %s", v.String())
	}
}
