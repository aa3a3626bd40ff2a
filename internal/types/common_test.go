package types

import "testing"

func TestBytesToHashLeftPads(t *testing.T) {
	h := BytesToHash([]byte{0x01, 0x02, 0x03})
	if h[HashLength-1] != 0x03 || h[HashLength-2] != 0x02 || h[HashLength-3] != 0x01 {
		t.Fatalf("BytesToHash failed: got %x", h)
	}
	for i := 0; i < HashLength-3; i++ {
		if h[i] != 0 {
			t.Fatalf("BytesToHash did not left-pad: byte %d is %x", i, h[i])
		}
	}
}

func TestBytesToHashLongerThan32KeepsRightmost(t *testing.T) {
	b := make([]byte, 40)
	for i := range b {
		b[i] = byte(i)
	}
	h := BytesToHash(b)
	for i := 0; i < HashLength; i++ {
		if h[i] != byte(i+8) {
			t.Fatalf("byte %d = %x, want %x", i, h[i], byte(i+8))
		}
	}
}

func TestHexToHash(t *testing.T) {
	h := HexToHash("0xdead")
	if h[HashLength-1] != 0xad || h[HashLength-2] != 0xde {
		t.Fatalf("HexToHash failed: got %x", h)
	}
}

func TestHexToHashWithoutPrefix(t *testing.T) {
	if HexToHash("dead") != HexToHash("0xdead") {
		t.Fatal("HexToHash should treat a missing 0x prefix the same as with one")
	}
}

func TestHexToHashOddLength(t *testing.T) {
	// "abc" has an odd digit count; fromHex left-pads with a zero nibble.
	if HexToHash("abc") != HexToHash("0abc") {
		t.Fatal("odd-length hex should be zero-padded on the left before decoding")
	}
}

func TestHashIsZero(t *testing.T) {
	var h Hash
	if !h.IsZero() {
		t.Fatal("zero-value hash should report IsZero")
	}
	h[0] = 1
	if h.IsZero() {
		t.Fatal("non-zero hash should not report IsZero")
	}
}

func TestHashHexAndStringAgree(t *testing.T) {
	h := HexToHash("0xff")
	if h.Hex()[:2] != "0x" {
		t.Fatalf("Hex() = %q, want 0x prefix", h.Hex())
	}
	if h.String() != h.Hex() {
		t.Fatalf("String() = %q, want Hex() %q", h.String(), h.Hex())
	}
}

func TestHashBytesRoundTrip(t *testing.T) {
	h := HexToHash("0x0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")
	if BytesToHash(h.Bytes()) != h {
		t.Fatal("Bytes() followed by BytesToHash() should round-trip")
	}
}

func TestBytesToAddressLeftPads(t *testing.T) {
	a := BytesToAddress([]byte{0xab, 0xcd})
	if a[AddressLength-1] != 0xcd || a[AddressLength-2] != 0xab {
		t.Fatalf("BytesToAddress failed: got %x", a)
	}
}

func TestBytesToAddressLongerThan20KeepsRightmost(t *testing.T) {
	b := make([]byte, 25)
	for i := range b {
		b[i] = byte(i)
	}
	a := BytesToAddress(b)
	for i := 0; i < AddressLength; i++ {
		if a[i] != byte(i+5) {
			t.Fatalf("byte %d = %x, want %x", i, a[i], byte(i+5))
		}
	}
}

func TestHexToAddress(t *testing.T) {
	a := HexToAddress("0xdeadbeef")
	if a[AddressLength-1] != 0xef || a[AddressLength-2] != 0xbe {
		t.Fatalf("HexToAddress failed: got %x", a)
	}
}

func TestAddressIsZero(t *testing.T) {
	var a Address
	if !a.IsZero() {
		t.Fatal("zero-value address should report IsZero")
	}
	a[AddressLength-1] = 1
	if a.IsZero() {
		t.Fatal("non-zero address should not report IsZero")
	}
}

func TestAddressHexAndStringAgree(t *testing.T) {
	a := HexToAddress("0x1234")
	if a.String() != a.Hex() {
		t.Fatalf("String() = %q, want Hex() %q", a.String(), a.Hex())
	}
}

func TestNewAccountDefaults(t *testing.T) {
	acc := NewAccount()
	if acc.Nonce != 0 {
		t.Errorf("new account nonce = %d, want 0", acc.Nonce)
	}
	if acc.Balance == nil || acc.Balance.Sign() != 0 {
		t.Errorf("new account balance = %v, want 0", acc.Balance)
	}
	if acc.Root != EmptyRootHash {
		t.Errorf("new account root = %v, want EmptyRootHash", acc.Root)
	}
	if string(acc.CodeHash) != string(EmptyCodeHash.Bytes()) {
		t.Errorf("new account code hash = %x, want EmptyCodeHash", acc.CodeHash)
	}
}

func TestHas0xPrefix(t *testing.T) {
	cases := map[string]bool{
		"0xdead": true,
		"0Xdead": true,
		"dead":   false,
		"0x":     true,
		"0":      false,
		"":       false,
	}
	for in, want := range cases {
		if got := has0xPrefix(in); got != want {
			t.Errorf("has0xPrefix(%q) = %v, want %v", in, got, want)
		}
	}
}
