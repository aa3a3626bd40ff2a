package rlp

import (
	"math/big"
	"testing"
)

func TestDecodeStringRoundTrip(t *testing.T) {
	enc, err := EncodeToBytes("dog")
	if err != nil {
		t.Fatal(err)
	}
	var got string
	if err := DecodeBytes(enc, &got); err != nil {
		t.Fatal(err)
	}
	if got != "dog" {
		t.Fatalf("got %q, want \"dog\"", got)
	}
}

func TestDecodeUint64RoundTrip(t *testing.T) {
	enc, err := EncodeToBytes(uint64(1024))
	if err != nil {
		t.Fatal(err)
	}
	var got uint64
	if err := DecodeBytes(enc, &got); err != nil {
		t.Fatal(err)
	}
	if got != 1024 {
		t.Fatalf("got %d, want 1024", got)
	}
}

func TestDecodeBigIntRoundTrip(t *testing.T) {
	enc, err := EncodeToBytes(big.NewInt(99999))
	if err != nil {
		t.Fatal(err)
	}
	var got big.Int
	if err := DecodeBytes(enc, &got); err != nil {
		t.Fatal(err)
	}
	if got.Int64() != 99999 {
		t.Fatalf("got %s, want 99999", got.String())
	}
}

func TestDecodeListOfStringsRoundTrip(t *testing.T) {
	enc, err := EncodeToBytes([]string{"cat", "dog"})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	if err := DecodeBytes(enc, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "cat" || got[1] != "dog" {
		t.Fatalf("got %v, want [cat dog]", got)
	}
}

func TestDecodeStructRoundTrip(t *testing.T) {
	type pair struct {
		A uint64
		B string
	}
	enc, err := EncodeToBytes(pair{A: 7, B: "x"})
	if err != nil {
		t.Fatal(err)
	}
	var got pair
	if err := DecodeBytes(enc, &got); err != nil {
		t.Fatal(err)
	}
	if got.A != 7 || got.B != "x" {
		t.Fatalf("got %+v, want {A:7 B:x}", got)
	}
}

func TestDecodeRejectsNonCanonicalSingleByteString(t *testing.T) {
	// 0x81 0x00 encodes the single byte 0x00 as a length-1 string, which is
	// non-canonical: it should have been encoded as the bare byte 0x00.
	var got string
	err := DecodeBytes([]byte{0x81, 0x00}, &got)
	if err != ErrCanonSize {
		t.Fatalf("err = %v, want ErrCanonSize", err)
	}
}

func TestStreamListAndListEnd(t *testing.T) {
	enc, err := EncodeToBytes([]uint64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	s := newByteStream(enc)
	size, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if size == 0 {
		t.Fatal("expected a non-zero list payload size")
	}
	var vals []uint64
	for i := 0; i < 3; i++ {
		v, err := s.Uint64()
		if err != nil {
			t.Fatalf("Uint64() item %d: %v", i, err)
		}
		vals = append(vals, v)
	}
	if err := s.ListEnd(); err != nil {
		t.Fatalf("ListEnd() error: %v", err)
	}
	if len(vals) != 3 || vals[0] != 1 || vals[2] != 3 {
		t.Fatalf("vals = %v, want [1 2 3]", vals)
	}
}

func TestStreamListEndFailsOnUnconsumedItems(t *testing.T) {
	enc, err := EncodeToBytes([]uint64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	s := newByteStream(enc)
	if _, err := s.List(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Uint64(); err != nil { // consume only the first item
		t.Fatal(err)
	}
	if err := s.ListEnd(); err != ErrEOL {
		t.Fatalf("ListEnd() with an unconsumed item = %v, want ErrEOL", err)
	}
}
