package rlp

import (
	"bytes"
	"math/big"
	"testing"
)

func TestEncodeEmptyString(t *testing.T) {
	got, err := EncodeToBytes("")
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x80}; !bytes.Equal(got, want) {
		t.Fatalf("empty string: got %x, want %x", got, want)
	}
}

func TestEncodeDog(t *testing.T) {
	got, err := EncodeToBytes("dog")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x83, 0x64, 0x6f, 0x67}
	if !bytes.Equal(got, want) {
		t.Fatalf("\"dog\": got %x, want %x", got, want)
	}
}

func TestEncodeSingleByteBelow0x80IsItself(t *testing.T) {
	got, err := EncodeToBytes(uint64(0x2a))
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x2a}; !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeLongString(t *testing.T) {
	s := "Lorem ipsum dolor sit amet, consectetur adipisicing elit" // 56 bytes, > 55
	got, err := EncodeToBytes(s)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0xb8 {
		t.Fatalf("long string prefix: got %x, want 0xb8", got[0])
	}
	if int(got[1]) != len(s) {
		t.Fatalf("long string length byte: got %d, want %d", got[1], len(s))
	}
	if !bytes.Equal(got[2:], []byte(s)) {
		t.Fatal("long string data mismatch")
	}
}

func TestEncodeUint(t *testing.T) {
	tests := []struct {
		name string
		val  uint64
		want []byte
	}{
		{"zero", 0, []byte{0x80}},
		{"fifteen", 15, []byte{0x0f}},
		{"127", 127, []byte{0x7f}},
		{"128", 128, []byte{0x81, 0x80}},
		{"1024", 1024, []byte{0x82, 0x04, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeToBytes(tt.val)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got %x, want %x", got, tt.want)
			}
		})
	}
}

func TestEncodeBigInt(t *testing.T) {
	got, err := EncodeToBytes(big.NewInt(1024))
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x82, 0x04, 0x00}; !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeEmptyList(t *testing.T) {
	got, err := EncodeToBytes([]uint64{})
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0xc0}; !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeListOfStrings(t *testing.T) {
	// ["cat", "dog"]
	got, err := EncodeToBytes([]string{"cat", "dog"})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeByteSliceAsString(t *testing.T) {
	got, err := EncodeToBytes([]byte{0xde, 0xad})
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x82, 0xde, 0xad}; !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeStructIsAList(t *testing.T) {
	type pair struct {
		A uint64
		B string
	}
	got, err := EncodeToBytes(pair{A: 1, B: "x"})
	if err != nil {
		t.Fatal(err)
	}
	// list header + [0x01, 0x78]
	want := []byte{0xc2, 0x01, 0x78}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}
