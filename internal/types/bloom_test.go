package types

import "testing"

func TestBloom9BitPositions(t *testing.T) {
	// keccak256("test") = 9c22ff5f21f0b81b113e63f7db6da94fedef11b2119b4088b89664fb9a3cb658
	// First 6 bytes: 9c 22 ff 5f 21 f0
	data := []byte("test")
	bits := bloom9(data)

	expected := [3]uint{
		0x9c22 & 0x7FF, // 1058
		0xff5f & 0x7FF, // 1887
		0x21f0 & 0x7FF, // 496
	}
	for i, got := range bits {
		if got != expected[i] {
			t.Errorf("bloom9 bit[%d] = %d, want %d", i, got, expected[i])
		}
	}
}

func TestBloomAddSetsExactlyThreeBits(t *testing.T) {
	var bloom Bloom
	BloomAdd(&bloom, []byte("test"))

	bits := bloom9([]byte("test"))
	unique := map[uint]bool{}
	for _, b := range bits {
		unique[b] = true
	}

	set := 0
	for _, by := range bloom {
		for bit := 0; bit < 8; bit++ {
			if by&(1<<uint(bit)) != 0 {
				set++
			}
		}
	}
	if set != len(unique) {
		t.Fatalf("set bits = %d, want %d (one per distinct bloom9 position)", set, len(unique))
	}
}

func TestBloomContainsRoundTrip(t *testing.T) {
	var bloom Bloom
	items := [][]byte{[]byte("hello"), []byte("world"), []byte("ethereum")}
	for _, item := range items {
		BloomAdd(&bloom, item)
	}
	for _, item := range items {
		if !BloomContains(bloom, item) {
			t.Errorf("bloom should contain %q after BloomAdd", item)
		}
	}
}

func TestBloomContainsEmptyBloomIsFalse(t *testing.T) {
	var bloom Bloom
	if BloomContains(bloom, []byte("anything")) {
		t.Fatal("empty bloom must not contain anything")
	}
}

func TestLogsBloomIncludesAddressAndTopicsOnly(t *testing.T) {
	addr := HexToAddress("0xdead")
	topic1 := HexToHash("0xaabb")
	topic2 := HexToHash("0xccdd")

	logs := []*Log{{
		Address: addr,
		Topics:  []Hash{topic1, topic2},
		Data:    []byte{0x01, 0x02},
	}}
	bloom := LogsBloom(logs)

	if !BloomContains(bloom, addr.Bytes()) {
		t.Error("bloom should contain log address")
	}
	if !BloomContains(bloom, topic1.Bytes()) {
		t.Error("bloom should contain topic1")
	}
	if !BloomContains(bloom, topic2.Bytes()) {
		t.Error("bloom should contain topic2")
	}
}

func TestLogsBloomEmptyIsZero(t *testing.T) {
	if LogsBloom(nil) != (Bloom{}) {
		t.Fatal("bloom from nil logs should be zero")
	}
	if LogsBloom([]*Log{}) != (Bloom{}) {
		t.Fatal("bloom from no logs should be zero")
	}
}

func TestLogsBloomMultipleLogsAccumulate(t *testing.T) {
	addr1 := HexToAddress("0x1111")
	addr2 := HexToAddress("0x2222")
	logs := []*Log{
		{Address: addr1, Topics: []Hash{HexToHash("0xaaaa")}},
		{Address: addr2, Topics: []Hash{HexToHash("0xbbbb")}},
	}
	bloom := LogsBloom(logs)
	if !BloomContains(bloom, addr1.Bytes()) || !BloomContains(bloom, addr2.Bytes()) {
		t.Fatal("bloom should contain both log addresses")
	}
}
