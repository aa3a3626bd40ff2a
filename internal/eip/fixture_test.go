package eip

import (
	"encoding/json"
	"testing"
)

func sampleCases() []TestCase {
	gas := uint64(21000)
	return []TestCase{
		{
			Name:            "push0_direct",
			Strategy:        StrategyCallContext,
			Bytecode:        []byte{0x5f, 0x00},
			GasLimit:        100000,
			ExpectedSuccess: true,
			ExpectedGasUsed: &gas,
			Description:     "PUSH0 executed directly",
		},
		{
			Name:            "push0_gas_one_short",
			Strategy:        StrategyGasExhaustion,
			Bytecode:        []byte{0x5f, 0x00},
			GasLimit:        1,
			ExpectedSuccess: false,
			Description:     "PUSH0 one gas short",
		},
	}
}

func TestBuildAndMarshalNativeFixture(t *testing.T) {
	nf := BuildNativeFixture(Entry{Number: 3855, Title: "PUSH0 instruction"}, sampleCases(), "2026-07-30T00:00:00Z")
	data, err := MarshalNativeFixture(nf)
	if err != nil {
		t.Fatalf("MarshalNativeFixture error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("marshaled fixture is not valid JSON: %v", err)
	}

	if decoded["eip_number"].(float64) != 3855 {
		t.Fatalf("eip_number = %v, want 3855", decoded["eip_number"])
	}
	cases, ok := decoded["test_cases"].([]interface{})
	if !ok || len(cases) != 2 {
		t.Fatalf("expected 2 test_cases, got %v", decoded["test_cases"])
	}
	first := cases[0].(map[string]interface{})
	if first["bytecode"] != "5f00" {
		t.Fatalf("bytecode = %v, want lowercase hex \"5f00\"", first["bytecode"])
	}
	if _, hasPrefix := first["0xbytecode"]; hasPrefix {
		t.Fatal("native bytecode must not carry a 0x prefix")
	}
}

func TestBuildEcosystemFixtureShape(t *testing.T) {
	doc := BuildEcosystemFixture(sampleCases())
	data, err := MarshalEcosystemFixture(doc)
	if err != nil {
		t.Fatalf("MarshalEcosystemFixture error: %v", err)
	}

	var decoded map[string]map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("marshaled ecosystem fixture is not valid JSON: %v", err)
	}

	entry, ok := decoded["push0_direct"]
	if !ok {
		t.Fatal("expected a \"push0_direct\" top-level entry")
	}
	env, ok := entry["env"].(map[string]interface{})
	if !ok {
		t.Fatal("expected an env object")
	}
	for _, key := range []string{"currentNumber", "currentGasLimit", "currentTimestamp"} {
		v, ok := env[key].(string)
		if !ok || len(v) < 2 || v[:2] != "0x" {
			t.Fatalf("env.%s = %v, want a 0x-prefixed hex string", key, env[key])
		}
	}
	tx, ok := entry["transaction"].(map[string]interface{})
	if !ok {
		t.Fatal("expected a transaction object")
	}
	if gl, ok := tx["gasLimit"].(string); !ok || gl[:2] != "0x" {
		t.Fatalf("transaction.gasLimit = %v, want 0x-prefixed hex string", tx["gasLimit"])
	}
}
