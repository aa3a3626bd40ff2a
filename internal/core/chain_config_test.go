package core

import (
	"math/big"
	"testing"

	"github.com/atahabilder1/SPECTRE/internal/vm"
)

func TestForkString(t *testing.T) {
	cases := map[Fork]string{
		Frontier:  "Frontier",
		Homestead: "Homestead",
		Shanghai:  "Shanghai",
		Fork(99):  "Fork(99)",
	}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("Fork(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}

func TestParseForkKnownNames(t *testing.T) {
	cases := map[string]Fork{
		"Frontier":         Frontier,
		"Homestead":        Homestead,
		"EIP150":           Homestead,
		"TangerineWhistle": Homestead,
		"EIP158":           Homestead,
		"SpuriousDragon":   Homestead,
		"Shanghai":         Shanghai,
	}
	for name, want := range cases {
		got, err := ParseFork(name)
		if err != nil {
			t.Errorf("ParseFork(%q) error: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFork(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseForkUnknownName(t *testing.T) {
	if _, err := ParseFork("Byzantium"); err == nil {
		t.Fatal("expected an error for an unsupported fork name")
	}
}

func TestForkAtHomesteadFromGenesis(t *testing.T) {
	cfg := DefaultChainConfig()
	if got := cfg.ForkAt(big.NewInt(0), 0); got != Homestead {
		t.Errorf("ForkAt(0, 0) = %v, want Homestead", got)
	}
	if got := cfg.ForkAt(big.NewInt(1_000_000), 0); got != Homestead {
		t.Errorf("ForkAt(1000000, 0) = %v, want Homestead", got)
	}
}

func TestForkAtBeforeHomesteadBlock(t *testing.T) {
	cfg := &ChainConfig{ChainID: big.NewInt(1), HomesteadBlock: big.NewInt(100)}
	if got := cfg.ForkAt(big.NewInt(50), 0); got != Frontier {
		t.Errorf("ForkAt(50, 0) = %v, want Frontier (before HomesteadBlock)", got)
	}
	if got := cfg.ForkAt(big.NewInt(100), 0); got != Homestead {
		t.Errorf("ForkAt(100, 0) = %v, want Homestead (at activation block)", got)
	}
}

func TestForkAtShanghaiTimeWins(t *testing.T) {
	shanghaiTime := uint64(1_700_000_000)
	cfg := &ChainConfig{
		ChainID:        big.NewInt(1),
		HomesteadBlock: big.NewInt(0),
		ShanghaiTime:   &shanghaiTime,
	}
	if got := cfg.ForkAt(big.NewInt(1), shanghaiTime-1); got != Homestead {
		t.Errorf("ForkAt just before ShanghaiTime = %v, want Homestead", got)
	}
	if got := cfg.ForkAt(big.NewInt(1), shanghaiTime); got != Shanghai {
		t.Errorf("ForkAt at ShanghaiTime = %v, want Shanghai", got)
	}
}

func TestForkAtNilActivationFieldsStayFrontier(t *testing.T) {
	cfg := &ChainConfig{ChainID: big.NewInt(1)}
	if got := cfg.ForkAt(big.NewInt(1_000_000), 1_700_000_000); got != Frontier {
		t.Errorf("ForkAt with nil HomesteadBlock/ShanghaiTime = %v, want Frontier", got)
	}
}

func TestForkRulesMapping(t *testing.T) {
	if got := Frontier.Rules(); got != (vm.ForkRules{}) {
		t.Errorf("Frontier.Rules() = %+v, want zero value", got)
	}
	if got := Homestead.Rules(); !got.IsHomestead || got.IsShanghai {
		t.Errorf("Homestead.Rules() = %+v, want IsHomestead only", got)
	}
	if got := Shanghai.Rules(); !got.IsHomestead || !got.IsShanghai {
		t.Errorf("Shanghai.Rules() = %+v, want both flags set", got)
	}
}

func TestRulesAtCombinesForkAtAndRules(t *testing.T) {
	cfg := DefaultChainConfig()
	rules := cfg.RulesAt(big.NewInt(5), 0)
	if !rules.IsHomestead || rules.IsShanghai {
		t.Errorf("RulesAt(5, 0) = %+v, want IsHomestead only", rules)
	}
}
