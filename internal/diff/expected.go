package diff

import (
	"github.com/atahabilder1/SPECTRE/internal/core"
	"github.com/atahabilder1/SPECTRE/internal/vm"
)

// straddlesHomestead and straddlesShanghai report whether forkA and forkB
// fall on opposite sides of that rule-change boundary, regardless of which
// is passed first.
func straddlesHomestead(a, b core.Fork) bool {
	return (a < core.Homestead) != (b < core.Homestead)
}

func straddlesShanghai(a, b core.Fork) bool {
	return (a < core.Shanghai) != (b < core.Shanghai)
}

// containsOpcode scans code for op, skipping PUSHn immediate-data regions
// so that immediate bytes equal to op's value are not mistaken for the
// instruction itself.
func containsOpcode(code []byte, op vm.OpCode) bool {
	for pc := 0; pc < len(code); {
		c := vm.OpCode(code[pc])
		if c == op {
			return true
		}
		if c.IsPush() {
			pc += 1 + (int(c) - int(vm.PUSH1) + 1)
			continue
		}
		pc++
	}
	return false
}

// expectedRule names one entry in the expected-divergence table: a
// predicate over the pair of forks and the bytecode, plus the rule that
// explains a resulting divergence (§4.9 "Expectedness").
type expectedRule struct {
	name      string
	predicate func(a, b core.Fork, code []byte) bool
}

var expectedRules = []expectedRule{
	{
		name: "PUSH0 (EIP-3855): fault pre-Shanghai, succeeds Shanghai+",
		predicate: func(a, b core.Fork, code []byte) bool {
			return straddlesShanghai(a, b) && containsOpcode(code, vm.PUSH0)
		},
	},
	{
		name: "CREATE/CREATE2 out-of-gas-on-codedeposit semantics differ Frontier vs Homestead+",
		predicate: func(a, b core.Fork, code []byte) bool {
			return straddlesHomestead(a, b) && (containsOpcode(code, vm.CREATE) || containsOpcode(code, vm.CREATE2))
		},
	},
	{
		name: "SELFDESTRUCT constant gas differs Frontier (0) vs Homestead+ (5000)",
		predicate: func(a, b core.Fork, code []byte) bool {
			return straddlesHomestead(a, b) && containsOpcode(code, vm.SELFDESTRUCT)
		},
	},
	{
		name: "CALL-family base gas differs Frontier (40) vs Homestead+ (700)",
		predicate: func(a, b core.Fork, code []byte) bool {
			if !straddlesHomestead(a, b) {
				return false
			}
			for _, op := range []vm.OpCode{vm.CALL, vm.CALLCODE, vm.DELEGATECALL, vm.STATICCALL} {
				if containsOpcode(code, op) {
					return true
				}
			}
			return false
		},
	},
	{
		name: "CREATE initcode size/cost gate (EIP-3860) only applies Shanghai+",
		predicate: func(a, b core.Fork, code []byte) bool {
			return straddlesShanghai(a, b) && (containsOpcode(code, vm.CREATE) || containsOpcode(code, vm.CREATE2))
		},
	},
}

// ExpectedDivergence consults the expected-divergence table: a divergence is
// "expected" iff it is wholly explained by a documented fork-boundary rule
// change. It returns (true, name) for the first matching rule, or (false, "") if no
// rule explains the divergence (an unexpected, candidate-bug divergence).
func ExpectedDivergence(forkA, forkB core.Fork, code []byte, classification Classification) (bool, string) {
	if classification == NoDivergence {
		return false, ""
	}
	for _, rule := range expectedRules {
		if rule.predicate(forkA, forkB, code) {
			return true, rule.name
		}
	}
	return false, ""
}
