package eip

import (
	"math/big"
	"strconv"

	"github.com/atahabilder1/SPECTRE/internal/vm"
)

// Strategy names one of the six test-case generation strategies of §4.10.
type Strategy string

const (
	StrategyBoundary         Strategy = "BOUNDARY"
	StrategyOpcodeInteraction Strategy = "OPCODE_INTERACTION"
	StrategyCallContext      Strategy = "CALL_CONTEXT"
	StrategyGasExhaustion    Strategy = "GAS_EXHAUSTION"
	StrategyForkBoundary     Strategy = "FORK_BOUNDARY"
	StrategyStackDepth       Strategy = "STACK_DEPTH"
)

// TestCase is one generated adversarial test vector (§4.10, last paragraph).
type TestCase struct {
	Name              string
	Strategy          Strategy
	Bytecode          []byte
	GasLimit          uint64
	ExpectedSuccess   bool
	ExpectedGasUsed   *uint64 // nil when the case intentionally leaves gas unconstrained
	Description       string
}

// boundaryOperands are the canonical substitution values of §4.10 BOUNDARY.
func boundaryOperands() []*big.Int {
	pow2 := func(n uint) *big.Int { return new(big.Int).Lsh(big.NewInt(1), n) }
	sub1 := func(v *big.Int) *big.Int { return new(big.Int).Sub(v, big.NewInt(1)) }
	return []*big.Int{
		big.NewInt(0), big.NewInt(1), big.NewInt(2), big.NewInt(255), big.NewInt(256),
		sub1(pow2(32)), sub1(pow2(64)), sub1(pow2(255)), pow2(255), sub1(pow2(256)),
	}
}

// isStateModifying reports whether op can mutate state, and is therefore
// expected to fail inside a STATICCALL.
func isStateModifying(op vm.OpCode) bool {
	switch op {
	case vm.SSTORE, vm.LOG0, vm.LOG1, vm.LOG2, vm.LOG3, vm.LOG4,
		vm.CREATE, vm.CREATE2, vm.SELFDESTRUCT, vm.CALL:
		return true
	default:
		return false
	}
}

// pushWord returns PUSH32 <v, 32-byte big-endian>.
func pushWord(v *big.Int) []byte {
	word := make([]byte, 32)
	v.FillBytes(word)
	return append([]byte{byte(vm.PUSH32)}, word...)
}

// GenerateTestCases produces test vectors for entry using the given
// strategies. Strategies unrecognized for this entry are skipped rather
// than erroring, since not every strategy applies to every EIP (e.g.
// OPCODE_INTERACTION is vacuous for an EIP that adds no opcode).
func GenerateTestCases(entry Entry, strategies []Strategy) []TestCase {
	var cases []TestCase
	for _, s := range strategies {
		switch s {
		case StrategyBoundary:
			cases = append(cases, boundaryCases(entry)...)
		case StrategyOpcodeInteraction:
			cases = append(cases, opcodeInteractionCases(entry)...)
		case StrategyCallContext:
			cases = append(cases, callContextCases(entry)...)
		case StrategyGasExhaustion:
			cases = append(cases, gasExhaustionCases(entry)...)
		case StrategyForkBoundary:
			cases = append(cases, forkBoundaryCases(entry)...)
		case StrategyStackDepth:
			cases = append(cases, stackDepthCases(entry)...)
		}
	}
	return cases
}

// boundaryCases substitutes each canonical boundary value for any opcode
// this entry added, returning it via MSTORE+RETURN.
func boundaryCases(entry Entry) []TestCase {
	if len(entry.OpcodesAdded) == 0 {
		return nil
	}
	var cases []TestCase
	for _, op := range entry.OpcodesAdded {
		for i, v := range boundaryOperands() {
			code := append([]byte{}, pushWord(v)...)
			code = append(code, byte(op))
			code = append(code, byte(vm.PUSH1), 0x00, byte(vm.MSTORE))
			code = append(code, byte(vm.PUSH1), 0x20, byte(vm.PUSH1), 0x00, byte(vm.RETURN))
			cases = append(cases, TestCase{
				Name:            opName(op) + "_boundary_" + strconv.Itoa(i),
				Strategy:        StrategyBoundary,
				Bytecode:        code,
				GasLimit:        100000,
				ExpectedSuccess: true,
				Description:     "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " with boundary operand " + v.String(),
			})
		}
	}
	return cases
}

// opcodeInteractionCases emits op followed by each of DUP1, SWAP1, MSTORE,
// JUMPI using its result.
func opcodeInteractionCases(entry Entry) []TestCase {
	var cases []TestCase
	for _, op := range entry.OpcodesAdded {
		followUps := []struct {
			name string
			ops  []byte
		}{
			{"dup", []byte{byte(vm.DUP1), byte(vm.POP), byte(vm.STOP)}},
			{"swap", []byte{byte(vm.PUSH1), 0x00, byte(vm.SWAP1), byte(vm.POP), byte(vm.POP), byte(vm.STOP)}},
			{"mstore", []byte{byte(vm.PUSH1), 0x00, byte(vm.MSTORE), byte(vm.STOP)}},
			{"jumpi", []byte{byte(vm.PUSH1), 0x05, byte(vm.JUMPI), byte(vm.STOP), byte(vm.JUMPDEST), byte(vm.STOP)}},
		}
		for _, f := range followUps {
			code := []byte{byte(op)}
			code = append(code, f.ops...)
			cases = append(cases, TestCase{
				Name:            opName(op) + "_interacts_with_" + f.name,
				Strategy:        StrategyOpcodeInteraction,
				Bytecode:        code,
				GasLimit:        100000,
				ExpectedSuccess: true,
				Description:     "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " result consumed by " + f.name,
			})
		}
	}
	return cases
}

// callContextCases emits two cases per added opcode: a direct-execution case
// and a "via_staticcall" case. Both carry the same unwrapped bytecode (the
// opcode followed by STOP); the second records an expected success of true
// only for non-state-modifying opcodes. No CALL or DELEGATECALL cases are
// emitted, and no STATICCALL wrapper code is generated.
func callContextCases(entry Entry) []TestCase {
	var cases []TestCase
	for _, op := range entry.OpcodesAdded {
		directCode := []byte{byte(op), byte(vm.STOP)}
		cases = append(cases, TestCase{
			Name: opName(op) + "_direct", Strategy: StrategyCallContext,
			Bytecode: directCode, GasLimit: 100000, ExpectedSuccess: true,
			Description: "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " executed directly",
		})

		staticExpect := !isStateModifying(op)
		// The bytecode here is directCode itself; only the expectation
		// differs from the direct case.
		cases = append(cases, TestCase{
			Name: opName(op) + "_via_staticcall", Strategy: StrategyCallContext,
			Bytecode: directCode, GasLimit: 100000, ExpectedSuccess: staticExpect,
			Description: "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " wrapped in STATICCALL, expected success=" + boolStr(staticExpect),
		})
	}
	return cases
}

// gasExhaustionCases brackets a fixed per-opcode gas cost: exactly enough,
// one gas short, and inside a loop until OOG.
func gasExhaustionCases(entry Entry) []TestCase {
	var cases []TestCase
	for _, op := range entry.OpcodesAdded {
		cost := vm.GasBase // every opcode this catalog adds costs G_base
		exact := cost + vm.GasZero
		code := []byte{byte(op), byte(vm.STOP)}

		cases = append(cases, TestCase{
			Name: opName(op) + "_gas_exact", Strategy: StrategyGasExhaustion,
			Bytecode: code, GasLimit: exact, ExpectedSuccess: true,
			ExpectedGasUsed: u64ptr(exact),
			Description:     "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " with exactly enough gas",
		})
		cases = append(cases, TestCase{
			Name: opName(op) + "_gas_one_short", Strategy: StrategyGasExhaustion,
			Bytecode: code, GasLimit: exact - 1, ExpectedSuccess: false,
			Description: "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " one gas short of sufficient",
		})

		// Loop the opcode until OOG: JUMPDEST; op; POP-equivalent; JUMP back.
		loop := []byte{byte(vm.JUMPDEST), byte(op), byte(vm.POP), byte(vm.PUSH1), 0x00, byte(vm.JUMP)}
		cases = append(cases, TestCase{
			Name: opName(op) + "_gas_loop_exhaustion", Strategy: StrategyGasExhaustion,
			Bytecode: loop, GasLimit: 50000, ExpectedSuccess: false,
			Description: "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " looped until out of gas",
		})
	}
	return cases
}

// forkBoundaryCases emits one minimal program per added opcode, expected to
// succeed. Its description names the introducing fork (success) and the fork
// before it (fault), but the test case records no fork and no separate
// pre-fork case with an expected fault is emitted.
func forkBoundaryCases(entry Entry) []TestCase {
	var cases []TestCase
	for _, op := range entry.OpcodesAdded {
		code := []byte{byte(op), byte(vm.STOP)}
		cases = append(cases, TestCase{
			Name: opName(op) + "_fork_boundary", Strategy: StrategyForkBoundary,
			Bytecode: code, GasLimit: 100000, ExpectedSuccess: true,
			Description: "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " succeeds under " + entry.IntroducedInFork.String() + ", faults the fork before it",
		})
	}
	return cases
}

// stackDepthCases pre-fills the stack to 1023 and 1024 entries before
// invoking each added opcode.
func stackDepthCases(entry Entry) []TestCase {
	var cases []TestCase
	for _, op := range entry.OpcodesAdded {
		for _, depth := range []int{1023, 1024} {
			var code []byte
			for i := 0; i < depth; i++ {
				code = append(code, byte(vm.PUSH1), 0x01)
			}
			code = append(code, byte(op), byte(vm.STOP))
			cases = append(cases, TestCase{
				Name:            opName(op) + "_stack_depth_" + strconv.Itoa(depth),
				Strategy:        StrategyStackDepth,
				Bytecode:        code,
				GasLimit:        1000000,
				ExpectedSuccess: depth < 1024 || !pushesToStack(op),
				Description:     "EIP-" + strconv.Itoa(entry.Number) + ": " + opName(op) + " invoked with stack pre-filled to " + strconv.Itoa(depth),
			})
		}
	}
	return cases
}

// pushesToStack reports whether op would itself push a value, which
// matters for whether invoking it at depth 1024 overflows.
func pushesToStack(op vm.OpCode) bool {
	return op == vm.PUSH0 || op.IsPush()
}

func opName(op vm.OpCode) string { return op.String() }

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func u64ptr(v uint64) *uint64 { return &v }
