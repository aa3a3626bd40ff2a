// Package gen implements the bytecode generator (§4.8): five strategies
// that each produce a deterministic sequence of candidate EVM programs,
// consumed as raw input by the differential executor in package diff.
package gen

import (
	"math/big"
	"math/rand"

	"github.com/atahabilder1/SPECTRE/internal/vm"
)

// Program is a raw, unvalidated sequence of EVM bytecode.
type Program []byte

// terminators are the four halt opcodes a grammar-generated program may end
// on.
var terminators = []vm.OpCode{vm.STOP, vm.RETURN, vm.REVERT, vm.INVALID}

// Random produces count programs of uniformly random bytes, length drawn
// from [1, 256], from a source seeded deterministically by seed.
func Random(seed int64, count int) []Program {
	r := rand.New(rand.NewSource(seed))
	progs := make([]Program, count)
	for i := range progs {
		n := 1 + r.Intn(256)
		p := make(Program, n)
		r.Read(p)
		progs[i] = p
	}
	return progs
}

// category weights for the grammar strategy: push instructions are
// over-represented relative to their share of the real opcode space,
// matching the "push-heavy" bias called for in §4.8.
type weightedOp struct {
	op     vm.OpCode
	weight int
}

var grammarOps = []weightedOp{
	{vm.PUSH1, 30}, {vm.PUSH2, 10}, {vm.PUSH4, 6}, {vm.PUSH32, 6},
	{vm.ADD, 8}, {vm.SUB, 6}, {vm.MUL, 6}, {vm.DIV, 4}, {vm.MOD, 4},
	{vm.AND, 4}, {vm.OR, 4}, {vm.XOR, 4}, {vm.NOT, 3},
	{vm.LT, 4}, {vm.GT, 4}, {vm.EQ, 4}, {vm.ISZERO, 4},
	{vm.DUP1, 6}, {vm.DUP2, 4}, {vm.SWAP1, 6}, {vm.SWAP2, 4},
	{vm.POP, 5}, {vm.MLOAD, 3}, {vm.MSTORE, 3},
	{vm.SLOAD, 2}, {vm.SSTORE, 2},
	{vm.JUMPDEST, 2},
}

// Grammar samples a program as Instruction* Terminator, where Instruction is
// drawn from a push-heavy weighted distribution and each PUSHn is followed
// by exactly n random immediate bytes. A simulated stack depth is tracked so
// the emitted program never pops below zero and rarely exceeds 32 entries in
// expectation, per the §4.8 depth heuristic.
func Grammar(seed int64, count int, maxLen int) []Program {
	if maxLen <= 0 {
		maxLen = 128
	}
	r := rand.New(rand.NewSource(seed))
	totalWeight := 0
	for _, w := range grammarOps {
		totalWeight += w.weight
	}

	progs := make([]Program, count)
	for i := range progs {
		var buf []byte
		depth := 0
		for len(buf) < maxLen {
			pick := r.Intn(totalWeight)
			var chosen vm.OpCode
			for _, w := range grammarOps {
				if pick < w.weight {
					chosen = w.op
					break
				}
				pick -= w.weight
			}

			pops, pushes := stackEffect(chosen)
			if depth < pops {
				// Not enough operands on the simulated stack; fall back to a
				// PUSH1 to grow it instead of emitting an underflowing op.
				chosen = vm.PUSH1
				pops, pushes = stackEffect(chosen)
			}
			if depth-pops+pushes > 32 {
				// Keep expected depth bounded; prefer POP.
				if depth > 0 {
					chosen, pops, pushes = vm.POP, 1, 0
				}
			}

			buf = append(buf, byte(chosen))
			if chosen.IsPush() && chosen != vm.PUSH0 {
				n := int(chosen) - int(vm.PUSH1) + 1
				imm := make([]byte, n)
				r.Read(imm)
				buf = append(buf, imm...)
			}
			depth += pushes - pops
		}
		buf = append(buf, byte(terminators[r.Intn(len(terminators))]))
		progs[i] = buf
	}
	return progs
}

// stackEffect gives a best-effort (pops, pushes) count for the opcodes the
// grammar strategy can emit. Opcodes outside this table are never chosen by
// Grammar, so it need not be exhaustive over the whole set.
func stackEffect(op vm.OpCode) (pops, pushes int) {
	switch {
	case op == vm.PUSH0 || op.IsPush():
		return 0, 1
	case op >= vm.DUP1 && op <= vm.DUP16:
		return 0, 1
	case op >= vm.SWAP1 && op <= vm.SWAP16:
		return 0, 0
	}
	switch op {
	case vm.NOT, vm.ISZERO:
		return 1, 1
	case vm.POP:
		return 1, 0
	case vm.MLOAD, vm.SLOAD:
		return 1, 1
	case vm.MSTORE, vm.SSTORE:
		return 2, 0
	case vm.JUMPDEST:
		return 0, 0
	default:
		// Binary arithmetic/comparison/bitwise ops: two operands, one result.
		return 2, 1
	}
}

// Boundary returns a fixed catalog of programs that push or compute
// canonical boundary values: 0, 1, 2^8-1, 2^8, 2^64-1, 2^64, 2^255,
// 2^256-1.
func Boundary() []Program {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		pow2Minus1(8),
		pow2(8),
		pow2Minus1(64),
		pow2(64),
		pow2(255),
		pow2Minus1(256),
	}
	progs := make([]Program, len(values))
	for i, v := range values {
		progs[i] = pushReturn(v)
	}
	return progs
}

// pow2 returns 2^n as a big.Int.
func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

// pow2Minus1 returns 2^n - 1.
func pow2Minus1(n uint) *big.Int {
	return new(big.Int).Sub(pow2(n), big.NewInt(1))
}

// pushReturn builds PUSH32 v; PUSH1 0; MSTORE; PUSH1 32; PUSH1 0; RETURN,
// i.e. a program that hands v back as its 32-byte return value.
func pushReturn(v *big.Int) Program {
	word := make([]byte, 32)
	v.FillBytes(word)
	buf := []byte{byte(vm.PUSH32)}
	buf = append(buf, word...)
	buf = append(buf,
		byte(vm.PUSH1), 0x00, byte(vm.MSTORE),
		byte(vm.PUSH1), 0x20, byte(vm.PUSH1), 0x00, byte(vm.RETURN),
	)
	return buf
}

// OpcodeFocused builds a program whose prefix establishes op's stack
// preconditions with PUSH1 operands of 1, then invokes op, stores the
// single-word result to memory at offset 0, and returns it.
func OpcodeFocused(op vm.OpCode) Program {
	pops, _ := stackEffect(op)
	if pops == 0 {
		pops = 2 // default to a binary-arity shape for unlisted opcodes
	}
	var buf []byte
	for i := 0; i < pops; i++ {
		buf = append(buf, byte(vm.PUSH1), 0x01)
	}
	buf = append(buf, byte(op))
	buf = append(buf, byte(vm.PUSH1), 0x00, byte(vm.MSTORE))
	buf = append(buf, byte(vm.PUSH1), 0x20, byte(vm.PUSH1), 0x00, byte(vm.RETURN))
	return buf
}

// Sequence returns pre-canned programs that stress arithmetic identities,
// e.g. (a+b)*c.
func Sequence() []Program {
	return []Program{
		// PUSH1 3; PUSH1 5; ADD; PUSH1 2; MUL; STOP
		{byte(vm.PUSH1), 3, byte(vm.PUSH1), 5, byte(vm.ADD), byte(vm.PUSH1), 2, byte(vm.MUL), byte(vm.STOP)},
		// PUSH1 0; PUSH1 5; DIV; STOP  (division by zero)
		{byte(vm.PUSH1), 0, byte(vm.PUSH1), 5, byte(vm.DIV), byte(vm.STOP)},
		// PUSH32 MAX; PUSH1 1; ADD; STOP  (wraparound)
		append([]byte{byte(vm.PUSH32)}, append(repeat(0xff, 32), byte(vm.PUSH1), 1, byte(vm.ADD), byte(vm.STOP))...),
		// PUSH1 1; PUSH1 0; SUB; STOP (underflow wraps to MAX)
		{byte(vm.PUSH1), 1, byte(vm.PUSH1), 0, byte(vm.SUB), byte(vm.STOP)},
	}
}

func repeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
