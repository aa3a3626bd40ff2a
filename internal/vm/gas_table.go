package vm

import (
	"fmt"
	"math"
	"math/big"

	"github.com/atahabilder1/SPECTRE/internal/types"
)

// MemoryGasCost calculates the gas cost for memory of the given size.
// Gas for memory = 3 * numWords + numWords^2 / 512.
func MemoryGasCost(memSize uint64) uint64 {
	if memSize == 0 {
		return 0
	}
	words := toWordSize(memSize)
	if words > 181_000 {
		// Beyond any realistic block gas limit; treat as unpayable.
		return math.MaxUint64
	}
	linear := words * GasMemory
	quadratic := words * words / 512
	return linear + quadratic
}

// MemoryExpansionGas returns the incremental cost of growing memory from
// oldSize to newSize.
func MemoryExpansionGas(oldSize, newSize uint64) uint64 {
	if newSize <= oldSize {
		return 0
	}
	return MemoryGasCost(newSize) - MemoryGasCost(oldSize)
}

// toWordSize rounds up to the next 32-byte word count.
func toWordSize(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// CallGas computes the gas forwarded to a CALL-family opcode per the 63/64
// rule: the caller keeps 1/64th of its remaining gas.
func CallGas(availableGas, requestedGas uint64) uint64 {
	maxGas := availableGas - availableGas/CallGasFraction
	if requestedGas > maxGas {
		return maxGas
	}
	return requestedGas
}

// SstoreGas computes the gas cost and refund for an SSTORE, using the
// classic (pre-EIP-2200, pre-EIP-3529) rule this system targets:
//   - 20000 if the slot goes from zero to non-zero
//   - 5000 otherwise
//   - a flat 15000 refund is scheduled when a non-zero slot is cleared to zero
func SstoreGas(current, newVal [32]byte) (gas uint64, refund int64) {
	if isZero(current) && !isZero(newVal) {
		return GasSstoreSet, 0
	}
	if !isZero(current) && isZero(newVal) {
		return GasSstoreReset, int64(SstoreClearsRefund)
	}
	return GasSstoreReset, 0
}

// LogGas computes the gas cost for a LOG operation:
// GasLog + numTopics*GasLogTopic + dataSize*GasLogData.
func LogGas(numTopics uint64, dataSize uint64) uint64 {
	gas := safeAdd(GasLog, safeMul(numTopics, GasLogTopic))
	return safeAdd(gas, safeMul(dataSize, GasLogData))
}

// Sha3Gas computes the gas cost for KECCAK256:
// GasKeccak256 + ceil(dataSize/32)*GasKeccak256Word.
func Sha3Gas(dataSize uint64) uint64 {
	words := toWordSize(dataSize)
	return safeAdd(GasKeccak256, safeMul(words, GasKeccak256Word))
}

// ExpGas computes the gas cost for EXP: GasSlowStep + 50*byte_length(exponent).
// This system applies the same formula across all three supported forks
// (see DESIGN.md for the reasoning behind not fork-gating this rate).
func ExpGas(exponent *big.Int) uint64 {
	if exponent.Sign() == 0 {
		return GasSlowStep
	}
	byteLen := uint64((exponent.BitLen() + 7) / 8)
	return safeAdd(GasSlowStep, safeMul(50, byteLen))
}

// CopyGas computes the gas cost of a copy opcode's data movement:
// GasCopy * ceil(size/32).
func CopyGas(size uint64) uint64 {
	return safeMul(GasCopy, toWordSize(size))
}

func isZero(val [32]byte) bool {
	for _, b := range val {
		if b != 0 {
			return false
		}
	}
	return true
}

func safeAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func safeMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}

// --- dynamic gas functions wired into the jump table ---

// gasMemExpansion charges only for memory expansion; used by opcodes whose
// entire dynamic cost is the memory-growth formula.
func gasMemExpansion(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	if requestedMemSize == 0 {
		return 0, nil
	}
	cost := MemoryExpansionGas(uint64(mem.Len()), requestedMemSize)
	if cost == math.MaxUint64 {
		return 0, fmt.Errorf("memory expansion overflow")
	}
	return cost, nil
}

func gasKeccak256(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	size := stack.Back(1).Uint64()
	gas := safeMul(toWordSize(size), GasKeccak256Word)
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	return safeAdd(gas, memGas), nil
}

func gasCallDataCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	gas := CopyGas(stack.Back(2).Uint64())
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	return safeAdd(gas, memGas), nil
}

func gasCodeCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	gas := CopyGas(stack.Back(2).Uint64())
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	return safeAdd(gas, memGas), nil
}

func gasReturnDataCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	gas := CopyGas(stack.Back(2).Uint64())
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	return safeAdd(gas, memGas), nil
}

// gasExtCodeCopy charges GasExtStep for the external code touch, plus copy
// gas (stack position 3) and memory expansion.
func gasExtCodeCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	gas := safeAdd(GasExtStep, CopyGas(stack.Back(3).Uint64()))
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	return safeAdd(gas, memGas), nil
}

func gasExp(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	exp := stack.Back(1)
	if exp.Sign() == 0 {
		return 0, nil
	}
	byteLen := uint64((exp.BitLen() + 7) / 8)
	return safeMul(50, byteLen), nil
}

func makeGasLog(n int) dynamicGasFunc {
	numTopics := uint64(n)
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
		dataSize := stack.Back(1).Uint64()
		gas := safeAdd(safeMul(numTopics, GasLogTopic), safeMul(dataSize, GasLogData))
		memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
		if err != nil {
			return 0, err
		}
		return safeAdd(gas, memGas), nil
	}
}

// gasSstore computes the SSTORE dynamic gas cost and schedules the flat
// 15000 refund when a non-zero slot is cleared (classic rule, no
// dirty-slot bookkeeping).
func gasSstore(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	if evm.readOnly {
		return 0, ErrWriteProtection
	}
	loc := stack.Back(0)
	key := bigToHash(loc)
	val := bigToHash(stack.Back(1))

	var current, newVal [32]byte
	if evm.StateDB != nil {
		c := evm.StateDB.GetState(contract.Address, key)
		copy(current[:], c[:])
	}
	copy(newVal[:], val[:])

	gas, refund := SstoreGas(current, newVal)
	if refund > 0 && evm.StateDB != nil {
		evm.StateDB.AddRefund(uint64(refund))
	}
	return gas, nil
}

// gasSelfdestruct charges CreateBySelfdestructGas when the beneficiary is a
// previously untouched account receiving a non-zero balance, and schedules
// the classic 24000 refund the first time a given contract self-destructs
// within a transaction.
func gasSelfdestruct(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	var gas uint64
	addr := types.BytesToAddress(stack.Back(0).Bytes())
	if evm.StateDB != nil && !evm.StateDB.Exist(addr) && evm.StateDB.GetBalance(contract.Address).Sign() != 0 {
		gas = CreateBySelfdestructGas
	}
	if evm.StateDB != nil && !evm.StateDB.HasSelfDestructed(contract.Address) {
		evm.StateDB.AddRefund(SelfdestructRefund)
	}
	return gas, nil
}

// gasCreate charges memory expansion plus, under Shanghai only, EIP-3860's
// per-word init code gas.
func gasCreate(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	if !evm.forkRules.IsShanghai {
		return memGas, nil
	}
	size := stack.Back(2).Uint64()
	return safeAdd(memGas, safeMul(InitCodeWordGas, toWordSize(size))), nil
}

// gasCreate2 additionally charges the keccak hashing cost for the init code.
func gasCreate2(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	size := stack.Back(2).Uint64()
	words := toWordSize(size)
	gas := safeAdd(memGas, safeMul(GasKeccak256Word, words))
	if evm.forkRules.IsShanghai {
		gas = safeAdd(gas, safeMul(InitCodeWordGas, words))
	}
	return gas, nil
}

// --- CALL-family dynamic gas: Frontier base cost (40) ---
//
// Pre-Homestead, a CALL-family opcode may forward its entire remaining gas;
// there is no 63/64 cap yet. These functions still populate
// evm.callGasTemp (capped only by what the contract actually has left) so
// opCall et al. can read forwarded gas uniformly across all three forks.

func gasCallFrontier(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	gas, err := gasCallCommon(evm, contract, stack, mem, requestedMemSize, CallGasFrontier, true)
	if err != nil {
		return 0, err
	}
	evm.callGasTemp = forwardGasUncapped(contract.Gas-gas, stack.Back(0).Uint64())
	return gas, nil
}

func gasCallCodeFrontier(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	gas, err := gasCallCommon(evm, contract, stack, mem, requestedMemSize, CallGasFrontier, false)
	if err != nil {
		return 0, err
	}
	evm.callGasTemp = forwardGasUncapped(contract.Gas-gas, stack.Back(0).Uint64())
	return gas, nil
}

func gasDelegateCallFrontier(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	gas := safeAdd(CallGasFrontier, memGas)
	evm.callGasTemp = forwardGasUncapped(contract.Gas-gas, stack.Back(0).Uint64())
	return gas, nil
}

func gasStaticCallFrontier(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	gas := safeAdd(CallGasFrontier, memGas)
	evm.callGasTemp = forwardGasUncapped(contract.Gas-gas, stack.Back(0).Uint64())
	return gas, nil
}

// forwardGasUncapped returns the gas a pre-Homestead CALL-family opcode
// forwards: the requested amount, capped only by what is actually available.
func forwardGasUncapped(availableGas, requestedGas uint64) uint64 {
	if requestedGas > availableGas {
		return availableGas
	}
	return requestedGas
}

// --- CALL-family dynamic gas: Homestead base cost (700, folding EIP-150) ---
//
// Homestead (folding the Tangerine Whistle / EIP-150 repricing, per this
// system's three-fork model) is also where the 63/64 gas-forwarding cap
// first applies: after charging this opcode's own cost, whatever remains of
// contract.Gas is capped at all-but-one-64th before the requested amount is
// honored, and the result is stashed in evm.callGasTemp for opCall et al. to
// read instead of the raw stack operand.

func gasCallHomestead(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	gas, err := gasCallCommon(evm, contract, stack, mem, requestedMemSize, CallGasHomestead, true)
	if err != nil {
		return 0, err
	}
	evm.callGasTemp = CallGas(contract.Gas-gas, stack.Back(0).Uint64())
	return gas, nil
}

func gasCallCodeHomestead(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	gas, err := gasCallCommon(evm, contract, stack, mem, requestedMemSize, CallGasHomestead, false)
	if err != nil {
		return 0, err
	}
	evm.callGasTemp = CallGas(contract.Gas-gas, stack.Back(0).Uint64())
	return gas, nil
}

func gasDelegateCallHomestead(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	gas := safeAdd(CallGasHomestead, memGas)
	evm.callGasTemp = CallGas(contract.Gas-gas, stack.Back(0).Uint64())
	return gas, nil
}

func gasStaticCallHomestead(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize uint64) (uint64, error) {
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	gas := safeAdd(CallGasHomestead, memGas)
	evm.callGasTemp = CallGas(contract.Gas-gas, stack.Back(0).Uint64())
	return gas, nil
}

// gasCallCommon computes the shared CALL/CALLCODE dynamic gas: base cost +
// value-transfer surcharge (+ new-account surcharge for CALL only) + memory
// expansion. Stack layout: gas, addr, value, argsOffset, argsLength,
// retOffset, retLength.
func gasCallCommon(evm *EVM, contract *Contract, stack *Stack, mem *Memory, requestedMemSize, baseCost uint64, chargeNewAccount bool) (uint64, error) {
	gas := baseCost
	transfersValue := stack.Back(2).Sign() != 0
	if transfersValue {
		gas = safeAdd(gas, CallValueTransferGas)
		if chargeNewAccount && evm.StateDB != nil {
			addr := types.BytesToAddress(stack.Back(1).Bytes())
			if !evm.StateDB.Exist(addr) {
				gas = safeAdd(gas, CallNewAccountGas)
			}
		}
	}
	memGas, err := gasMemExpansion(evm, contract, stack, mem, requestedMemSize)
	if err != nil {
		return 0, err
	}
	return safeAdd(gas, memGas), nil
}
