package core

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/atahabilder1/SPECTRE/internal/types"
	"github.com/atahabilder1/SPECTRE/internal/vm"
)

// Intrinsic gas constants (§4.7). These are charged before any bytecode
// runs and are distinct from the per-opcode costs in package vm.
const (
	TxGas                 uint64 = 21000
	TxDataZeroGas         uint64 = 4
	TxDataNonZeroGas      uint64 = 16
	TxGasContractCreation uint64 = 32000
)

var (
	ErrNonceMismatch        = errors.New("nonce mismatch")
	ErrInsufficientFunds    = errors.New("insufficient balance for gas * price + value")
	ErrIntrinsicGasTooLow   = errors.New("intrinsic gas exceeds gas limit")
	ErrGasLimitExceedsBlock = errors.New("gas limit exceeds block gas limit")
)

// IntrinsicGas computes the gas charged before bytecode execution: a flat
// base plus a per-byte calldata cost plus, for contract creation, a flat
// surcharge and (Shanghai only) a per-word initcode surcharge mirroring
// EIP-3860's dynamic CREATE gas.
func IntrinsicGas(tx *types.Transaction, isShanghai bool) uint64 {
	gas := TxGas
	if tx.IsCreation() {
		gas += TxGasContractCreation
	}
	for _, b := range tx.Data {
		if b == 0 {
			gas += TxDataZeroGas
		} else {
			gas += TxDataNonZeroGas
		}
	}
	if isShanghai && tx.IsCreation() {
		words := (uint64(len(tx.Data)) + 31) / 32
		gas += words * vm.InitCodeWordGas
	}
	return gas
}

// ValidateTransaction checks the preamble conditions of §4.7 step 1. Gas
// price/limit*price overflow is not guarded against beyond big.Int's
// natural range; signature validity is assumed already established by the
// caller (recovery is an external collaborator, per the design).
func ValidateTransaction(tx *types.Transaction, statedb vm.StateDB, header *types.Header, isShanghai bool) error {
	stateNonce := statedb.GetNonce(tx.Sender)
	if tx.Nonce != stateNonce {
		return fmt.Errorf("%w: tx %d, state %d", ErrNonceMismatch, tx.Nonce, stateNonce)
	}

	if tx.GasLimit > header.GasLimit {
		return fmt.Errorf("%w: tx gas %d, block limit %d", ErrGasLimitExceedsBlock, tx.GasLimit, header.GasLimit)
	}

	igas := IntrinsicGas(tx, isShanghai)
	if tx.GasLimit < igas {
		return fmt.Errorf("%w: have %d, want %d", ErrIntrinsicGasTooLow, tx.GasLimit, igas)
	}

	cost := upfrontCost(tx)
	balance := statedb.GetBalance(tx.Sender)
	if balance.Cmp(cost) < 0 {
		return fmt.Errorf("%w: have %s, want %s", ErrInsufficientFunds, balance, cost)
	}

	return nil
}

// upfrontCost is the maximum a transaction can debit from the sender:
// gas_limit*gas_price + value.
func upfrontCost(tx *types.Transaction) *big.Int {
	cost := new(big.Int).Mul(tx.GasPrice, new(big.Int).SetUint64(tx.GasLimit))
	if tx.Value != nil {
		cost.Add(cost, tx.Value)
	}
	return cost
}

// ExecutionResult is the outcome of applying one transaction (§3
// ExecutionResult, adapted to the simplified transaction model of C7).
type ExecutionResult struct {
	Success        bool
	GasUsed        uint64
	GasRefunded    uint64
	ReturnData     []byte
	Logs           []*types.Log
	Err            error
	CreatedAddress *types.Address
}

// ApplyTransaction runs the top-level state transition of §4.7: debits
// intrinsic cost, runs the call or creation, applies the capped refund, and
// settles gas payments between sender and coinbase. evm must already carry
// a StateDB and the Header's block context.
func ApplyTransaction(evm *vm.EVM, config *ChainConfig, header *types.Header, tx *types.Transaction) (*ExecutionResult, error) {
	statedb := evm.StateDB
	if statedb == nil {
		return nil, vm.ErrNoStateDB
	}

	isShanghai := evm.GetForkRules().IsShanghai

	if err := ValidateTransaction(tx, statedb, header, isShanghai); err != nil {
		return nil, err
	}

	// Step 2: debit gas_limit*gas_price, increment nonce.
	gasCost := new(big.Int).Mul(tx.GasPrice, new(big.Int).SetUint64(tx.GasLimit))
	statedb.SubBalance(tx.Sender, gasCost)
	statedb.SetNonce(tx.Sender, tx.Nonce+1)

	igas := IntrinsicGas(tx, isShanghai)
	gasAvailable := tx.GasLimit - igas

	value := tx.Value
	if value == nil {
		value = new(big.Int)
	}

	var (
		ret            []byte
		leftOverGas    uint64
		vmErr          error
		createdAddress *types.Address
	)
	if tx.IsCreation() {
		var addr types.Address
		ret, addr, leftOverGas, vmErr = evm.Create(tx.Sender, tx.Data, gasAvailable, value)
		if vmErr == nil {
			createdAddress = &addr
		}
	} else {
		ret, leftOverGas, vmErr = evm.Call(tx.Sender, *tx.To, tx.Data, gasAvailable, value)
	}

	gasUsed := igas + (gasAvailable - leftOverGas)

	// Step 5: apply the capped refund.
	refund := statedb.GetRefund()
	refundCap := gasUsed / vm.RefundQuotient
	if refund > refundCap {
		refund = refundCap
	}
	gasUsed -= refund
	finalLeftOver := tx.GasLimit - gasUsed

	statedb.AddBalance(tx.Sender, new(big.Int).Mul(tx.GasPrice, new(big.Int).SetUint64(finalLeftOver)))
	statedb.AddBalance(header.Coinbase, new(big.Int).Mul(tx.GasPrice, new(big.Int).SetUint64(gasUsed)))

	// Step 6: zero out (delete) accounts flagged for self-destruct. Runs after
	// every transaction; on a failed creation/call the interpreter has already
	// reverted to the pre-call snapshot, which clears those flags, so nothing
	// is deleted then.
	statedb.Finalize()

	result := &ExecutionResult{
		Success:        vmErr == nil,
		GasUsed:        gasUsed,
		GasRefunded:    refund,
		ReturnData:     ret,
		Err:            vmErr,
		CreatedAddress: createdAddress,
	}
	return result, nil
}
