// Package diff implements the differential execution harness (§4.9): it
// runs one candidate program under two fork configurations against
// identical state, classifies the first point of disagreement, and
// distinguishes expected (fork-rule-explained) divergences from
// unexpected ones.
package diff

import (
	"math/big"

	"github.com/atahabilder1/SPECTRE/internal/core"
	"github.com/atahabilder1/SPECTRE/internal/state"
	"github.com/atahabilder1/SPECTRE/internal/types"
	"github.com/atahabilder1/SPECTRE/internal/vm"
)

// deployerAddr and contractAddr are the fixed addresses of the disposable
// accounts used for every differential run (§4.9 step 1: "a disposable
// deployer account holding code as deployed bytecode").
var (
	deployerAddr = types.HexToAddress("0x00000000000000000000000000000000000001")
	contractAddr = types.HexToAddress("0x00000000000000000000000000000000000002")
)

// Classification names the category of the first observed disagreement.
type Classification int

const (
	NoDivergence Classification = iota
	SuccessMismatch
	ReturnDataMismatch
	GasMismatch
	LogsMismatch
	StateMismatch
)

func (c Classification) String() string {
	switch c {
	case NoDivergence:
		return "NoDivergence"
	case SuccessMismatch:
		return "SuccessMismatch"
	case ReturnDataMismatch:
		return "ReturnDataMismatch"
	case GasMismatch:
		return "GasMismatch"
	case LogsMismatch:
		return "LogsMismatch"
	case StateMismatch:
		return "StateMismatch"
	default:
		return "Unknown"
	}
}

// ExecResult is one fork's observed outcome of running a candidate program.
type ExecResult struct {
	Success    bool
	GasUsed    uint64
	ReturnData []byte
	Logs       []*types.Log
	PostState  state.AccountSnapshot
}

// Divergence describes a classified disagreement between two fork runs.
type Divergence struct {
	ForkA, ForkB   core.Fork
	ResultA, ResultB ExecResult
	Classification Classification
	Expected       bool
	Rule           string // the expected-divergence rule that explains it, if any
}

// Run builds a minimal environment, deploys code to a disposable account,
// and calls it under forkA and forkB with identical initial state and gas,
// per §4.9 steps 1-2.
func Run(code []byte, gasLimit uint64, forkA, forkB core.Fork) (*Divergence, error) {
	resA, err := execute(code, gasLimit, forkA)
	if err != nil {
		return nil, err
	}
	resB, err := execute(code, gasLimit, forkB)
	if err != nil {
		return nil, err
	}

	d := &Divergence{
		ForkA: forkA, ForkB: forkB,
		ResultA: resA, ResultB: resB,
	}
	d.Classification = classify(resA, resB)
	if d.Classification != NoDivergence {
		d.Expected, d.Rule = ExpectedDivergence(forkA, forkB, code, d.Classification)
	}
	return d, nil
}

// classify compares two results and reports the first category of
// disagreement, in the priority order given in §4.9 step 4.
func classify(a, b ExecResult) Classification {
	if a.Success != b.Success {
		return SuccessMismatch
	}
	if string(a.ReturnData) != string(b.ReturnData) {
		return ReturnDataMismatch
	}
	if a.GasUsed != b.GasUsed {
		return GasMismatch
	}
	if !logsEqual(a.Logs, b.Logs) {
		return LogsMismatch
	}
	if !stateEqual(a.PostState, b.PostState) {
		return StateMismatch
	}
	return NoDivergence
}

func logsEqual(a, b []*types.Log) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Address != b[i].Address || string(a[i].Data) != string(b[i].Data) || len(a[i].Topics) != len(b[i].Topics) {
			return false
		}
		for j := range a[i].Topics {
			if a[i].Topics[j] != b[i].Topics[j] {
				return false
			}
		}
	}
	return true
}

func stateEqual(a, b state.AccountSnapshot) bool {
	if a.Exists != b.Exists {
		return false
	}
	if !a.Exists {
		return true
	}
	if a.Nonce != b.Nonce {
		return false
	}
	if a.Balance.Cmp(b.Balance) != 0 {
		return false
	}
	if string(a.Code) != string(b.Code) {
		return false
	}
	if len(a.Storage) != len(b.Storage) {
		return false
	}
	for k, v := range a.Storage {
		if bv, ok := b.Storage[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// execute runs code as the deployed bytecode of contractAddr under the
// given fork, with a fresh, independent world state.
func execute(code []byte, gasLimit uint64, fork core.Fork) (ExecResult, error) {
	statedb := state.NewMemoryStateDB()
	statedb.CreateAccount(deployerAddr)
	statedb.AddBalance(deployerAddr, new(big.Int).Lsh(big.NewInt(1), 64))
	statedb.CreateAccount(contractAddr)
	statedb.SetCode(contractAddr, code)
	statedb.FinalizePreState()

	txHash := types.Hash{}
	statedb.SetTxContext(txHash, 0)

	blockCtx := vm.BlockContext{
		GetHash:     func(uint64) types.Hash { return types.Hash{} },
		BlockNumber: big.NewInt(1),
		Time:        1,
		Coinbase:    types.Address{},
		GasLimit:    gasLimit,
		BaseFee:     big.NewInt(0),
	}
	txCtx := vm.TxContext{
		Origin:   deployerAddr,
		GasPrice: big.NewInt(0),
	}
	evm := vm.NewEVMWithState(blockCtx, txCtx, vm.Config{}, statedb)
	evm.SetForkRules(fork.Rules())

	ret, gasLeft, err := evm.Call(deployerAddr, contractAddr, nil, gasLimit, new(big.Int))

	return ExecResult{
		Success:    err == nil,
		GasUsed:    gasLimit - gasLeft,
		ReturnData: ret,
		Logs:       statedb.GetLogs(txHash),
		PostState:  statedb.DumpAccount(contractAddr),
	}, nil
}
