// Package eftest replays a native-format fixture (§6, as emitted by package
// eip) through the interpreter and checks each case's actual outcome
// against its recorded expectation. It is the closing leg of the C10
// pipeline: generate a test vector, then verify the interpreter actually
// produces what the generator claimed it would.
package eftest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/atahabilder1/SPECTRE/internal/core"
	"github.com/atahabilder1/SPECTRE/internal/state"
	"github.com/atahabilder1/SPECTRE/internal/types"
	"github.com/atahabilder1/SPECTRE/internal/vm"
)

// Fixture mirrors the native fixture document written by
// eip.BuildNativeFixture/MarshalNativeFixture.
type Fixture struct {
	EIPNumber   int          `json:"eip_number"`
	EIPTitle    string       `json:"eip_title"`
	GeneratedAt string       `json:"generated_at"`
	TestCases   []CaseVector `json:"test_cases"`
}

// CaseVector is one test_cases[] entry of the native fixture format.
type CaseVector struct {
	Name            string  `json:"name"`
	Strategy        string  `json:"strategy"`
	Bytecode        string  `json:"bytecode"`
	GasLimit        uint64  `json:"gas_limit"`
	ExpectedSuccess bool    `json:"expected_success"`
	ExpectedGasUsed *uint64 `json:"expected_gas_used"`
	Description     string  `json:"description"`
}

// LoadFixture reads and parses a native-format fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// CaseResult is the outcome of replaying one test vector.
type CaseResult struct {
	Name          string
	Fork          core.Fork
	Passed        bool
	ActualSuccess bool
	ActualGasUsed uint64
	Error         error
}

var (
	replayDeployer = types.HexToAddress("0x00000000000000000000000000000000000001")
	replayContract = types.HexToAddress("0x00000000000000000000000000000000000002")
)

// RunCase replays a single test vector under the given fork and reports
// whether the actual outcome matched the recorded expectation.
func RunCase(c CaseVector, fork core.Fork) *CaseResult {
	result := &CaseResult{Name: c.Name, Fork: fork}

	code, err := hex.DecodeString(c.Bytecode)
	if err != nil {
		result.Error = fmt.Errorf("decode bytecode: %w", err)
		return result
	}

	statedb := state.NewMemoryStateDB()
	statedb.CreateAccount(replayDeployer)
	statedb.AddBalance(replayDeployer, new(big.Int).Lsh(big.NewInt(1), 64))
	statedb.CreateAccount(replayContract)
	statedb.SetCode(replayContract, code)
	statedb.FinalizePreState()
	statedb.SetTxContext(types.Hash{}, 0)

	blockCtx := vm.BlockContext{
		GetHash:     func(uint64) types.Hash { return types.Hash{} },
		BlockNumber: big.NewInt(1),
		Time:        1,
		GasLimit:    c.GasLimit,
		BaseFee:     big.NewInt(0),
	}
	txCtx := vm.TxContext{Origin: replayDeployer, GasPrice: big.NewInt(0)}
	evm := vm.NewEVMWithState(blockCtx, txCtx, vm.Config{}, statedb)
	evm.SetForkRules(fork.Rules())

	_, gasLeft, vmErr := evm.Call(replayDeployer, replayContract, nil, c.GasLimit, new(big.Int))

	result.ActualSuccess = vmErr == nil
	result.ActualGasUsed = c.GasLimit - gasLeft

	if result.ActualSuccess != c.ExpectedSuccess {
		result.Error = fmt.Errorf("expected_success=%v, got %v (err=%v)", c.ExpectedSuccess, result.ActualSuccess, vmErr)
		return result
	}
	if c.ExpectedGasUsed != nil && *c.ExpectedGasUsed != result.ActualGasUsed {
		result.Error = fmt.Errorf("expected_gas_used=%d, got %d", *c.ExpectedGasUsed, result.ActualGasUsed)
		return result
	}

	result.Passed = true
	return result
}

// RunFixture replays every case in a fixture under the given fork.
func RunFixture(f *Fixture, fork core.Fork) []*CaseResult {
	results := make([]*CaseResult, len(f.TestCases))
	for i, c := range f.TestCases {
		results[i] = RunCase(c, fork)
	}
	return results
}
