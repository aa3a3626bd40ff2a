package vm

import (
	"math/big"
	"testing"

	"github.com/atahabilder1/SPECTRE/internal/types"
)

func newCreateTestEVM(rules ForkRules) (*EVM, *fakeStateDB) {
	sdb := newFakeStateDB()
	evm := NewEVMWithState(BlockContext{BlockNumber: big.NewInt(1)}, TxContext{}, Config{}, sdb)
	evm.SetForkRules(rules)
	return evm, sdb
}

// initCodeReturning builds init code that copies a fixed deployed-code
// sequence into memory and returns it: PUSH<n> <runtime code as one word>;
// PUSH1 0; MSTORE; PUSH1 <n>; PUSH1 (32-n); RETURN.
func initCodeReturning(runtime []byte) []byte {
	n := len(runtime)
	word := make([]byte, 32)
	copy(word[32-n:], runtime)
	code := []byte{byte(PUSH32)}
	code = append(code, word...)
	code = append(code, byte(PUSH1), 0, byte(MSTORE))
	code = append(code, byte(PUSH1), byte(n), byte(PUSH1), byte(32-n), byte(RETURN))
	return code
}

func TestCreateDeploysCodeAndSetsNonce(t *testing.T) {
	evm, sdb := newCreateTestEVM(ForkRules{IsHomestead: true})
	caller := types.Address{1}
	sdb.CreateAccount(caller)
	sdb.AddBalance(caller, big.NewInt(1_000_000))

	runtime := []byte{byte(STOP)}
	initCode := initCodeReturning(runtime)

	_, addr, _, err := evm.Create(caller, initCode, 1_000_000, big.NewInt(0))
	if err != nil {
		t.Fatalf("unexpected Create error: %v", err)
	}
	if sdb.GetNonce(caller) != 1 {
		t.Fatalf("caller nonce = %d, want 1 after a single CREATE", sdb.GetNonce(caller))
	}
	deployed := sdb.GetCode(addr)
	if string(deployed) != string(runtime) {
		t.Fatalf("deployed code = %x, want %x", deployed, runtime)
	}
}

func TestCreate2AddressIsDeterministic(t *testing.T) {
	evm, sdb := newCreateTestEVM(ForkRules{IsHomestead: true, IsShanghai: true})
	caller := types.Address{1}
	sdb.CreateAccount(caller)
	sdb.AddBalance(caller, big.NewInt(1_000_000))

	initCode := initCodeReturning([]byte{byte(STOP)})
	salt := big.NewInt(42)

	wantAddr := Create2AddressFromSaltAndCode(caller, salt, initCode)

	_, addr, _, err := evm.Create2(caller, initCode, 1_000_000, big.NewInt(0), salt)
	if err != nil {
		t.Fatalf("unexpected Create2 error: %v", err)
	}
	if addr != wantAddr {
		t.Fatalf("CREATE2 address = %v, want %v (deterministic from caller/salt/initcode hash)", addr, wantAddr)
	}
}

func TestCreateRejectsInitCodeOverShanghaiLimit(t *testing.T) {
	evm, sdb := newCreateTestEVM(ForkRules{IsHomestead: true, IsShanghai: true})
	caller := types.Address{1}
	sdb.CreateAccount(caller)
	sdb.AddBalance(caller, big.NewInt(1_000_000))

	oversized := make([]byte, MaxInitCodeSize+1)
	_, _, gasLeft, err := evm.Create(caller, oversized, 1_000_000, big.NewInt(0))
	if err != ErrCreateInitCodeTooLarge {
		t.Fatalf("err = %v, want ErrCreateInitCodeTooLarge", err)
	}
	if gasLeft != 0 {
		t.Fatalf("gasLeft = %d, want 0 on init code size rejection", gasLeft)
	}
}

func TestCreateInsufficientFundsRevertsAndKeepsNonceIncrement(t *testing.T) {
	evm, sdb := newCreateTestEVM(ForkRules{IsHomestead: true})
	caller := types.Address{1}
	sdb.CreateAccount(caller)
	// Caller has no balance but requests a non-zero endowment.
	_, addr, _, err := evm.Create(caller, []byte{byte(STOP)}, 1_000_000, big.NewInt(500))
	if err != ErrCreateInsufficientFunds {
		t.Fatalf("err = %v, want ErrCreateInsufficientFunds", err)
	}
	if sdb.GetNonce(caller) != 1 {
		t.Fatalf("caller nonce = %d, want 1 (the increment precedes the reverted snapshot)", sdb.GetNonce(caller))
	}
	if sdb.Exist(addr) {
		t.Fatal("the new contract account must not survive the revert")
	}
}

func TestCreateCollisionWithExistingContract(t *testing.T) {
	evm, sdb := newCreateTestEVM(ForkRules{IsHomestead: true})
	caller := types.Address{1}
	sdb.CreateAccount(caller)
	sdb.AddBalance(caller, big.NewInt(1_000_000))

	// Pre-compute the address CREATE would use for nonce 0, and give it code.
	addr := CreateAddressFromNonce(caller, 0)
	sdb.SetCode(addr, []byte{byte(STOP)})

	_, _, _, err := evm.Create(caller, []byte{byte(STOP)}, 1_000_000, big.NewInt(0))
	if err != ErrCreateCollision {
		t.Fatalf("err = %v, want ErrCreateCollision", err)
	}
}

func TestCalcCreateGasChargesInitCodeWordGasAndKeccakForCreate2(t *testing.T) {
	ce := NewCreateExecutor(ForkRules{IsHomestead: true, IsShanghai: true})
	initCode := make([]byte, 64) // exactly 2 words

	createGas := ce.CalcCreateGas(&CreateParams{Kind: CreateKindCreate, InitCode: initCode})
	wantCreate := GasCreate + 2*InitCodeWordGas
	if createGas != wantCreate {
		t.Errorf("CalcCreateGas(CREATE) = %d, want %d", createGas, wantCreate)
	}

	create2Gas := ce.CalcCreateGas(&CreateParams{Kind: CreateKindCreate2, InitCode: initCode})
	wantCreate2 := GasCreate + 2*InitCodeWordGas + 2*GasKeccak256Word
	if create2Gas != wantCreate2 {
		t.Errorf("CalcCreateGas(CREATE2) = %d, want %d", create2Gas, wantCreate2)
	}
}

func TestCalcCodeDepositGasPerByte(t *testing.T) {
	ce := NewCreateExecutor(ForkRules{})
	code := make([]byte, 10)
	if got := ce.CalcCodeDepositGas(code); got != 10*CreateDataGas {
		t.Errorf("CalcCodeDepositGas(10 bytes) = %d, want %d", got, 10*CreateDataGas)
	}
}
