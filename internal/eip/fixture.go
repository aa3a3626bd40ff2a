package eip

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/atahabilder1/SPECTRE/internal/types"
)

// NativeFixture is the native serialization of §6: "Top-level object
// {eip_number, eip_title, generated_at, test_cases: [...]}".
type NativeFixture struct {
	EIPNumber   int              `json:"eip_number"`
	EIPTitle    string           `json:"eip_title"`
	GeneratedAt string           `json:"generated_at"`
	TestCases   []nativeTestCase `json:"test_cases"`
}

type nativeTestCase struct {
	Name            string  `json:"name"`
	Strategy        string  `json:"strategy"`
	Bytecode        string  `json:"bytecode"`
	GasLimit        uint64  `json:"gas_limit"`
	ExpectedSuccess bool    `json:"expected_success"`
	ExpectedGasUsed *uint64 `json:"expected_gas_used"`
	Description     string  `json:"description"`
}

// BuildNativeFixture converts an entry and its generated test cases into
// the native fixture document. generatedAt is passed in rather than
// computed here, since wall-clock time is an environmental concern of the
// caller, not the generator.
func BuildNativeFixture(entry Entry, cases []TestCase, generatedAt string) NativeFixture {
	nf := NativeFixture{
		EIPNumber:   entry.Number,
		EIPTitle:    entry.Title,
		GeneratedAt: generatedAt,
		TestCases:   make([]nativeTestCase, len(cases)),
	}
	for i, c := range cases {
		nf.TestCases[i] = nativeTestCase{
			Name:            c.Name,
			Strategy:        string(c.Strategy),
			Bytecode:        hex.EncodeToString(c.Bytecode),
			GasLimit:        c.GasLimit,
			ExpectedSuccess: c.ExpectedSuccess,
			ExpectedGasUsed: c.ExpectedGasUsed,
			Description:     c.Description,
		}
	}
	return nf
}

// MarshalNativeFixture renders the native fixture as UTF-8 JSON.
func MarshalNativeFixture(nf NativeFixture) ([]byte, error) {
	return json.MarshalIndent(nf, "", "  ")
}

// ecosystemAccount mirrors the ecosystem-compatible `pre` entry shape:
// {balance, code, nonce, storage}, all hex-string encoded.
type ecosystemAccount struct {
	Balance string            `json:"balance"`
	Code    string            `json:"code"`
	Nonce   string            `json:"nonce"`
	Storage map[string]string `json:"storage"`
}

type ecosystemEnv struct {
	CurrentNumber   string `json:"currentNumber"`
	CurrentGasLimit string `json:"currentGasLimit"`
	CurrentTimestamp string `json:"currentTimestamp"`
}

type ecosystemTransaction struct {
	To       string `json:"to"`
	GasLimit string `json:"gasLimit"`
	Data     string `json:"data"`
}

type ecosystemCase struct {
	Env         ecosystemEnv         `json:"env"`
	Pre         map[string]ecosystemAccount `json:"pre"`
	Transaction ecosystemTransaction `json:"transaction"`
}

// ecosystemDeployer and ecosystemContract mirror the disposable accounts the
// differential executor uses (package diff), so ecosystem-format fixtures
// exercise the same deployment shape.
var (
	ecosystemDeployer = types.HexToAddress("0x00000000000000000000000000000000000001")
	ecosystemContract = types.HexToAddress("0x00000000000000000000000000000000000002")
)

// BuildEcosystemFixture converts test cases into the Ethereum-ecosystem-
// compatible document of §6: {<name>: {env, pre, transaction}, ...}.
func BuildEcosystemFixture(cases []TestCase) map[string]ecosystemCase {
	out := make(map[string]ecosystemCase, len(cases))
	for _, c := range cases {
		to := ecosystemContract
		out[c.Name] = ecosystemCase{
			Env: ecosystemEnv{
				CurrentNumber:    "0x1",
				CurrentGasLimit:  hexUint(30_000_000),
				CurrentTimestamp: "0x1",
			},
			Pre: map[string]ecosystemAccount{
				ecosystemDeployer.Hex(): {
					Balance: hexBig(new(big.Int).Lsh(big.NewInt(1), 64)),
					Code:    "0x",
					Nonce:   "0x0",
					Storage: map[string]string{},
				},
				to.Hex(): {
					Balance: "0x0",
					Code:    "0x" + hex.EncodeToString(c.Bytecode),
					Nonce:   "0x0",
					Storage: map[string]string{},
				},
			},
			Transaction: ecosystemTransaction{
				To:       to.Hex(),
				GasLimit: hexUint(c.GasLimit),
				Data:     "0x",
			},
		}
	}
	return out
}

// MarshalEcosystemFixture renders the ecosystem-compatible fixture as
// UTF-8 JSON.
func MarshalEcosystemFixture(doc map[string]ecosystemCase) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func hexUint(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}

func hexBig(v *big.Int) string {
	return fmt.Sprintf("0x%x", v)
}
