// Package eip implements the EIP catalog and adversarial test-case
// generator (§4.10): a small table of fork-introducing changes, and six
// strategies that turn a catalog entry into concrete EVM test vectors.
package eip

import (
	"github.com/atahabilder1/SPECTRE/internal/core"
	"github.com/atahabilder1/SPECTRE/internal/vm"
)

// Entry is one catalog record: an EIP's number, title, the fork it shipped
// in, any opcodes it added, a human-readable gas-change summary, and free
// text semantic notes.
type Entry struct {
	Number           int
	Title            string
	IntroducedInFork core.Fork
	OpcodesAdded     []vm.OpCode
	GasChanges       string
	SemanticNotes    string
}

// Catalog lists the EIPs this system models, spanning the three supported
// forks. EIP-150's gas repricing is filed under the Homestead entry per the
// source-material convention recorded in DESIGN.md: this spec treats
// "Homestead" as covering the combined Homestead+EIP-150 gas adjustments.
var Catalog = []Entry{
	{
		Number:           2,
		Title:            "Homestead Hard Fork Changes",
		IntroducedInFork: core.Homestead,
		GasChanges:       "CREATE out-of-gas on code deposit now consumes all gas (was: silently leaves code empty)",
		SemanticNotes:    "CREATE semantics diverge from Frontier: insufficient gas for the deposit reverts the whole creation.",
	},
	{
		Number:           7,
		Title:            "DELEGATECALL",
		IntroducedInFork: core.Homestead,
		OpcodesAdded:     []vm.OpCode{vm.DELEGATECALL},
		SemanticNotes:    "Child frame inherits caller's storage context, value, and caller address.",
	},
	{
		Number:           150,
		Title:            "Gas cost changes for IO-heavy operations (Tangerine Whistle)",
		IntroducedInFork: core.Homestead,
		GasChanges:       "SELFDESTRUCT base gas 0 -> 5000; CALL-family base gas 40 -> 700; all-but-one-64th forwarding rule.",
	},
	{
		Number:           3855,
		Title:            "PUSH0 instruction",
		IntroducedInFork: core.Shanghai,
		OpcodesAdded:     []vm.OpCode{vm.PUSH0},
		GasChanges:       "PUSH0 costs G_base (2).",
	},
	{
		Number:           3860,
		Title:            "Limit and meter initcode",
		IntroducedInFork: core.Shanghai,
		GasChanges:       "CREATE/CREATE2 charge 2 gas per 32-byte word of initcode.",
		SemanticNotes:    "Initcode longer than 49152 bytes is rejected outright.",
	},
}

// ByNumber finds a catalog entry by EIP number.
func ByNumber(number int) (Entry, bool) {
	for _, e := range Catalog {
		if e.Number == number {
			return e, true
		}
	}
	return Entry{}, false
}
