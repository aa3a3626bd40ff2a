package vm

import (
	"math"
	"math/big"
	"testing"
)

func TestMemoryGasCostQuadratic(t *testing.T) {
	// 1 word: 3*1 + 1*1/512 = 3
	if got := MemoryGasCost(32); got != 3 {
		t.Errorf("MemoryGasCost(32) = %d, want 3", got)
	}
	// 2 words: 3*2 + 2*2/512 = 6
	if got := MemoryGasCost(64); got != 6 {
		t.Errorf("MemoryGasCost(64) = %d, want 6", got)
	}
	if got := MemoryGasCost(0); got != 0 {
		t.Errorf("MemoryGasCost(0) = %d, want 0", got)
	}
}

func TestMemoryExpansionGasIsIncremental(t *testing.T) {
	full := MemoryGasCost(128)
	half := MemoryGasCost(64)
	if got := MemoryExpansionGas(64, 128); got != full-half {
		t.Errorf("MemoryExpansionGas(64,128) = %d, want %d", got, full-half)
	}
	if got := MemoryExpansionGas(128, 64); got != 0 {
		t.Errorf("MemoryExpansionGas should be 0 when shrinking, got %d", got)
	}
}

func TestCallGasAppliesSixtyThreeSixtyFourthsRule(t *testing.T) {
	available := uint64(6400)
	maxForwardable := available - available/CallGasFraction // 6300
	if got := CallGas(available, 0); got != 0 {
		t.Errorf("CallGas with requested=0 = %d, want 0", got)
	}
	if got := CallGas(available, maxForwardable+1000); got != maxForwardable {
		t.Errorf("CallGas should cap an over-request at %d, got %d", maxForwardable, got)
	}
	if got := CallGas(available, 100); got != 100 {
		t.Errorf("CallGas should honor an in-bounds request, got %d want 100", got)
	}
}

func TestSstoreGasSetResetClear(t *testing.T) {
	var zero, nonzeroA, nonzeroB [32]byte
	nonzeroA[31] = 1
	nonzeroB[31] = 2

	if gas, refund := SstoreGas(zero, nonzeroA); gas != GasSstoreSet || refund != 0 {
		t.Errorf("zero->nonzero = (%d,%d), want (%d,0)", gas, refund, GasSstoreSet)
	}
	if gas, refund := SstoreGas(nonzeroA, zero); gas != GasSstoreReset || refund != int64(SstoreClearsRefund) {
		t.Errorf("nonzero->zero = (%d,%d), want (%d,%d)", gas, refund, GasSstoreReset, SstoreClearsRefund)
	}
	if gas, refund := SstoreGas(nonzeroA, nonzeroB); gas != GasSstoreReset || refund != 0 {
		t.Errorf("nonzero->nonzero = (%d,%d), want (%d,0)", gas, refund, GasSstoreReset)
	}
}

func TestLogGasAccountsForTopicsAndData(t *testing.T) {
	got := LogGas(2, 10)
	want := GasLog + 2*GasLogTopic + 10*GasLogData
	if got != want {
		t.Errorf("LogGas(2,10) = %d, want %d", got, want)
	}
}

func TestSha3GasRoundsUpToWholeWords(t *testing.T) {
	got := Sha3Gas(33) // 2 words
	want := GasKeccak256 + 2*GasKeccak256Word
	if got != want {
		t.Errorf("Sha3Gas(33) = %d, want %d", got, want)
	}
}

func TestExpGasZeroExponentIsFlat(t *testing.T) {
	if got := ExpGas(big.NewInt(0)); got != GasSlowStep {
		t.Errorf("ExpGas(0) = %d, want %d", got, GasSlowStep)
	}
}

func TestExpGasScalesWithExponentByteLength(t *testing.T) {
	// 256 needs 2 bytes to represent.
	got := ExpGas(big.NewInt(256))
	want := GasSlowStep + 50*2
	if got != want {
		t.Errorf("ExpGas(256) = %d, want %d", got, want)
	}
}

func TestSafeAddSaturatesOnOverflow(t *testing.T) {
	if got := safeAdd(math.MaxUint64, 1); got != math.MaxUint64 {
		t.Errorf("safeAdd overflow = %d, want MaxUint64", got)
	}
}

func TestSafeMulSaturatesOnOverflow(t *testing.T) {
	if got := safeMul(math.MaxUint64, 2); got != math.MaxUint64 {
		t.Errorf("safeMul overflow = %d, want MaxUint64", got)
	}
	if got := safeMul(0, math.MaxUint64); got != 0 {
		t.Errorf("safeMul(0,x) = %d, want 0", got)
	}
}
