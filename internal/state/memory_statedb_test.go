package state

import (
	"math/big"
	"testing"

	"github.com/atahabilder1/SPECTRE/internal/types"
)

func TestSnapshotRevertRestoresBalanceAndNonce(t *testing.T) {
	s := NewMemoryStateDB()
	addr := types.Address{1}
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(100))
	s.SetNonce(addr, 1)

	snap := s.Snapshot()
	s.AddBalance(addr, big.NewInt(900))
	s.SetNonce(addr, 2)

	s.RevertToSnapshot(snap)

	if got := s.GetBalance(addr); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("balance after revert = %s, want 100", got)
	}
	if got := s.GetNonce(addr); got != 1 {
		t.Fatalf("nonce after revert = %d, want 1", got)
	}
}

func TestFinalizeDeletesSelfDestructedAccounts(t *testing.T) {
	s := NewMemoryStateDB()
	alive := types.Address{1}
	dead := types.Address{2}
	s.CreateAccount(alive)
	s.CreateAccount(dead)
	s.SelfDestruct(dead)

	s.Finalize()

	if !s.Exist(alive) {
		t.Fatal("expected untouched account to survive Finalize")
	}
	if s.Exist(dead) {
		t.Fatal("expected self-destructed account to be deleted by Finalize")
	}
}

func TestDumpAccountProjectsNonzeroStorageOnly(t *testing.T) {
	s := NewMemoryStateDB()
	addr := types.Address{3}
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(42))
	s.SetNonce(addr, 7)
	s.SetCode(addr, []byte{0x60, 0x00})

	keyA := types.HexToHash("0x01")
	keyB := types.HexToHash("0x02")
	s.SetState(addr, keyA, types.HexToHash("0x09"))
	s.SetState(addr, keyB, types.Hash{}) // zero value, must not appear in the dump

	snap := s.DumpAccount(addr)
	if !snap.Exists {
		t.Fatal("expected account to exist")
	}
	if snap.Nonce != 7 {
		t.Fatalf("nonce = %d, want 7", snap.Nonce)
	}
	if snap.Balance.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("balance = %s, want 42", snap.Balance)
	}
	if len(snap.Code) != 2 {
		t.Fatalf("code length = %d, want 2", len(snap.Code))
	}
	if len(snap.Storage) != 1 {
		t.Fatalf("expected 1 nonzero storage slot, got %d", len(snap.Storage))
	}
	if got, ok := snap.Storage[keyA]; !ok || got != types.HexToHash("0x09") {
		t.Fatalf("storage[keyA] = %v, want 0x09", got)
	}
	if _, ok := snap.Storage[keyB]; ok {
		t.Fatal("zero-valued storage slot should not appear in the dump")
	}
}

func TestDumpAccountNonexistent(t *testing.T) {
	s := NewMemoryStateDB()
	snap := s.DumpAccount(types.Address{9})
	if snap.Exists {
		t.Fatal("expected Exists=false for an account never created")
	}
}
