package vm

import (
	"math/big"

	"github.com/atahabilder1/SPECTRE/internal/types"
)

// fakeStateDB is a minimal in-memory StateDB used to exercise EVM.Call,
// EVM.Create, and EVM.Create2 without depending on the state package, which
// itself imports vm (a real MemoryStateDB would create an import cycle).
type fakeStateDB struct {
	balances map[types.Address]*big.Int
	nonces   map[types.Address]uint64
	codes    map[types.Address][]byte
	storage  map[types.Address]map[types.Hash]types.Hash
	snapshots []fakeStateSnapshot
}

type fakeStateSnapshot struct {
	balances map[types.Address]*big.Int
	nonces   map[types.Address]uint64
	codes    map[types.Address][]byte
}

func newFakeStateDB() *fakeStateDB {
	return &fakeStateDB{
		balances: make(map[types.Address]*big.Int),
		nonces:   make(map[types.Address]uint64),
		codes:    make(map[types.Address][]byte),
		storage:  make(map[types.Address]map[types.Hash]types.Hash),
	}
}

func (s *fakeStateDB) CreateAccount(addr types.Address) {
	if _, ok := s.balances[addr]; !ok {
		s.balances[addr] = big.NewInt(0)
	}
}

func (s *fakeStateDB) GetBalance(addr types.Address) *big.Int {
	if b, ok := s.balances[addr]; ok {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

func (s *fakeStateDB) AddBalance(addr types.Address, amount *big.Int) {
	s.balances[addr] = new(big.Int).Add(s.GetBalance(addr), amount)
}

func (s *fakeStateDB) SubBalance(addr types.Address, amount *big.Int) {
	s.balances[addr] = new(big.Int).Sub(s.GetBalance(addr), amount)
}

func (s *fakeStateDB) GetNonce(addr types.Address) uint64 { return s.nonces[addr] }
func (s *fakeStateDB) SetNonce(addr types.Address, nonce uint64) { s.nonces[addr] = nonce }
func (s *fakeStateDB) GetCode(addr types.Address) []byte { return s.codes[addr] }
func (s *fakeStateDB) SetCode(addr types.Address, code []byte) { s.codes[addr] = code }

func (s *fakeStateDB) GetCodeHash(addr types.Address) types.Hash {
	code := s.codes[addr]
	if len(code) == 0 {
		return types.EmptyCodeHash
	}
	return types.Hash{1} // non-empty sentinel; exact hash value is irrelevant to these tests
}

func (s *fakeStateDB) GetCodeSize(addr types.Address) int { return len(s.codes[addr]) }

func (s *fakeStateDB) GetState(addr types.Address, key types.Hash) types.Hash {
	if m, ok := s.storage[addr]; ok {
		return m[key]
	}
	return types.Hash{}
}

func (s *fakeStateDB) SetState(addr types.Address, key, value types.Hash) {
	if s.storage[addr] == nil {
		s.storage[addr] = make(map[types.Hash]types.Hash)
	}
	s.storage[addr][key] = value
}

func (s *fakeStateDB) GetCommittedState(addr types.Address, key types.Hash) types.Hash {
	return s.GetState(addr, key)
}

func (s *fakeStateDB) SelfDestruct(addr types.Address)             {}
func (s *fakeStateDB) HasSelfDestructed(addr types.Address) bool   { return false }
func (s *fakeStateDB) Exist(addr types.Address) bool               { _, ok := s.balances[addr]; return ok }
func (s *fakeStateDB) Empty(addr types.Address) bool                { return false }

func (s *fakeStateDB) Snapshot() int {
	snap := fakeStateSnapshot{
		balances: make(map[types.Address]*big.Int, len(s.balances)),
		nonces:   make(map[types.Address]uint64, len(s.nonces)),
		codes:    make(map[types.Address][]byte, len(s.codes)),
	}
	for k, v := range s.balances {
		snap.balances[k] = new(big.Int).Set(v)
	}
	for k, v := range s.nonces {
		snap.nonces[k] = v
	}
	for k, v := range s.codes {
		snap.codes[k] = v
	}
	s.snapshots = append(s.snapshots, snap)
	return len(s.snapshots) - 1
}

func (s *fakeStateDB) RevertToSnapshot(id int) {
	snap := s.snapshots[id]
	s.balances = snap.balances
	s.nonces = snap.nonces
	s.codes = snap.codes
	s.snapshots = s.snapshots[:id]
}

func (s *fakeStateDB) AddLog(log *types.Log)       {}
func (s *fakeStateDB) AddRefund(gas uint64)        {}
func (s *fakeStateDB) SubRefund(gas uint64)        {}
func (s *fakeStateDB) GetRefund() uint64           { return 0 }
func (s *fakeStateDB) Finalize()                   {}
