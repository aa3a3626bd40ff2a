package types

import "math/big"

// Transaction is the input to state transition: a value transfer, a message
// call, or a contract creation (To == nil). Signature recovery happens
// outside this package; Sender is supplied already-recovered.
type Transaction struct {
	Sender   Address
	To       *Address // nil for contract creation
	Value    *big.Int
	Data     []byte
	GasLimit uint64
	GasPrice *big.Int
	Nonce    uint64
}

// IsCreation reports whether this transaction deploys a new contract.
func (tx *Transaction) IsCreation() bool {
	return tx.To == nil
}

// Header is the block-level immutable context a transaction executes
// against.
type Header struct {
	Number     uint64
	Timestamp  uint64
	Coinbase   Address
	Difficulty *big.Int
	GasLimit   uint64
	BaseFee    *big.Int
	ChainID    *big.Int

	// BlockHashes maps recent block numbers to their hashes, for the BLOCKHASH
	// opcode. Only the 256 most recent ancestors are meaningful.
	BlockHashes map[uint64]Hash
}

// GetHash looks up a historical block hash, returning the zero hash if the
// block is unknown or too old to be in range.
func (h *Header) GetHash(number uint64) Hash {
	if h.BlockHashes == nil {
		return Hash{}
	}
	return h.BlockHashes[number]
}
