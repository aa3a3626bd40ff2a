package vm

import (
	"math/big"
	"testing"
)

func TestStackPushPop(t *testing.T) {
	st := NewStack()
	if err := st.Push(big.NewInt(42)); err != nil {
		t.Fatalf("Push(42) error: %v", err)
	}
	if err := st.Push(big.NewInt(99)); err != nil {
		t.Fatalf("Push(99) error: %v", err)
	}

	if st.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", st.Len())
	}

	if val := st.Pop(); val.Int64() != 99 {
		t.Errorf("Pop() = %d, want 99", val.Int64())
	}
	if val := st.Pop(); val.Int64() != 42 {
		t.Errorf("Pop() = %d, want 42", val.Int64())
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0", st.Len())
	}
}

func TestStackOverflow(t *testing.T) {
	st := NewStack()
	for i := 0; i < stackLimit; i++ {
		if err := st.Push(big.NewInt(int64(i))); err != nil {
			t.Fatalf("unexpected error pushing item %d: %v", i, err)
		}
	}
	if err := st.Push(big.NewInt(0)); err == nil {
		t.Fatal("expected stack overflow error at item 1025")
	}
}

func TestStackPeekAndBack(t *testing.T) {
	st := NewStack()
	st.Push(big.NewInt(10))
	st.Push(big.NewInt(20))
	st.Push(big.NewInt(30))

	if st.Peek().Int64() != 30 {
		t.Errorf("Peek() = %d, want 30", st.Peek().Int64())
	}
	if st.PeekN(1).Int64() != 20 {
		t.Errorf("PeekN(1) = %d, want 20", st.PeekN(1).Int64())
	}
	if st.Back(2).Int64() != 10 {
		t.Errorf("Back(2) = %d, want 10", st.Back(2).Int64())
	}
}

func TestStackSwap(t *testing.T) {
	st := NewStack()
	st.Push(big.NewInt(1))
	st.Push(big.NewInt(2))
	st.Push(big.NewInt(3))

	st.Swap(2) // swap top (3) with 3rd from top (1)
	if st.Peek().Int64() != 1 {
		t.Errorf("after Swap(2), top = %d, want 1", st.Peek().Int64())
	}
	if st.PeekN(2).Int64() != 3 {
		t.Errorf("after Swap(2), bottom = %d, want 3", st.PeekN(2).Int64())
	}
}

func TestStackDupIsIndependentCopy(t *testing.T) {
	st := NewStack()
	st.Push(big.NewInt(10))
	st.Push(big.NewInt(20))

	st.Dup(1) // duplicate the top element (20)
	if st.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", st.Len())
	}
	if st.Peek().Int64() != 20 {
		t.Fatalf("top after Dup(1) = %d, want 20", st.Peek().Int64())
	}

	// Mutating the duplicate must not affect the original.
	st.Peek().SetInt64(999)
	if st.PeekN(1).Int64() != 20 {
		t.Errorf("original entry changed to %d after mutating its dup, want 20", st.PeekN(1).Int64())
	}
}

func TestStackData(t *testing.T) {
	st := NewStack()
	st.Push(big.NewInt(1))
	st.Push(big.NewInt(2))

	data := st.Data()
	if len(data) != 2 || data[0].Int64() != 1 || data[1].Int64() != 2 {
		t.Fatalf("Data() = %v, want [1 2] bottom to top", data)
	}
}
