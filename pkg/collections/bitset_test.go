package collections

import "testing"

func TestBitset_Basic(t *testing.T) {
	b := NewBitset(100)

	// Slots 0, 50, 99 become non-empty, as if three cells landed on
	// those gain values.
	b.Set(0)
	b.Set(50)
	b.Set(99)

	if !b.Test(0) {
		t.Error("Expected bit 0 to be set")
	}
	if !b.Test(50) {
		t.Error("Expected bit 50 to be set")
	}
	if !b.Test(99) {
		t.Error("Expected bit 99 to be set")
	}
	if b.Test(1) {
		t.Error("Expected bit 1 to be clear")
	}

	if b.Count() != 3 {
		t.Errorf("Expected count 3, got %d", b.Count())
	}

	// Clearing slot 50 mirrors its last cell being moved out.
	b.Clear(50)
	if b.Test(50) {
		t.Error("Expected bit 50 to be clear after Clear")
	}
	if b.Count() != 2 {
		t.Errorf("Expected count 2 after Clear, got %d", b.Count())
	}
}

func TestBitset_Grow(t *testing.T) {
	b := NewBitset(64)

	// A gain value landing past the slot range allocated at
	// construction (e.g. a cell with unusually high pin count).
	b.Set(200)
	if !b.Test(200) {
		t.Error("Expected bit 200 to be set after grow")
	}
	if b.Size() < 200 {
		t.Errorf("Expected size >= 200, got %d", b.Size())
	}
}

func TestBitset_ClearAll(t *testing.T) {
	b := NewBitset(100)
	for i := 0; i < 100; i++ {
		b.Set(i)
	}

	// Rebuilding a side's bucket list between passes clears every slot.
	b.ClearAll()
	for i := 0; i < 100; i++ {
		if b.Test(i) {
			t.Errorf("Expected bit %d to be clear after ClearAll", i)
		}
	}
	if b.Count() != 0 {
		t.Errorf("Expected count 0 after ClearAll, got %d", b.Count())
	}
}

func BenchmarkBitset_Set(b *testing.B) {
	bs := NewBitset(1000000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bs.Set(i % 1000000)
	}
}

func BenchmarkBitset_Test(b *testing.B) {
	bs := NewBitset(1000000)
	for i := 0; i < 1000000; i++ {
		if i%2 == 0 {
			bs.Set(i)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bs.Test(i % 1000000)
	}
}
