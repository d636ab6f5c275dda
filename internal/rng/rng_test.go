package rng

import "testing"

func TestSeedZeroTreatedAsOne(t *testing.T) {
	a := New(0)
	b := New(1)
	for i := 0; i < 8; i++ {
		av, bv := a.Float64(), b.Float64()
		if av != bv {
			t.Fatalf("draw %d: seed 0 diverged from seed 1: %v != %v", i, av, bv)
		}
	}
}

func TestDeterministicSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		av, bv := a.Float64(), b.Float64()
		if av != bv {
			t.Fatalf("draw %d diverged: %v != %v", i, av, bv)
		}
		if av < 0 || av >= 1 {
			t.Fatalf("draw %d out of range: %v", i, av)
		}
	}
}

func TestSeedResetsState(t *testing.T) {
	s := New(7)
	for i := 0; i < 100; i++ {
		s.Float64()
	}
	s.Seed(7)
	fresh := New(7)
	for i := 0; i < 10; i++ {
		if s.Float64() != fresh.Float64() {
			t.Fatalf("re-seeding did not reset sequence at draw %d", i)
		}
	}
}

func TestBernoulliBounds(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		if s.Bernoulli(0) {
			t.Fatalf("p=0 should never succeed")
		}
	}
	s2 := New(99)
	for i := 0; i < 1000; i++ {
		if !s2.Bernoulli(1) {
			t.Fatalf("p=1 should always succeed")
		}
	}
}

func TestUniformRange(t *testing.T) {
	s := New(5)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("uniform(10,20) out of range: %v", v)
		}
	}
}
