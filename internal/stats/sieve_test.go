package stats

import "testing"

func TestPrimesUpTo(t *testing.T) {
	got := primesUpTo(30)
	want := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	if len(got) != len(want) {
		t.Fatalf("primesUpTo(30) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("primesUpTo(30)[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if got := primesUpTo(1); got != nil {
		t.Errorf("primesUpTo(1) = %v, want nil", got)
	}
	if got := primesUpTo(2); len(got) != 1 || got[0] != 2 {
		t.Errorf("primesUpTo(2) = %v, want [2]", got)
	}

	// 669 primes below 5000, the count used by the singular series.
	if got := primesUpTo(5000); len(got) != 669 {
		t.Errorf("primesUpTo(5000) found %d primes, want 669", len(got))
	}
}
