package simd

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestMemmem(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{"empty needle", "abc", "", 0},
		{"empty both", "", "", 0},
		{"empty haystack", "", "a", -1},
		{"needle longer", "ab", "abc", -1},
		{"single byte", "hello", "l", 2},
		{"simple", "hello world", "world", 6},
		{"at start", "world hello", "world", 0},
		{"not found", "hello world", "xyz", -1},
		{"overlap", "aaaaaabaaaa", "aab", 5},
		{"periodic", "abababababc", "ababc", 6},
		{"baa", "baa baa black sheep aa", "aa", 1},
		{"long needle", strings.Repeat("ab", 40) + "c", strings.Repeat("ab", 20) + "c", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memmem([]byte(tt.haystack), []byte(tt.needle)); got != tt.want {
				t.Errorf("Memmem(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestTwoWay_AgainstStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("ab")
	for iter := 0; iter < 3000; iter++ {
		if iter == 1500 {
			alphabet = []byte("abc")
		}
		needle := make([]byte, 1+rng.Intn(8))
		for i := range needle {
			needle[i] = alphabet[rng.Intn(len(alphabet))]
		}
		haystack := make([]byte, rng.Intn(64))
		for i := range haystack {
			haystack[i] = alphabet[rng.Intn(len(alphabet))]
		}

		tw := newTwoWay(needle)
		if got, want := tw.index(haystack), bytes.Index(haystack, needle); got != want {
			t.Fatalf("twoWay(%q).index(%q) = %d, want %d", needle, haystack, got, want)
		}
		if got, want := NewFinder(needle).Index(haystack), bytes.Index(haystack, needle); got != want {
			t.Fatalf("Finder(%q).Index(%q) = %d, want %d", needle, haystack, got, want)
		}
	}
}

// TestFinder_Adversarial drives the rare-byte scan into its failure limit
// so the Two-Way fallback has to finish the search.
func TestFinder_Adversarial(t *testing.T) {
	needle := []byte(strings.Repeat("a", 30) + "b" + strings.Repeat("a", 30))
	haystack := []byte(strings.Repeat(strings.Repeat("a", 29)+"b", 200) + string(needle))

	f := NewFinder(needle)
	if got, want := f.Index(haystack), bytes.Index(haystack, needle); got != want {
		t.Errorf("Index = %d, want %d", got, want)
	}
	if !bytes.Equal(f.Needle(), needle) {
		t.Errorf("Needle() = %q, want %q", f.Needle(), needle)
	}
}

func TestRarestByte(t *testing.T) {
	tests := []struct {
		needle string
		want   byte
		idx    int
	}{
		{"e", 'e', 0},
		{"the", 'h', 1},
		{"zebra", 'z', 0},
		{"aaa", 'a', 2},
	}
	for _, tt := range tests {
		b, i := rarestByte([]byte(tt.needle))
		if b != tt.want || i != tt.idx {
			t.Errorf("rarestByte(%q) = (%q, %d), want (%q, %d)", tt.needle, b, i, tt.want, tt.idx)
		}
	}
	if ByteRank(' ') != 255 {
		t.Errorf("ByteRank(' ') = %d, want 255", ByteRank(' '))
	}
}

func BenchmarkMemmem_Adversarial(b *testing.B) {
	needle := []byte(strings.Repeat("a", 63) + "b")
	haystack := bytes.Repeat([]byte("a"), 64*1024)
	f := NewFinder(needle)
	b.SetBytes(int64(len(haystack)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Index(haystack)
	}
}
