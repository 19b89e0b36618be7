package simd

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   byte
		want     int
	}{
		{"empty", "", 'a', -1},
		{"single hit", "a", 'a', 0},
		{"single miss", "b", 'a', -1},
		{"short tail", "xyzab", 'b', 4},
		{"word boundary", "0123456789", '8', 8},
		{"long miss", strings.Repeat("x", 100), 'y', -1},
		{"long hit at end", strings.Repeat("x", 99) + "y", 'y', 99},
		{"first of many", "abracadabra", 'a', 0},
		{"high byte", "abc\xffdef", 0xff, 3},
		{"zero byte", "abc\x00def", 0x00, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memchr([]byte(tt.haystack), tt.needle); got != tt.want {
				t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
			if got := memchrGeneric([]byte(tt.haystack), tt.needle); got != tt.want {
				t.Errorf("memchrGeneric(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestMemchr2And3(t *testing.T) {
	tests := []struct {
		haystack string
		n1, n2   byte
		n3       byte
		want2    int
		want3    int
	}{
		{"", 'a', 'b', 'c', -1, -1},
		{"xxxxbxxxxxa", 'a', 'b', 'c', 4, 4},
		{"xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxc", 'a', 'b', 'c', -1, 38},
		{"zzzzzzzza", 'a', 'b', 'c', 8, 8},
	}

	for _, tt := range tests {
		h := []byte(tt.haystack)
		if got := Memchr2(h, tt.n1, tt.n2); got != tt.want2 {
			t.Errorf("Memchr2(%q) = %d, want %d", tt.haystack, got, tt.want2)
		}
		if got := Memchr3(h, tt.n1, tt.n2, tt.n3); got != tt.want3 {
			t.Errorf("Memchr3(%q) = %d, want %d", tt.haystack, got, tt.want3)
		}
	}
}

// TestMemchr_AgainstStdlib compares every entry point against bytes.IndexAny
// on random inputs that cross the SWAR word and vector window boundaries.
func TestMemchr_AgainstStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 500; iter++ {
		n := rng.Intn(9000)
		h := make([]byte, n)
		for i := range h {
			h[i] = byte('a' + rng.Intn(20))
		}
		n1, n2, n3 := byte('a'+rng.Intn(26)), byte('a'+rng.Intn(26)), byte('a'+rng.Intn(26))

		if got, want := Memchr(h, n1), bytes.IndexByte(h, n1); got != want {
			t.Fatalf("Memchr: got %d, want %d", got, want)
		}
		if got, want := Memchr2(h, n1, n2), bytes.IndexAny(h, string([]byte{n1, n2})); got != want {
			t.Fatalf("Memchr2: got %d, want %d", got, want)
		}
		if got, want := memchr2Generic(h, n1, n2), bytes.IndexAny(h, string([]byte{n1, n2})); got != want {
			t.Fatalf("memchr2Generic: got %d, want %d", got, want)
		}
		want3 := bytes.IndexAny(h, string([]byte{n1, n2, n3}))
		if got := Memchr3(h, n1, n2, n3); got != want3 {
			t.Fatalf("Memchr3: got %d, want %d", got, want3)
		}
		if got := memchr3Generic(h, n1, n2, n3); got != want3 {
			t.Fatalf("memchr3Generic: got %d, want %d", got, want3)
		}
		if got := memchrWindowed(h, n1, n2, n3); got != want3 {
			t.Fatalf("memchrWindowed: got %d, want %d", got, want3)
		}
	}
}

func BenchmarkMemchr(b *testing.B) {
	h := bytes.Repeat([]byte("x"), 64*1024)
	h[len(h)-1] = 'y'
	b.SetBytes(int64(len(h)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Memchr(h, 'y')
	}
}

func BenchmarkMemchr3(b *testing.B) {
	h := bytes.Repeat([]byte("x"), 64*1024)
	h[len(h)-1] = 'z'
	b.SetBytes(int64(len(h)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Memchr3(h, 'a', 'b', 'z')
	}
}
