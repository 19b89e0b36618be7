package simd_test

import (
	"fmt"

	"github.com/coregx/shortest/simd"
)

func ExampleMemmem() {
	haystack := []byte("hello world")
	needle := []byte("world")

	pos := simd.Memmem(haystack, needle)
	fmt.Printf("Found at position %d\n", pos)
	// Output: Found at position 6
}

func ExampleFinder() {
	f := simd.NewFinder([]byte("aa"))
	haystack := []byte("baa baa black sheep")

	at := 0
	for {
		i := f.Index(haystack[at:])
		if i < 0 {
			break
		}
		fmt.Println(at + i)
		at += i + 1
	}
	// Output:
	// 1
	// 5
}

func ExampleMemchrInTable() {
	var vowels [256]bool
	for _, b := range []byte("aeiou") {
		vowels[b] = true
	}
	fmt.Println(simd.MemchrInTable([]byte("rhythm and blues"), &vowels))
	// Output: 7
}
