package simd

// MemchrInTable returns the index of the first byte b in haystack with
// table[b] set, or -1 if there is none.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	i := 0
	for ; i+4 <= len(haystack); i += 4 {
		if table[haystack[i]] {
			return i
		}
		if table[haystack[i+1]] {
			return i + 1
		}
		if table[haystack[i+2]] {
			return i + 2
		}
		if table[haystack[i+3]] {
			return i + 3
		}
	}
	for ; i < len(haystack); i++ {
		if table[haystack[i]] {
			return i
		}
	}
	return -1
}

// MemchrNotInTable returns the index of the first byte b in haystack with
// table[b] unset, or -1 if every byte is in the table.
func MemchrNotInTable(haystack []byte, table *[256]bool) int {
	for i, b := range haystack {
		if !table[b] {
			return i
		}
	}
	return -1
}

// RunLength returns the length of the longest prefix of haystack whose
// bytes are all in table.
func RunLength(haystack []byte, table *[256]bool) int {
	if i := MemchrNotInTable(haystack, table); i >= 0 {
		return i
	}
	return len(haystack)
}

// IndexAnyInTable is MemchrInTable specialized by class size: classes of
// one to three bytes are searched with Memchr, Memchr2 and Memchr3.
type IndexAnyInTable struct {
	table *[256]bool
	set   [3]byte
	count int
}

// NewIndexAnyInTable prepares a byte-class search over table.
func NewIndexAnyInTable(table *[256]bool) *IndexAnyInTable {
	s := &IndexAnyInTable{table: table}
	for b := range 256 {
		if !table[b] {
			continue
		}
		if s.count < len(s.set) {
			s.set[s.count] = byte(b)
		}
		s.count++
	}
	return s
}

// Index returns the index of the first byte of haystack in the class, or -1.
func (s *IndexAnyInTable) Index(haystack []byte) int {
	switch s.count {
	case 0:
		return -1
	case 1:
		return Memchr(haystack, s.set[0])
	case 2:
		return Memchr2(haystack, s.set[0], s.set[1])
	case 3:
		return Memchr3(haystack, s.set[0], s.set[1], s.set[2])
	default:
		return MemchrInTable(haystack, s.table)
	}
}
