package zobrist

// HashHistory counts how often each position hash occurred along the current
// line of play. Push and Pop follow make and unmake.
type HashHistory struct {
	hashes []uint64
	counts map[uint64]int
}

func NewHashHistory() *HashHistory {
	return &HashHistory{counts: map[uint64]int{}}
}

func (h *HashHistory) Push(hash uint64) {
	h.hashes = append(h.hashes, hash)
	h.counts[hash]++
}

func (h *HashHistory) Pop() {
	if len(h.hashes) == 0 {
		return
	}
	hash := h.hashes[len(h.hashes)-1]
	h.hashes = h.hashes[:len(h.hashes)-1]
	h.counts[hash]--
	if h.counts[hash] == 0 {
		delete(h.counts, hash)
	}
}

func (h *HashHistory) Count(hash uint64) int {
	return h.counts[hash]
}

func (h *HashHistory) Len() int {
	return len(h.hashes)
}

func (h *HashHistory) Copy() *HashHistory {
	result := &HashHistory{
		hashes: append([]uint64{}, h.hashes...),
		counts: make(map[uint64]int, len(h.counts)),
	}
	for hash, count := range h.counts {
		result.counts[hash] = count
	}
	return result
}
