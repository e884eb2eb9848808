package chat

import (
	"sync"

	"github.com/zhouzirui/z-wellness/backend/internal/model/chat"
)

// History is a fixed-capacity ring of exchanges; the oldest entry is evicted first.
type History struct {
	mu      sync.Mutex
	entries []chat.Exchange
	start   int
	size    int
}

// NewHistory returns an empty history holding at most capacity exchanges.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{entries: make([]chat.Exchange, capacity)}
}

// Append stores an exchange, evicting the oldest when full.
func (h *History) Append(entry chat.Exchange) {
	h.mu.Lock()
	defer h.mu.Unlock()

	capacity := len(h.entries)
	if h.size < capacity {
		h.entries[(h.start+h.size)%capacity] = entry
		h.size++
		return
	}

	h.entries[h.start] = entry
	h.start = (h.start + 1) % capacity
}

// Recent returns up to n of the newest exchanges, oldest first.
func (h *History) Recent(n int) []chat.Exchange {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n > h.size {
		n = h.size
	}
	if n < 0 {
		n = 0
	}

	out := make([]chat.Exchange, 0, n)
	capacity := len(h.entries)
	for i := h.size - n; i < h.size; i++ {
		out = append(out, h.entries[(h.start+i)%capacity])
	}
	return out
}

// Len returns the number of stored exchanges.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// Cap returns the maximum number of stored exchanges.
func (h *History) Cap() int {
	return len(h.entries)
}
