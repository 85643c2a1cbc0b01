package crawl

import (
	"container/heap"
	"sync"

	"github.com/siteglean/siteglean/bloom"
)

// Entry is one frontier item. Ordering is by ascending depth, then
// descending score, then ascending insertion order, which makes crawl
// order deterministic for identical scores.
type Entry struct {
	URL   string
	Depth int
	Score float64

	order uint64
}

// Frontier is the prioritized queue of URLs pending crawl, deduplicated by
// canonical key. It is safe for concurrent use, although one crawl drives
// it sequentially.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.KeySet
	queue *entryHeap
	next  uint64
}

// NewFrontier creates a frontier sized for n expected URLs with the given
// dedup false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &entryHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewKeySet(n, fpRate),
		queue: h,
	}
}

// Push enqueues a URL unless its canonical key has already been enqueued.
// Returns false for duplicates.
func (f *Frontier) Push(e Entry) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := CanonicalKey(e.URL)
	if f.seen.Has(key) {
		return false
	}
	f.seen.Add(key)

	e.URL = key
	e.order = f.next
	f.next++
	heap.Push(f.queue, e)
	return true
}

// Pop returns the next entry by priority. The bool result is false if the
// frontier is empty.
func (f *Frontier) Pop() (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return Entry{}, false
	}
	e, _ := heap.Pop(f.queue).(Entry)
	return e, true
}

// Len returns the number of queued entries.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen reports whether the URL's canonical key has been enqueued.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Has(CanonicalKey(rawURL))
}

// entryHeap implements heap.Interface over frontier entries.
type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

// Less orders by depth ascending, score descending, insertion order
// ascending (stable FIFO tie-break).
func (h entryHeap) Less(i, j int) bool {
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	return h[i].order < h[j].order
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	e, _ := x.(Entry)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
