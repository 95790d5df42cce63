package graph

import (
	"container/heap"
	"math"
)

// candidate pairs a node index with its distance to the current query,
// generalizing the teacher's util.Candidate (uint32 ID, float32 distance)
// to the float64 distance space this module settled on (see DESIGN.md,
// "top element" resolution).
type candidate struct {
	id       int32
	distance float64
}

// topInf is the sentinel "greater than every real distance" value spec.md
// calls the top element. Every distance a DistanceFunc produces is finite,
// so +Inf sorts above all of them and compares equal to itself under ==.
var topInf = math.Inf(1)

type minHeap struct{ c []candidate }

func newMinHeap(capHint int) *minHeap { return &minHeap{c: make([]candidate, 0, capHint)} }

func (h *minHeap) Len() int            { return len(h.c) }
func (h *minHeap) Less(i, j int) bool  { return h.c[i].distance < h.c[j].distance }
func (h *minHeap) Swap(i, j int)       { h.c[i], h.c[j] = h.c[j], h.c[i] }
func (h *minHeap) Push(x interface{})  { h.c = append(h.c, x.(candidate)) }
func (h *minHeap) Pop() interface{} {
	old := h.c
	n := len(old)
	item := old[n-1]
	h.c = old[:n-1]
	return item
}

func (h *minHeap) push(c candidate) { heap.Push(h, c) }
func (h *minHeap) pop() candidate   { return heap.Pop(h).(candidate) }
func (h *minHeap) peek() candidate  { return h.c[0] }
func (h *minHeap) empty() bool      { return len(h.c) == 0 }

type maxHeap struct{ c []candidate }

func newMaxHeap(capHint int) *maxHeap { return &maxHeap{c: make([]candidate, 0, capHint)} }

func (h *maxHeap) Len() int            { return len(h.c) }
func (h *maxHeap) Less(i, j int) bool  { return h.c[i].distance > h.c[j].distance }
func (h *maxHeap) Swap(i, j int)       { h.c[i], h.c[j] = h.c[j], h.c[i] }
func (h *maxHeap) Push(x interface{})  { h.c = append(h.c, x.(candidate)) }
func (h *maxHeap) Pop() interface{} {
	old := h.c
	n := len(old)
	item := old[n-1]
	h.c = old[:n-1]
	return item
}

func (h *maxHeap) push(c candidate) { heap.Push(h, c) }
func (h *maxHeap) pop() candidate   { return heap.Pop(h).(candidate) }
func (h *maxHeap) top() candidate   { return h.c[0] }
func (h *maxHeap) empty() bool      { return len(h.c) == 0 }
