package search

import "container/heap"

// frontierItem is a priority-queue entry. The queue uses lazy decrease-key:
// duplicates are pushed and stale entries skipped on pop.
type frontierItem struct {
	slot   int32
	f      float64 // priority: accumulated cost plus estimate
	g      float64 // accumulated cost at push time, for staleness checks
	stops  int
	energy float64
}

// frontier orders states by priority. At equal priority it prefers fewer
// charging stops, then greater remaining energy.
type frontier []frontierItem

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].stops != q[j].stops {
		return q[i].stops < q[j].stops
	}
	return q[i].energy > q[j].energy
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(frontierItem)) }

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

func (q *frontier) push(it frontierItem) { heap.Push(q, it) }

func (q *frontier) pop() frontierItem { return heap.Pop(q).(frontierItem) }
