package circuit

import "testing"

func benchmarkTracker(b *testing.B, newTracker func(n int) Tracker) {
	const n = 400
	conns := drained(b, n, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := newTracker(n)
		for _, c := range conns {
			tr.Consume(c)
			if tr.Largest() == n {
				break
			}
		}
	}
}

func BenchmarkRehoming(b *testing.B)  { benchmarkTracker(b, strategies[StrategyRehome]) }
func BenchmarkUnionFind(b *testing.B) { benchmarkTracker(b, strategies[StrategyUnionFind]) }
