package connection

import (
	"context"
	"testing"
)

func BenchmarkBuild(b *testing.B) {
	points := randomPoints(1000, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(context.Background(), points, BuildOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkQueueDrain(b *testing.B) {
	points := randomPoints(500, 42)
	conns, err := Build(context.Background(), points, BuildOptions{})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q := NewQueue(append([]Connection(nil), conns...))
		for !q.Empty() {
			q.PopMin()
		}
	}
}
