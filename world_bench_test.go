package retsu_test

import (
	"fmt"
	"testing"

	"github.com/edwinsyarief/retsu"
)

var benchSizes = []int{1000, 10000, 100000, 1000000}

func sizeName(size int) string {
	if size == 1000000 {
		return "1M"
	}
	return fmt.Sprintf("%dK", size/1000)
}

func benchWorld(b *testing.B, size int) *retsu.World {
	b.Helper()
	w, _, err := retsu.NewWorld(retsu.Config{NumEntities: size, Logger: quietLogger()})
	if err != nil {
		b.Fatal(err)
	}
	_, _ = retsu.RegisterComponent[float32](w, compA, size)
	_, _ = retsu.RegisterComponent[float32](w, compB, size)
	return w
}

// World Spawn Benchmarks
func BenchmarkWorldSpawn(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				w := benchWorld(b, size)
				b.StartTimer()
				if _, err := w.Spawn([]retsu.ComponentID{compA, compB}, size); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportAllocs()
		})
	}
}

// World Despawn Benchmarks
func BenchmarkWorldDespawn(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				w := benchWorld(b, size)
				_, _ = w.Spawn([]retsu.ComponentID{compA, compB}, size)
				b.StartTimer()
				if err := w.Despawn(w.EntityIDs()); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportAllocs()
		})
	}
}

// Query Benchmarks
func BenchmarkRunQuery(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			w := benchWorld(b, size)
			_, _ = w.Spawn([]retsu.ComponentID{compA, compB}, size)
			q, _ := w.RegisterQuery(compA, compB)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := w.RunQuery(q); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportAllocs()
		})
	}
}

// Operator Benchmarks
func BenchmarkIAddView(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			w := benchWorld(b, size)
			_, _ = w.Spawn([]retsu.ComponentID{compA, compB}, size)
			q, _ := w.RegisterQuery(compA, compB)
			pos, vel, _ := retsu.QueryViews[float32, float32](w, q)
			_ = vel.Fill(retsu.Scalar[float32](0.5))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := retsu.IAdd(pos, retsu.Operand[float32](vel)); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkCompareWhere(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			w := benchWorld(b, size)
			_, _ = w.Spawn([]retsu.ComponentID{compA}, size)
			v, _ := retsu.ViewOf[float32](w, compA, nil)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lt, _ := retsu.Lt(v, retsu.Scalar[float32](1))
				if err := v.Assign(retsu.Where(lt), retsu.Scalar[float32](2)); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportAllocs()
		})
	}
}
