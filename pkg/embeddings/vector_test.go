package embeddings

import (
	"math"
	"testing"
)

func TestMeanPool(t *testing.T) {
	t.Run("empty input returns nil", func(t *testing.T) {
		if got := MeanPool(nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("single token is returned as-is", func(t *testing.T) {
		got := MeanPool([][]float32{{1, 2, 3}})

		const tol = 1e-6
		want := []float32{1, 2, 3}
		for i := range want {
			if math.Abs(float64(got[i]-want[i])) > tol {
				t.Errorf("got[%d] = %f, want %f", i, got[i], want[i])
			}
		}
	})

	t.Run("averages across tokens per dimension", func(t *testing.T) {
		got := MeanPool([][]float32{
			{1, 0},
			{0, 1},
			{2, 2},
		})

		const tol = 1e-6
		want := []float32{1, 1}
		for i := range want {
			if math.Abs(float64(got[i]-want[i])) > tol {
				t.Errorf("got[%d] = %f, want %f", i, got[i], want[i])
			}
		}
	})
}

func TestNormalizeL2(t *testing.T) {
	t.Run("unit vector unchanged", func(t *testing.T) {
		v := []float32{1, 0, 0}
		NormalizeL2(v)

		if v[0] != 1 || v[1] != 0 || v[2] != 0 {
			t.Errorf("unit vector changed: got %v", v)
		}
	})

	t.Run("normalizes to unit length", func(t *testing.T) {
		vec := []float32{3, 4}
		NormalizeL2(vec)
		// 3-4-5 triangle => magnitude 5 => expected (0.6, 0.8)
		const tol = 1e-5
		if math.Abs(float64(vec[0])-0.6) > tol || math.Abs(float64(vec[1])-0.8) > tol {
			t.Errorf("expected (0.6, 0.8), got (%f, %f)", vec[0], vec[1])
		}

		mag := math.Sqrt(float64(vec[0]*vec[0] + vec[1]*vec[1]))
		if math.Abs(mag-1) > tol {
			t.Errorf("magnitude should be 1, got %f", mag)
		}
	})

	t.Run("zero vector does not panic", func(t *testing.T) {
		v := []float32{0, 0, 0}
		NormalizeL2(v)

		if v[0] != 0 || v[1] != 0 || v[2] != 0 {
			t.Errorf("zero vector should remain unchanged: got %v", v)
		}
	})

	t.Run("pooled vector normalizes to unit norm", func(t *testing.T) {
		pooled := MeanPool([][]float32{
			{2, 0, 0},
			{0, 2, 0},
		})
		NormalizeL2(pooled)

		var sum float64
		for _, v := range pooled {
			sum += float64(v) * float64(v)
		}

		const tol = 1e-5
		if math.Abs(math.Sqrt(sum)-1) > tol {
			t.Errorf("magnitude should be 1, got %f", math.Sqrt(sum))
		}
	})
}
