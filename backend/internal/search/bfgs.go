package search

import "github.com/sarat-asymmetrica/vedidock/backend/internal/spatial"

// matVec computes H*v for a packed symmetric matrix H (§4.1, §9: only
// i <= j entries are stored; Permissive handles the swap).
func matVec(h *spatial.TriMatrix, v []float64) []float64 {
	n := h.N()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += h.Permissive(i, j) * v[j]
		}
		out[i] = sum
	}
	return out
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func scaleVec(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}

func negVec(v []float64) []float64 { return scaleVec(v, -1) }

func subVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// bfgsUpdate applies the rank-2 inverse-Hessian update (§4.6):
//
//	y = g2 - g1
//	mhy = -H*y
//	yhy = -y.mhy
//	yp = y.p
//	pco = (1/yp) * ((1/yp)*yhy + alpha)
//	H <- H + (1/yp)*(mhy*p^T + p*mhy^T) + pco*p*p^T
//
// Only i <= j entries are written, keeping the packed storage consistent.
func bfgsUpdate(h *spatial.TriMatrix, g1, g2, p []float64, alpha float64) {
	y := subVec(g2, g1)
	mhy := negVec(matVec(h, y))
	yhy := -dot(y, mhy)
	yp := dot(y, p)
	if yp == 0 {
		return // degenerate step; leave H unchanged rather than divide by zero
	}
	invYp := 1 / yp
	pco := invYp * (invYp*yhy + alpha)

	n := h.N()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			delta := invYp*(mhy[i]*p[j]+p[i]*mhy[j]) + pco*p[i]*p[j]
			h.SetRestrictive(i, j, h.Restrictive(i, j)+delta)
		}
	}
}
