package spatial

import (
	"math"
	"testing"
)

func TestQuatFromAxisAngleZeroIsIdentity(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{})
	if q != QuatID {
		t.Fatalf("QuatFromAxisAngle(0) = %+v, want identity", q)
	}
}

func TestQuatNormalizeIdempotent(t *testing.T) {
	q, err := QuatFromRaw(1, 2, 3, 4)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	q2, err := q.Normalize()
	if err != nil {
		t.Fatalf("second Normalize: %v", err)
	}
	if math.Abs(q.W-q2.W) > 1e-12 || math.Abs(q.X-q2.X) > 1e-12 {
		t.Errorf("normalize not idempotent: %+v vs %+v", q, q2)
	}
	if !q.IsNormalized() {
		t.Errorf("expected normalized quaternion, got norm^2=%v", q.NormSqr())
	}
}

func TestQuatNormalizeZeroIsDomainError(t *testing.T) {
	_, err := QuatFromRaw(0, 0, 0, 0)
	if err == nil {
		t.Fatal("expected DomainError for zero-length quaternion")
	}
	var de *DomainError
	if !asDomainError(err, &de) {
		t.Errorf("expected *DomainError, got %T", err)
	}
}

func asDomainError(err error, target **DomainError) bool {
	de, ok := err.(*DomainError)
	if ok {
		*target = de
	}
	return ok
}

func TestQuatMulIdentity(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 0, Z: math.Pi / 2})
	got := q.Mul(QuatID)
	if got != q {
		t.Errorf("q*identity = %+v, want %+v", got, q)
	}
}

func TestTriMatrixRestrictivePermissiveAgree(t *testing.T) {
	m := NewTriMatrix(4)
	m.SetRestrictive(1, 3, 7.5)
	if got := m.Permissive(3, 1); got != 7.5 {
		t.Errorf("Permissive(3,1) = %v, want 7.5", got)
	}
	if got := m.Permissive(1, 3); got != 7.5 {
		t.Errorf("Permissive(1,3) = %v, want 7.5", got)
	}
}

func TestTriMatrixIdentity(t *testing.T) {
	m := NewTriMatrix(3)
	m.SetIdentity()
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if got := m.Restrictive(i, j); got != want {
				t.Errorf("Restrictive(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}
