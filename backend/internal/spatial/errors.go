package spatial

import "fmt"

// DomainError is returned by a math primitive on an illegal input. In
// this package only Quat.Normalize (and QuatFromRaw through it) returns
// it, for a zero-length quaternion; its callers in ligand and search
// substitute a fallback value rather than abort the task.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("spatial: %s: %s", e.Op, e.Reason)
}
