package crafting

import "fmt"

// Domain errors for requirement sets

// ErrEmptyGroup indicates an alternative group without any alternative.
// Such a group can never be satisfied.
type ErrEmptyGroup struct {
	Category Category
	Index    int
}

func (e *ErrEmptyGroup) Error() string {
	return fmt.Sprintf("%s group %d has no alternatives", e.Category, e.Index)
}

// ErrInvalidRequirement indicates a requirement with out-of-range values
type ErrInvalidRequirement struct {
	Category Category
	Key      string
	Reason   string
}

func (e *ErrInvalidRequirement) Error() string {
	return fmt.Sprintf("invalid %s requirement %q: %s", e.Category, e.Key, e.Reason)
}

// ErrUnknownMatchPolicy indicates a match policy name that cannot be parsed
type ErrUnknownMatchPolicy struct {
	Name string
}

func (e *ErrUnknownMatchPolicy) Error() string {
	return fmt.Sprintf("unknown match policy: %q (expected \"first\" or \"all\")", e.Name)
}

// ErrBatchOutOfRange indicates a batch multiplier outside 1..MaxBatch
type ErrBatchOutOfRange struct {
	Batch int
}

func (e *ErrBatchOutOfRange) Error() string {
	return fmt.Sprintf("batch %d out of range (1 to %d)", e.Batch, MaxBatch)
}

// CheckBatch validates a requested batch multiplier
func CheckBatch(batch int) error {
	if batch < 1 || batch > MaxBatch {
		return &ErrBatchOutOfRange{Batch: batch}
	}
	return nil
}
