// Package allocation implements the decision core: selecting one candidate
// recipe and assigning every expiring ingredient to exactly one of COOK, SELL
// or DONATE.
package allocation

import "fmt"

// EmptyCandidateSetError is returned by SelectRecipe when it is given zero
// candidates. Callers must validate that upstream retrieval produced at least
// one candidate before asking for a selection.
type EmptyCandidateSetError struct{}

func (e *EmptyCandidateSetError) Error() string {
	return "candidate recipe list is empty"
}

// InvalidProbabilityError is returned when a probability or temperature
// parameter is outside its valid range. Values are rejected at entry, never
// clamped.
type InvalidProbabilityError struct {
	Name  string
	Value float64
}

func (e *InvalidProbabilityError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Name, e.Value)
}
