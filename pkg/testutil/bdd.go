package testutil

import "testing"

// Given names the lookup's starting state, e.g. "an address that resolves to
// no divisions". Subtests nest so a failure reads as one sentence:
// "Given an empty address/When the lookup runs/Then it answers 400".
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

// When names the action under test, usually one lookup or one request.
func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

// Then names one observable outcome of the action.
func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}
