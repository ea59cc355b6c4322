// Package session implements the edit session driving a negative inversion.
//
// A Session moves through four states:
//
//	Empty -> Loaded -> Baseline <-> Corrected
//
// Load is accepted in every state and always returns the session to Loaded.
// Invert is accepted only from Loaded and produces the baseline. SetCorrection
// and Reset are accepted only once a baseline exists and always recompute the
// rendered image from that baseline, so corrections never accumulate.
//
// # Concurrency
//
// All methods are safe for concurrent use. Transforms run one at a time per
// session. Each accepted mutating request takes a generation number; a
// transform result is stored only if no newer request was accepted while it
// ran, otherwise the caller gets ErrSuperseded. Loading a new image therefore
// discards any pending inversion or correction. Readers never observe a
// partially corrected image because results are built aside and swapped in
// under the lock.
package session
