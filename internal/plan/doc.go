// Package plan is the exit-plan construction engine: pure validation over a
// snapshot and the assignment operations that keep the draft structurally
// sound.
//
// # Two layers of correctness
//
// Structural invariants are enforced by the assignment functions themselves
// and can never be violated between operations: slot numbers stay unique in
// [1,5], a person occupies at most one slot, a parachute equips at most one
// slot, and no slot references a person or instructor that is not there.
// Operations that would break one of these are silent no-ops, because the UI
// only offers them through already-disabled controls.
//
// Business rules (tandem pairing, student escort, per-slot parachutes) are
// checked by the pure validation functions. A failing rule never blocks
// editing; it only gates save and dispatch, and Diagnose reports exactly one
// actionable message in a fixed priority order.
//
// # Cascading invalidation
//
// Removing or displacing a skydiver who serves as a passenger's tandem
// instructor clears that passenger's instructor link and shared parachute in
// the same operation. Every mutation that can orphan a reference runs this
// pass; it is what keeps a draft loadable after any sequence of drags.
//
// # Locking
//
// A dispatched plan is locked at the mutation boundary: every operation
// checks the active status first and returns the snapshot unchanged, so the
// lock holds even for callers that bypass the UI's disabled controls.
//
// The pure functions take ownership of the snapshot they are handed and may
// mutate its slices in place; callers pass clones. The Editor wraps them in
// store mutations, which clone by contract.
package plan
