// Package sync reconciles the local draft with a source of truth.
//
// # Two execution modes, one contract
//
// The Service interface is implemented twice. Remote drives the manifest
// HTTP service; Offline performs the equivalent mutations against the local
// snapshot only. The UI holds a Service and never learns which one.
//
// # The reconciliation protocol
//
// Every remote mutation is a finite sequence of awaited steps:
//
//	1. capture the payload from the current snapshot
//	2. attempt the commit against the service
//	3. refresh unconditionally, success or failure
//
// The refresh replaces the people, parachute, and plan sub-trees wholesale
// and re-reads the active plan into the draft, so the client's view can
// never remain stale after an error. Writes are idempotent replacements,
// which is also why a slow response overtaken by a newer refresh does no
// harm. When the refresh after a failed mutation itself fails, the last
// successfully reconciled snapshot stays in place and only the original
// error surfaces.
//
// # Wire mapping
//
// The draft travels as slots sorted by slot number, with the scheduled
// wall-clock time joined to today's date at the dropzone. The passenger's
// tandem instructor link does not travel at all: on the way back it is
// re-derived by matching the shared parachute id against skydiver slots.
//
// # Offline bookkeeping
//
// Offline allocates ids as one past the maximum in use and maintains the
// assignedExitPlanId back-references by hand: bound on save, rebound on
// re-save, released on delete. Conflicts the service would answer with 409
// are raised as the same api.Error so the message surface is identical.
package sync
