// Package domain defines the entities and lifecycle state for arena matches.
//
// A Match represents one elimination tournament: a roster of participants
// progresses through discrete turns across narrative phases until a single
// survivor remains. The package models the match aggregate (participants,
// locations, relationships, active fires, the event log, and the pending
// god-mode action queue) along with the validation rules that keep it
// consistent.
//
// # Match Lifecycle
//
// Matches move through three phases:
//   - Setup: the match has been created but play has not begun.
//   - Running: turns are being resolved; god-mode actions may be queued.
//   - Finished: exactly one participant remains alive (or an operator
//     action resolved the match). Finished matches are frozen.
//
// All mutation helpers operate on value copies; callers build the next
// state locally and commit it atomically to storage.
package domain
