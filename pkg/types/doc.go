// Package types defines the entity records persisted by the Compass data
// layer (behavior logs, crisis events, schedules, goals, the child profile,
// settings), the storage key constants, the standard errors, and the
// export/import document format.
//
// All entities are plain records identified by a stable string ID, serialized
// as JSON under fixed keys in the persistent key-value store. Unknown fields
// in stored JSON are tolerated on decode for forward compatibility.
package types
