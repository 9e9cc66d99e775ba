// handle.go: liveness queries and role teardown
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

// Each role (Producer, Worker, Consumer) exposes its own
// IsProdAlive/IsWorkAlive/IsConsAlive trio, per spec.md §6 — "Each sync
// role also exposes liveness queries for the other two roles". They
// are defined directly on each role type in producer.go/worker.go/
// consumer.go rather than through an embedded helper: Go method
// promotion through an embedded struct field only works if every role
// shares that struct's only reference to *Buffer[T], and each role
// already carries its own buf field for its other operations, so the
// straightforward one-liner per role avoids a second, easily
// desynchronized copy of the pointer.
