// Package server wires the keyspace store and the RESP codec into a TCP
// listener, following the teacher's accept-loop/handleConnection shape in
// server.go.
package server

import "go.uber.org/atomic"

// Stats tracks performance counters, replacing the teacher's mutex-guarded
// ServerStats (stats.go) with lock-free atomics: every connection goroutine
// bumps these on the hot path, so a shared mutex would serialize exactly
// the work striping the keyspace was meant to parallelize.
type Stats struct {
	TotalCommands atomic.Uint64
	Connections   atomic.Uint64
	ActiveConns   atomic.Int64
	BytesRead     atomic.Uint64
	BytesWritten  atomic.Uint64
	RejectedConns atomic.Uint64
}

func NewStats() *Stats {
	return &Stats{}
}

// Snapshot is a point-in-time copy safe to format or serve over INFO.
type Snapshot struct {
	TotalCommands uint64
	Connections   uint64
	ActiveConns   int64
	BytesRead     uint64
	BytesWritten  uint64
	RejectedConns uint64
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		TotalCommands: s.TotalCommands.Load(),
		Connections:   s.Connections.Load(),
		ActiveConns:   s.ActiveConns.Load(),
		BytesRead:     s.BytesRead.Load(),
		BytesWritten:  s.BytesWritten.Load(),
		RejectedConns: s.RejectedConns.Load(),
	}
}
