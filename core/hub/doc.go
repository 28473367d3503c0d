// Package hub implements the broadcast fan-out for real-time clients.
//
// The Hub owns the live connection set and the latest-batch cache behind one
// mutex. Every client gets a bounded outbound queue drained by its own writer
// goroutine, so a slow socket never blocks Broadcast or other clients. A client
// whose queue is full when a message arrives is disconnected as errored.
//
// Connect queues the acknowledgement and the latest-batch replay while holding
// the same lock Broadcast takes, so a joining client sees either the replay of
// batch N followed by batch N+1, or the replay of N+1, never a gap or a repeat.
package hub
