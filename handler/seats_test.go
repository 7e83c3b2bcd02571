package handler

import (
	"testing"

	"github.com/gofiber/contrib/websocket"
)

func TestSortedSeatIds(t *testing.T) {
	input := []uint{9, 3, 7, 1}

	got := sortedSeatIds(input)
	want := []uint{1, 3, 7, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedSeatIds = %v, want %v", got, want)
		}
	}

	// the caller's slice is untouched
	if input[0] != 9 || input[3] != 1 {
		t.Fatalf("input slice was mutated: %v", input)
	}
}

func TestSeatConnRegistry(t *testing.T) {
	const scheduleId = uint(99)
	a := &websocket.Conn{}
	b := &websocket.Conn{}

	// first watcher starts the relay, later ones join it
	if !registerSeatConn(scheduleId, a) {
		t.Fatal("first connection must start the relay")
	}
	if registerSeatConn(scheduleId, b) {
		t.Fatal("second connection must join the existing relay")
	}

	// the relay survives until the last watcher leaves
	if unregisterSeatConn(scheduleId, a) {
		t.Fatal("relay must keep running while a watcher remains")
	}
	if !unregisterSeatConn(scheduleId, b) {
		t.Fatal("last connection must stop the relay")
	}

	seatMutex.Lock()
	_, ok := seatConnections[scheduleId]
	seatMutex.Unlock()
	if ok {
		t.Fatal("empty schedule entry must be dropped from the registry")
	}

	// a fresh watcher after teardown starts a new relay
	if !registerSeatConn(scheduleId, a) {
		t.Fatal("watcher after teardown must start a relay again")
	}
	unregisterSeatConn(scheduleId, a)
}
