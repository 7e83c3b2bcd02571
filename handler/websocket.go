package handler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"travel_booking/config"
	"travel_booking/database"
	"travel_booking/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var redisClient = redis.NewClient(&redis.Options{
	Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
})

// one redis subscription per schedule, owned by its relay goroutine
var seatRelays = make(map[uint]*redis.PubSub)

// registerSeatConn adds the socket to the schedule's registry. Reports
// whether it is the first watcher, i.e. the relay has to be started.
func registerSeatConn(scheduleId uint, c *websocket.Conn) bool {
	seatMutex.Lock()
	defer seatMutex.Unlock()
	if seatConnections[scheduleId] == nil {
		seatConnections[scheduleId] = make(map[*websocket.Conn]bool)
	}
	seatConnections[scheduleId][c] = true
	return len(seatConnections[scheduleId]) == 1
}

// unregisterSeatConn removes the socket. Reports whether it was the last
// watcher, i.e. the relay has to be stopped.
func unregisterSeatConn(scheduleId uint, c *websocket.Conn) bool {
	seatMutex.Lock()
	defer seatMutex.Unlock()
	delete(seatConnections[scheduleId], c)
	if len(seatConnections[scheduleId]) == 0 {
		delete(seatConnections, scheduleId)
		return true
	}
	return false
}

// relaySeatEvents fans redis messages out to every socket watching the
// schedule. It is the only writer to registered sockets, so frames are
// never interleaved. Exits when the subscription is closed.
func relaySeatEvents(scheduleId uint, pubsub *redis.PubSub) {
	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)

		seatMutex.Lock()
		for conn := range seatConnections[scheduleId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(seatConnections[scheduleId], conn)
			}
		}
		seatMutex.Unlock()
	}
}

// ScheduleSeatWebsocket streams the live seat map of one departure. The
// first frame is the full map, after that the client receives payloads
// relayed from the redis channel instances publish on.
func ScheduleSeatWebsocket(c *websocket.Conn) {
	scheduleIdStr := c.Params("scheduleId")
	id64, err := strconv.ParseUint(scheduleIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid scheduleId: %s", scheduleIdStr)
		c.Close()
		return
	}
	scheduleId := uint(id64)

	// full map before registration, while this goroutine is still the
	// only writer to the socket
	var seats []model.ScheduleSeat
	if err := database.DB.
		Where("schedule_id = ?", scheduleId).
		Order("level, seat_number").
		Find(&seats).Error; err == nil {
		c.WriteJSON(seatUIsByLevel(seats))
	}

	if registerSeatConn(scheduleId, c) {
		pubsub := redisClient.Subscribe(
			context.Background(),
			fmt.Sprintf("schedule:%d", scheduleId),
		)
		seatMutex.Lock()
		seatRelays[scheduleId] = pubsub
		seatMutex.Unlock()
		go relaySeatEvents(scheduleId, pubsub)
	}

	defer func() {
		if unregisterSeatConn(scheduleId, c) {
			seatMutex.Lock()
			pubsub := seatRelays[scheduleId]
			delete(seatRelays, scheduleId)
			seatMutex.Unlock()
			if pubsub != nil {
				pubsub.Close() // ends the relay loop
			}
		}
		c.Close()
	}()

	// hold the socket open until the client goes away
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
