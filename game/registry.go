package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"spades/bot"
)

// Registry is the process-wide map of live rooms. Rooms are created on
// demand, supervised while they run and removed when their actor stops.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	log       zerolog.Logger
	store     RoomStore
	tuning    bot.Tuning
	threshold int
	// newSource hands each room its own random stream so deals in
	// different rooms never share state.
	newSource func() *rand.Rand
}

// NewRegistry builds an empty registry. store may be nil when metadata
// persistence is disabled. newSource must return an independent
// *rand.Rand per call; it defaults to time-seeded sources.
func NewRegistry(store RoomStore, tuning bot.Tuning, winThreshold int, newSource func() *rand.Rand, log zerolog.Logger) *Registry {
	if newSource == nil {
		newSource = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &Registry{
		rooms:     make(map[string]*Room),
		log:       log,
		store:     store,
		tuning:    tuning,
		threshold: winThreshold,
		newSource: newSource,
	}
}

// CreateOrGetRoom returns the room for the id, starting one if none is
// live. The returned handle stays valid until the room's actor stops.
func (reg *Registry) CreateOrGetRoom(roomID string) *Room {
	reg.mu.RLock()
	room, exists := reg.rooms[roomID]
	reg.mu.RUnlock()
	if exists {
		return room
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, exists = reg.rooms[roomID]; exists {
		return room
	}

	room = NewRoom(roomID, reg.newSource(), reg.tuning, reg.threshold, reg.store, reg.log)
	reg.rooms[roomID] = room
	go reg.supervise(room)
	reg.saveRoom(roomID)
	reg.log.Info().Str("room", roomID).Msg("room created")
	return room
}

// Lookup returns a live room or ErrRoomNotFound. It never creates.
func (reg *Registry) Lookup(roomID string) (*Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, exists := reg.rooms[roomID]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Len reports the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// supervise runs the room actor with a transient restart policy: a
// deliberate stop removes the room, a panic restarts the actor with a
// fresh game. In-progress round state is lost on a crash.
func (reg *Registry) supervise(room *Room) {
	defer close(room.done)
	for {
		err := room.run()
		if err == nil {
			reg.remove(room.ID)
			reg.log.Info().Str("room", room.ID).Msg("room stopped")
			return
		}
		reg.log.Error().Err(err).Str("room", room.ID).Msg("room actor crashed, restarting with a fresh game")
		room.resetGame()
	}
}

func (reg *Registry) remove(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, roomID)
}

func (reg *Registry) saveRoom(roomID string) {
	if reg.store == nil {
		return
	}
	store := reg.store
	log := reg.log
	createdAt := time.Now().UTC()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.SaveRoom(ctx, roomID, createdAt); err != nil {
			log.Warn().Err(err).Str("room", roomID).Msg("could not persist room metadata")
		}
	}()
}
