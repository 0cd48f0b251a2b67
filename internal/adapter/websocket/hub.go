package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Hub fans transfer status events out to connected clients. Clients join
// per-transfer rooms; events for a transfer reach only its room plus any
// admin listeners subscribed to everything.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Room membership by transfer id.
	rooms map[string]map[*Client]bool

	broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client

	log *zap.Logger
	mu  sync.RWMutex
}

type roomMessage struct {
	room string // empty broadcasts to every client
	data []byte
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	userID string
	admin  bool

	mu    sync.Mutex
	rooms map[string]bool
}

// clientCommand is the inbound control message: {"action":"join","transferId":"..."}
type clientCommand struct {
	Action     string `json:"action"`
	TransferID string `json:"transferId"`
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan roomMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.dropClientLocked(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.recipients(msg.room) {
				select {
				case client.send <- msg.data:
				default:
					// slow consumer, drop it
					h.dropClientLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// recipients must be called with the lock held.
func (h *Hub) recipients(room string) map[*Client]bool {
	if room == "" {
		return h.clients
	}
	out := make(map[*Client]bool)
	for client := range h.rooms[room] {
		out[client] = true
	}
	for client := range h.clients {
		if client.admin {
			out[client] = true
		}
	}
	return out
}

// BroadcastToRoom sends the payload to the transfer's room and to admin
// listeners.
func (h *Hub) BroadcastToRoom(room string, data []byte) {
	h.broadcast <- roomMessage{room: room, data: data}
}

// Broadcast sends the payload to every connected client.
func (h *Hub) Broadcast(data []byte) {
	h.broadcast <- roomMessage{data: data}
}

// AddClient registers an authenticated connection and starts its pumps.
func (h *Hub) AddClient(conn *websocket.Conn, userID string, admin bool) {
	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		admin:  admin,
		rooms:  make(map[string]bool),
	}
	client.hub.register <- client

	go client.writePump()
	client.readPump()
}

func (h *Hub) joinRoom(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.mu.Lock()
	client.rooms[room] = true
	client.mu.Unlock()
}

func (h *Hub) leaveRoom(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(room, client)
	client.mu.Lock()
	delete(client.rooms, room)
	client.mu.Unlock()
}

// dropClientLocked detaches the client from the hub and every room it joined,
// then closes its send channel. Idempotent, so the unregister path and the
// slow-consumer path cannot double-close. Must hold the write lock.
func (h *Hub) dropClientLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.mu.Lock()
	for room := range client.rooms {
		h.leaveRoomLocked(room, client)
	}
	client.mu.Unlock()
	close(client.send)
}

func (h *Hub) leaveRoomLocked(room string, client *Client) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var cmd clientCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}
		switch cmd.Action {
		case "join":
			if cmd.TransferID != "" {
				c.hub.joinRoom(cmd.TransferID, c)
			}
		case "leave":
			if cmd.TransferID != "" {
				c.hub.leaveRoom(cmd.TransferID, c)
			}
		}
	}
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		// Flush queued messages into the same frame.
		n := len(c.send)
		for i := 0; i < n; i++ {
			w.Write(<-c.send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
