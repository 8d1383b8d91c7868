package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"roamio/globals"
	"roamio/models"
)

// Client is one websocket subscriber, keyed to its tenant's feed.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Tenant string
}

type broadcastMsg struct {
	Tenant string
	Data   []byte
}

// Hub fans generation-progress events out to every open socket of a
// tenant. Progress is ephemeral: nothing is buffered for absent clients.
type Hub struct {
	feeds      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	stop       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		feeds:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.feeds[c.Tenant] == nil {
				h.feeds[c.Tenant] = make(map[*Client]bool)
			}
			h.feeds[c.Tenant][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.feeds[c.Tenant]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.feeds[m.Tenant] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.feeds[m.Tenant], c)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
}

// Progress pushes one generation-progress event to the tenant's feed.
func (h *Hub) Progress(tenant string, p models.GenerationProgress) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Tenant: tenant, Data: data}:
	case <-h.stop:
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeWS subscribes the caller to its tenant's progress feed.
func (h *Hub) ServeWS() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		tenant, _ := r.Context().Value(globals.TenantIDKey).(string)
		if tenant == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("live: upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 64),
			Tenant: tenant,
		}
		h.register <- client
		go writePump(client)
		go readPump(client, h)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for data := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// readPump only watches for the peer going away; the feed is one-way.
func readPump(c *Client, h *Hub) {
	defer func() {
		h.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
