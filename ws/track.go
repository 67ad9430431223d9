package ws

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"localeats/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AccessChecker answers whether a user may watch an order's status stream:
// the customer who placed it or the owner of the restaurant it was placed with.
type AccessChecker interface {
	CanTrack(userID, orderID uint) (bool, error)
}

// StatusEvent is one status change pushed to everyone watching an order.
type StatusEvent struct {
	OrderID uint      `json:"orderId"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

// TrackHub fans order-status changes out to WebSocket subscribers.
type TrackHub struct {
	clients    map[uint]map[*websocket.Conn]bool // orderID -> set of clients
	broadcast  chan StatusEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex

	Access AccessChecker
}

type subscription struct {
	Conn    *websocket.Conn
	OrderID uint
	UserID  uint
}

func NewTrackHub() *TrackHub {
	return &TrackHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan StatusEvent, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

// Run listens for register/unregister/broadcast events until the process exits.
func (h *TrackHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.OrderID] == nil {
				h.clients[sub.OrderID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.OrderID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.OrderID][sub.Conn]; ok {
				delete(h.clients[sub.OrderID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.OrderID] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[ev.OrderID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishStatus queues one status change for broadcast. Status pushes are
// best effort: when the buffer is full the event is dropped, never blocking
// the checkout or transition that produced it.
func (h *TrackHub) PublishStatus(orderID uint, status string) {
	ev := StatusEvent{OrderID: orderID, Status: status, At: time.Now()}
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("ws: dropping status event for order %d", orderID)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders/:id
func (h *TrackHub) HandleTrack(c *gin.Context) {
	var orderID uint
	fmt.Sscan(c.Param("id"), &orderID)

	userID := utils.CurrentUserID(c)

	if h.Access == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "tracking unavailable"})
		return
	}
	ok, err := h.Access.CanTrack(userID, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{Conn: conn, OrderID: orderID, UserID: userID}
	h.register <- sub

	go h.drain(sub)
}

// drain keeps reading until the peer goes away. Clients never send anything
// meaningful on this stream; the read loop only detects the close.
func (h *TrackHub) drain(sub subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
