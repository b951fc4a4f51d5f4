package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/urbanserve/homeservice-app/models"
)

// Event types
const (
	EventBookingUpdate   = "booking_update"
	EventBookingAssigned = "booking_assigned"
	EventBillGenerated   = "bill_generated"
	EventBillPaid        = "bill_paid"
	EventVendorNotif     = "vendor_notification"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client (admin, vendor) keyed by role.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastBookingUpdate pushes a booking state change to all clients.
func BroadcastBookingUpdate(booking models.Booking) {
	broadcast(Message{
		Event: EventBookingUpdate,
		Data:  booking,
	})
}

// BroadcastBookingAssigned notifies vendors about a new assignment.
func BroadcastBookingAssigned(booking models.Booking) {
	broadcast(Message{
		Event: EventBookingAssigned,
		Data:  booking,
	})
}

// BroadcastBillGenerated announces a freshly generated bill.
func BroadcastBillGenerated(bill models.Bill) {
	broadcast(Message{
		Event: EventBillGenerated,
		Data:  bill,
	})
}

// BroadcastBillPaid announces a settled bill.
func BroadcastBillPaid(bill models.Bill) {
	broadcast(Message{
		Event: EventBillPaid,
		Data:  bill,
	})
}

// BroadcastVendorNotification sends a plain text notice to vendor dashboards.
func BroadcastVendorNotification(message string) {
	broadcast(Message{
		Event: EventVendorNotif,
		Data:  message,
	})
}

// BroadcastDashboardUpdate pushes refreshed admin dashboard data.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
