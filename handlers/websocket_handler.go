package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Akhil2453/NRLScoringApp/live"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Arena displays and the stream overlay connect from several origins;
		// tighten this once the event network is pinned down.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeMatch subscribes the connection to one match's score events.
func (h *WebSocketHandler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	matchIDStr := chi.URLParam(r, "matchID")
	matchID, err := strconv.Atoi(matchIDStr)
	if err != nil || matchID <= 0 {
		http.Error(w, "Invalid matchID", http.StatusBadRequest)
		return
	}

	h.serve(w, r, live.MatchRoom(matchID))
}

// ServeScores subscribes the connection to every score event at the venue.
func (h *WebSocketHandler) ServeScores(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, live.RoomScores)
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error to the client
		log.Printf("Failed to upgrade connection for room %s: %v", roomID, err)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
