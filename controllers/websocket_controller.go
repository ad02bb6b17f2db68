package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"SpeechLink/websocket"
)

var hub *websocket.Hub

func SetHub(h *websocket.Hub) {
	hub = h
}

// ServeWs upgrades the connection and attaches it to the realtime feed of
// the authenticated user.
func ServeWs(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := websocket.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WebSocket] upgrade failed for user %s: %v", uid, err)
		return
	}

	client := websocket.NewClient(hub, conn, uid)
	hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
