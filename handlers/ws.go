// handlers/ws.go - Live session updates over websocket
package handlers

import (
	"log"
	"os"

	"quizdash/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// WebSocketUpgrade gates the /ws routes to websocket upgrade requests.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SessionWebSocket streams session snapshots to the owning user. Browsers
// cannot set headers on websocket connects, so the token rides in the
// query string.
var SessionWebSocket = websocket.New(func(conn *websocket.Conn) {
	defer conn.Close()

	userID, ok := wsAuthenticate(conn.Query("token"))
	if !ok {
		conn.WriteJSON(fiber.Map{"error": "Unauthorized"})
		return
	}

	s, found := services.GetSessionManager().Get(conn.Params("id"))
	if !found || s.UserID() != userID {
		conn.WriteJSON(fiber.Map{"error": "Session not found"})
		return
	}

	updates := s.Subscribe()
	defer s.Unsubscribe(updates)

	// Initial state so the client does not wait for the next change.
	if err := conn.WriteJSON(s.Snapshot()); err != nil {
		return
	}

	// Reader goroutine: drains client frames and signals disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snapshot, open := <-updates:
			if !open {
				return
			}
			if err := conn.WriteJSON(snapshot); err != nil {
				log.Printf("⚠️ WebSocket write failed for session %s: %v", s.ID(), err)
				return
			}
		case <-done:
			return
		}
	}
})

func wsAuthenticate(tokenString string) (uint, bool) {
	if tokenString == "" {
		return 0, false
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "quizdash-secret-change-in-production"
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}
