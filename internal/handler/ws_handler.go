/*
Package handler provides the HTTP handler function for the transcript WebSocket.

This file contains HandleTranscriptSocket, which authenticates the chat token,
upgrades the connection, and streams transcript-changed frames for the token
holder's session until the client disconnects.
*/
package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"supportchat/internal/pkg/auth/jwt"
	"supportchat/internal/pkg/errs"
	"supportchat/internal/pkg/logx"
	"supportchat/internal/pkg/resp"
)

const (
	// timeout duration for writing a frame to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// clients never send application frames on this socket; anything beyond
	// control-frame size is a protocol violation.
	maxSocketReadBytes = 512
)

// HandleTranscriptSocket creates an HTTP HandlerFunc that upgrades the request
// to a WebSocket and pushes every message appended to the token holder's
// session. The socket is push-only: the widget sends messages over the REST
// endpoint and re-fetches the transcript on reconnect, so a dropped frame is
// recovered by the next full fetch.
func HandleTranscriptSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Browsers cannot set an Authorization header on a WebSocket dial, so
		// the chat token travels as a query parameter here.
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		payload, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket connection rejected: invalid chat token", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		frames, cancel := deps.Hub.Subscribe(payload.SessionID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			cancel()
			logx.Error(err, "Failed to upgrade connection to WebSocket", "session_id", payload.SessionID)
			return
		}

		logx.Info("Transcript socket established", "session_id", payload.SessionID, "guest_id", payload.GuestID)

		done := make(chan struct{})

		// Read loop: the client sends no application frames, but reading is
		// required to process control frames and observe the close.
		go func() {
			defer close(done)

			conn.SetReadLimit(maxSocketReadBytes)
			conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				conn.SetReadDeadline(time.Now().Add(pongWait))
				return nil
			})

			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer func() {
			ticker.Stop()
			cancel()
			conn.Close()
			logx.Info("Transcript socket closed", "session_id", payload.SessionID)
		}()

		for {
			select {
			case message := <-frames:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(message); err != nil {
					logx.Warn("Transcript socket write failed", "session_id", payload.SessionID, "error", err)
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
