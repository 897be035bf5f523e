// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the game handler. These provide
// more specific reasons for closure than the standard codes. Identity
// failures happen before the upgrade and surface as plain HTTP errors,
// so no close code exists for them.
const (
	BadSubprotocolError = 3000 // Client connected with an unsupported subprotocol.
)
