package history

import "ventia/internal/app/ports"

type Request struct {
	SessionID string
	Limit     int
}

type Response struct {
	SessionID string             `json:"session_id"`
	Turns     []ports.TurnRecord `json:"turns"`
}
