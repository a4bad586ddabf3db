package converse

import "ventia/internal/domain/dialog"

type Request struct {
	SessionID string
	Message   string
}

type Response struct {
	SessionID string            `json:"session_id"`
	Result    dialog.TurnResult `json:"result"`
}
