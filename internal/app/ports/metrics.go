package ports

import "ventia/internal/domain/dialog"

type ConversationMetrics interface {
	RecordTurn(status dialog.Status)
	RecordExtractionFallback()
	RecordConfirmationCommitted()
	RecordConfirmationCancelled()
	RecordConfirmationReprompted()
}
