package models

// TransferEvent is the payload published to Kafka for every created
// transaction, including reversals.
type TransferEvent struct {
	EventID        string `json:"event_id"`          // Unique event identifier
	TransactionID  int64  `json:"transaction_id"`    // Persisted transaction row id
	Amount         string `json:"amount"`            // Decimal-formatted transfer value
	SentFromUserID int64  `json:"sent_from_user_id"` // Sender
	SentToUserID   int64  `json:"sent_to_user_id"`   // Recipient
	Reversed       bool   `json:"reversed"`          // Whether this row is a counter-entry
	Operation      string `json:"operation"`         // "transfer" or "reversal"
	Timestamp      int64  `json:"timestamp"`         // Unix timestamp (seconds)
}
