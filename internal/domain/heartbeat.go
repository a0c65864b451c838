package domain

import "time"

// Heartbeat registra o fim de uma varredura do laço de uma conta
type Heartbeat struct {
	RunID     string    `json:"run_id"`
	AccountID string    `json:"account_id"`
	Sweep     int       `json:"sweep"`
	Rows      int       `json:"rows"`
	Handled   int       `json:"handled"`
	At        time.Time `json:"at"`
}

// Transition é publicada quando um handler muda o status de uma linha
type Transition struct {
	RunID     string    `json:"run_id"`
	AccountID string    `json:"account_id"`
	RowIndex  int       `json:"row_index"`
	RecordID  string    `json:"record_id"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	At        time.Time `json:"at"`
}
