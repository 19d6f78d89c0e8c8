package app

import (
	"time"

	"github.com/abhisek/studyflow/internal/session"
)

// resultMsg carries the outcome of an action started with a ticket.
type resultMsg struct {
	ticket session.Ticket
	value  any
	err    error
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time
