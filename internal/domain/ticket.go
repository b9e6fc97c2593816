package domain

import "time"

// TicketStatus labels a ticket's lifecycle state. Status updates accept
// arbitrary non-empty strings; these constants cover the states the UI offers.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusBlocked    TicketStatus = "Blocked"
	TicketStatusDone       TicketStatus = "Done"
)

// Ticket is the tracked unit of work.
type Ticket struct {
	ID          int64
	Title       string
	Description *string
	Deadline    time.Time
	TeamMember  *string
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
