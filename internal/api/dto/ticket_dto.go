package dto

import (
	"time"

	"github.com/clientdesk/ticket-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string  `json:"title"`
	Deadline    *string `json:"deadline"`
	Description *string `json:"description"`
	TeamMember  *string `json:"teamMember"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TeamMember string `json:"teamMember"`
}

// TicketResponse is the full ticket record on the wire. Deadline is an
// RFC 3339 UTC string.
type TicketResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Deadline    string              `json:"deadline"`
	TeamMember  *string             `json:"teamMember"`
	Status      domain.TicketStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// MessageResponse acknowledges an operation without returning a record.
type MessageResponse struct {
	Message string `json:"message"`
}

// TicketMutationResponse pairs an acknowledgment with the updated record.
type TicketMutationResponse struct {
	Message string         `json:"message"`
	Ticket  TicketResponse `json:"ticket"`
}
