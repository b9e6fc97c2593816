package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/clientdesk/ticket-service/internal/domain"
)

// ErrTicketNotFound signals that no ticket matches the requested id.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepository stores tickets and hands out unique identifiers.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
}

// memoryTicketRepository keeps tickets in creation order in process memory.
// A single mutex guards the collection and the id counter; ids are strictly
// increasing and never reused, even after deletes.
type memoryTicketRepository struct {
	mu      sync.Mutex
	tickets []domain.Ticket
	nextID  int64
}

// NewMemoryTicketRepository creates an empty in-memory repository.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{nextID: 1}
}

// Insert assigns the next id, stamps timestamps and appends the ticket.
func (r *memoryTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	ticket.ID = r.nextID
	r.nextID++
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets = append(r.tickets, *ticket)
	return nil
}

// List returns a point-in-time snapshot of all tickets in creation order.
func (r *memoryTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Ticket, len(r.tickets))
	copy(out, r.tickets)
	return out, nil
}

// GetByID returns a copy of the matching ticket.
func (r *memoryTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if r.tickets[i].ID == id {
			ticket := r.tickets[i]
			return &ticket, nil
		}
	}
	return nil, ErrTicketNotFound
}

// Update writes the ticket back by id, refreshing UpdatedAt.
func (r *memoryTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if r.tickets[i].ID == ticket.ID {
			ticket.UpdatedAt = time.Now()
			r.tickets[i] = *ticket
			return nil
		}
	}
	return ErrTicketNotFound
}

// Delete removes the ticket entirely. The id is not reused.
func (r *memoryTicketRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return nil
		}
	}
	return ErrTicketNotFound
}
