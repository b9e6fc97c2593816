package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clientdesk/ticket-service/internal/domain"
	"github.com/clientdesk/ticket-service/internal/events"
	"github.com/clientdesk/ticket-service/internal/repository"
	apperrors "github.com/clientdesk/ticket-service/pkg/util"
)

const defaultDeadlineWindow = 24 * time.Hour

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	assigner   *AssignmentService
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Assigner   *AssignmentService
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description *string
	Deadline    *time.Time
	TeamMember  *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		assigner:   deps.Assigner,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates input, fills defaults, resolves an assignee when none
// is supplied and stores the new ticket.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}

	deadline := time.Now().Add(defaultDeadlineWindow)
	if input.Deadline != nil {
		deadline = *input.Deadline
	}

	teamMember := input.TeamMember
	if teamMember == nil || strings.TrimSpace(*teamMember) == "" {
		description := ""
		if input.Description != nil {
			description = *input.Description
		}
		teamMember = s.assigner.Resolve(title, description)
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: input.Description,
		Deadline:    deadline,
		TeamMember:  teamMember,
		Status:      domain.TicketStatusPending,
	}
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.EventTicketCreated, ticket.ID, events.TicketCreatedPayload{
		Title:      ticket.Title,
		TeamMember: ticket.TeamMember,
		Deadline:   ticket.Deadline,
	})
	return ticket, nil
}

// ListTickets returns all tickets in creation order.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches a single ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// UpdateStatus mutates only the status field of the matching ticket.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Ticket, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperrors.NewValidationError("status is required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatus(status)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.EventTicketStatusChanged, ticket.ID, events.TicketStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: ticket.Status,
	})
	return ticket, nil
}

// AssignTicket mutates only the team member field of the matching ticket.
func (s *TicketService) AssignTicket(ctx context.Context, id int64, teamMember string) (*domain.Ticket, error) {
	if strings.TrimSpace(teamMember) == "" {
		return nil, apperrors.NewValidationError("teamMember is required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	oldTeamMember := ticket.TeamMember
	ticket.TeamMember = &teamMember
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.EventTicketAssigned, ticket.ID, events.TicketAssignedPayload{
		OldTeamMember: oldTeamMember,
		TeamMember:    teamMember,
	})
	return ticket, nil
}

// DeleteTicket removes the ticket entirely.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return apperrors.MapError(err)
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.EventTicketDeleted, id, events.TicketDeletedPayload{
		Title: ticket.Title,
	})
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, eventType events.EventType, ticketID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
