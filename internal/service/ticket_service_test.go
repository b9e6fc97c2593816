package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/ticket-service/internal/domain"
	"github.com/clientdesk/ticket-service/internal/events"
	"github.com/clientdesk/ticket-service/internal/repository"
	apperrors "github.com/clientdesk/ticket-service/pkg/util"
)

func newTestTicketService() *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo: repository.NewMemoryTicketRepository(),
		Assigner:   NewAssignmentService(DefaultSkillCategories()),
		Dispatcher: events.NewInMemoryDispatcher(),
	})
}

func ptrString(s string) *string {
	return &s
}

func TestCreateTicket_Defaults(t *testing.T) {
	svc := newTestTicketService()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{Title: "Nothing matches"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), ticket.ID)
	assert.Equal(t, domain.TicketStatusPending, ticket.Status)
	assert.Nil(t, ticket.Description)
	assert.Nil(t, ticket.TeamMember)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), ticket.Deadline, 5*time.Second)
}

func TestCreateTicket_EmptyTitle(t *testing.T) {
	svc := newTestTicketService()

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{Title: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateTicket_AutoAssigns(t *testing.T) {
	svc := newTestTicketService()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Fix UI bug",
		Description: ptrString("The login button is misaligned"),
	})
	require.NoError(t, err)
	require.NotNil(t, ticket.TeamMember)
	assert.Equal(t, "Alice", *ticket.TeamMember)
}

func TestCreateTicket_ExplicitAssigneeWins(t *testing.T) {
	svc := newTestTicketService()

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Fix UI bug",
		TeamMember: ptrString("Bob"),
	})
	require.NoError(t, err)
	require.NotNil(t, ticket.TeamMember)
	assert.Equal(t, "Bob", *ticket.TeamMember)
}

func TestCreateTicket_ExplicitDeadlineKept(t *testing.T) {
	svc := newTestTicketService()

	deadline := time.Date(2027, 1, 2, 15, 4, 5, 0, time.UTC)
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:    "Plan release",
		Deadline: &deadline,
	})
	require.NoError(t, err)
	assert.True(t, ticket.Deadline.Equal(deadline))
}

func TestUpdateStatus_OnlyTouchesStatus(t *testing.T) {
	svc := newTestTicketService()

	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Fix UI bug",
		TeamMember: ptrString("Alice"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, "Done")
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusDone, updated.Status)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Title, updated.Title)
	require.NotNil(t, updated.TeamMember)
	assert.Equal(t, "Alice", *updated.TeamMember)
}

func TestUpdateStatus_PermissiveLabels(t *testing.T) {
	svc := newTestTicketService()

	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{Title: "Triage"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, "Waiting on vendor")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatus("Waiting on vendor"), updated.Status)
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc := newTestTicketService()

	_, err := svc.UpdateStatus(context.Background(), 999, "Done")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{Title: "Triage"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAssignTicket(t *testing.T) {
	svc := newTestTicketService()

	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{Title: "Nothing matches"})
	require.NoError(t, err)
	require.Nil(t, created.TeamMember)

	updated, err := svc.AssignTicket(context.Background(), created.ID, "Bob")
	require.NoError(t, err)
	require.NotNil(t, updated.TeamMember)
	assert.Equal(t, "Bob", *updated.TeamMember)

	_, err = svc.AssignTicket(context.Background(), created.ID, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.AssignTicket(context.Background(), 999, "Bob")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDeleteTicket(t *testing.T) {
	svc := newTestTicketService()

	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{Title: "Throwaway"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTicket(context.Background(), created.ID))

	tickets, err := svc.ListTickets(context.Background())
	require.NoError(t, err)
	for _, ticket := range tickets {
		assert.NotEqual(t, created.ID, ticket.ID)
	}

	err = svc.DeleteTicket(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestCreateTicket_PublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		seen = append(seen, event)
		return nil
	})
	svc := NewTicketService(TicketDependencies{
		TicketRepo: repository.NewMemoryTicketRepository(),
		Assigner:   NewAssignmentService(DefaultSkillCategories()),
		Dispatcher: dispatcher,
	})

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{Title: "Anything"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, ticket.ID, seen[0].TicketID)
	assert.NotEmpty(t, seen[0].ID)
}
