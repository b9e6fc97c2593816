package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/ticket-service/internal/domain"
)

func insertTicket(t *testing.T, repo TicketRepository, title string) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{Title: title, Status: domain.TicketStatusPending}
	require.NoError(t, repo.Insert(context.Background(), ticket))
	return ticket
}

func TestInsert_AssignsIncreasingIDs(t *testing.T) {
	repo := NewMemoryTicketRepository()

	first := insertTicket(t, repo, "first")
	second := insertTicket(t, repo, "second")
	third := insertTicket(t, repo, "third")

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(3), third.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, first.UpdatedAt.IsZero())
}

func TestInsert_IDsNotReusedAfterDelete(t *testing.T) {
	repo := NewMemoryTicketRepository()

	first := insertTicket(t, repo, "first")
	require.NoError(t, repo.Delete(context.Background(), first.ID))

	second := insertTicket(t, repo, "second")
	assert.Equal(t, int64(2), second.ID)
}

func TestList_ReturnsSnapshotInOrder(t *testing.T) {
	repo := NewMemoryTicketRepository()
	insertTicket(t, repo, "first")
	insertTicket(t, repo, "second")

	snapshot, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "first", snapshot[0].Title)
	assert.Equal(t, "second", snapshot[1].Title)

	// mutating the snapshot must not leak into the store
	snapshot[0].Title = "changed"
	stored, err := repo.GetByID(context.Background(), snapshot[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "first", stored.Title)
}

func TestGetByID(t *testing.T) {
	repo := NewMemoryTicketRepository()
	created := insertTicket(t, repo, "lookup")

	found, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	repo := NewMemoryTicketRepository()
	created := insertTicket(t, repo, "isolated")

	found, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	found.Title = "scribbled"

	again, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "isolated", again.Title)
}

func TestUpdate(t *testing.T) {
	repo := NewMemoryTicketRepository()
	created := insertTicket(t, repo, "pending")

	created.Status = domain.TicketStatusDone
	require.NoError(t, repo.Update(context.Background(), created))

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusDone, stored.Status)

	missing := &domain.Ticket{ID: 999, Title: "ghost"}
	assert.ErrorIs(t, repo.Update(context.Background(), missing), ErrTicketNotFound)
}

func TestDelete(t *testing.T) {
	repo := NewMemoryTicketRepository()
	created := insertTicket(t, repo, "doomed")

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	snapshot, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	assert.ErrorIs(t, repo.Delete(context.Background(), created.ID), ErrTicketNotFound)
}
