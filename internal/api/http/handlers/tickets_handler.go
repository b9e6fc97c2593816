package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clientdesk/ticket-service/internal/api/dto"
	"github.com/clientdesk/ticket-service/internal/domain"
	"github.com/clientdesk/ticket-service/internal/service"
	apperrors "github.com/clientdesk/ticket-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title is required", nil)
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return apperrors.NewValidationError("deadline must be a valid date-time", map[string]any{"deadline": *req.Deadline})
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		TeamMember:  req.TeamMember,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ticketResponse(ticket))
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(items)
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status is required", nil)
	}
	ticket, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketMutationResponse{
		Message: "Ticket status updated successfully",
		Ticket:  ticketResponse(ticket),
	})
}

// AssignTicket PATCH /tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TeamMember == "" {
		return apperrors.NewValidationError("teamMember is required", nil)
	}
	ticket, err := h.service.AssignTicket(c.UserContext(), id, req.TeamMember)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketMutationResponse{
		Message: "Ticket assigned successfully",
		Ticket:  ticketResponse(ticket),
	})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Ticket deleted successfully"})
}

// parseTicketID reads the :id path segment. Non-numeric ids are treated the
// same as unknown ids and surface as not found.
func parseTicketID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": raw})
	}
	return id, nil
}

func parseDeadline(val *string) (*time.Time, error) {
	if val == nil || *val == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *val)
	if err != nil {
		// the browser form submits bare dates
		t, err = time.Parse("2006-01-02", *val)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Deadline:    ticket.Deadline.UTC().Format(time.RFC3339),
		TeamMember:  ticket.TeamMember,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}
