package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchstack-dev/matchstack/internal/api/dto"
	"github.com/matchstack-dev/matchstack/internal/service"
	"github.com/matchstack-dev/matchstack/internal/validator"
)

// ConversationHandler exposes match messaging.
type ConversationHandler struct {
	conversations *service.ConversationService
	validate      *validator.Validator
}

// NewConversationHandler constructs handler.
func NewConversationHandler(conversations *service.ConversationService, v *validator.Validator) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, validate: v}
}

// Open handles GET /matches/:id/conversation.
func (h *ConversationHandler) Open(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	view, err := h.conversations.Open(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	role, _ := view.Access.SenderRole()
	return data(c, http.StatusOK, dto.ConversationResponse{
		Match:       dto.NewMatchPartiesResponse(view.Parties),
		Role:        role,
		Counterpart: view.Counterpart(),
		Messages:    dto.NewMessagesResponse(view.Messages),
	})
}

// Messages handles GET /matches/:id/messages.
func (h *ConversationHandler) Messages(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	messages, err := h.conversations.Messages(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewMessagesResponse(messages))
}

// Send handles POST /matches/:id/messages.
func (h *ConversationHandler) Send(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	msg, err := h.conversations.Send(c.UserContext(), userID, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewMessageResponse(msg))
}
