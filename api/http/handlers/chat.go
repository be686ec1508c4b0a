package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/chat"
	"github.com/rozgaar/backend/pkg/security/jwt"
	"github.com/rozgaar/backend/pkg/users"
)

type ChatHandler struct{ svc chat.UseCase }

func NewChatHandler(svc chat.UseCase) *ChatHandler { return &ChatHandler{svc: svc} }

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// Chat answers a career question and routes learning intents.
// @Summary Career assistant
// @Description Without a token or a valid userId the assistant gives advice only.
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body chatRequest true "Message and optional user id"
// @Success 200 {object} chat.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON")
	}
	var caller *users.User
	if u, ok := jwt.UserFrom(c); ok {
		caller = &u
	} else if id, err := uuid.Parse(req.UserID); err == nil {
		caller = &users.User{ID: id}
	}
	resp, err := h.svc.Handle(c.Context(), chat.Request{Message: req.Message, User: caller})
	if err != nil {
		return fail(c, err, "Failed to process message")
	}
	return presenter.JSON(c, http.StatusOK, resp)
}
