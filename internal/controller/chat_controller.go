package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"makementors-be/internal/constant"
	"makementors-be/internal/dto"
	"makementors-be/internal/pkg/serverutils"
	"makementors-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Stream(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")

	// The relay endpoint also serves logged-out visitors; the optional
	// middleware attaches user_id when a valid token is present.
	h.Post("/stream", serverutils.OptionalJwtMiddleware, c.Stream)

	s := h.Group("/sessions")
	s.Use(serverutils.JwtMiddleware)
	s.Post("", c.CreateSession)
	s.Get("", c.GetAllSessions)
	s.Get(":id/messages", c.GetChatHistory)
	s.Put(":id", c.RenameSession)
	s.Delete(":id", c.DeleteSession)
}

// optionalUserId reads the user id set by OptionalJwtMiddleware; nil
// means an anonymous request.
func optionalUserId(ctx *fiber.Ctx) *uuid.UUID {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok || raw == "" {
		return nil
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &userId
}

// Stream is the heart of the app: one conversation turn relayed to the
// LLM and streamed back as SSE. Each event carries the cumulative text
// so far; the stream ends with a [DONE] sentinel.
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	var req dto.StreamChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId := optionalUserId(ctx)

	prep, err := c.chatService.PrepareStream(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if !req.Stream {
		res, err := c.chatService.Chat(ctx.Context(), prep)
		if err != nil {
			return err
		}
		return ctx.JSON(res)
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")
	if prep.HasSession {
		ctx.Set("X-Chat-Session-Id", prep.SessionId.String())
	}

	// The writer runs after this handler returns, so the fiber context
	// must not be touched inside it. Client disconnects surface as
	// flush errors, which the relay treats as cancellation.
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		streamCtx := context.Background()
		c.chatService.StreamChat(streamCtx, prep, func(chunk dto.StreamChunk) error {
			if chunk.Done {
				fmt.Fprintf(w, "data: %s\n\n", constant.StreamDoneSentinel)
				return w.Flush()
			}
			payload, err := json.Marshal(chunk)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			return w.Flush()
		})
	}))
	return nil
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) GetAllSessions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.chatService.GetAllSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	res, err := c.chatService.GetChatHistory(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) RenameSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ChatSessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.RenameSession(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename session", nil))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	if err := c.chatService.DeleteSession(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}
