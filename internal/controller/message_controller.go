package controller

import (
	"taskfeed-be/internal/dto"
	"taskfeed-be/internal/pkg/serverutils"
	"taskfeed-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Replies(ctx *fiber.Ctx) error
	SetReaction(ctx *fiber.Ctx) error
	ClearReaction(ctx *fiber.Ctx) error
}

type messageController struct {
	service     service.IInteractionService
	idempotency fiber.Handler
}

func NewMessageController(service service.IInteractionService, idempotency fiber.Handler) IMessageController {
	return &messageController{service: service, idempotency: idempotency}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/messages")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.idempotency, c.Create)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/replies", c.Replies)
	h.Post("/:id/reaction", c.SetReaction)
	h.Delete("/:id/reaction", c.ClearReaction)
}

func (c *messageController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateMessageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.PostMessage(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create message", res))
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	authorId, err := serverutils.QueryUUID(ctx, "author_id")
	if err != nil {
		return err
	}
	chatId, err := serverutils.QueryUUID(ctx, "chat_id")
	if err != nil {
		return err
	}

	res, err := c.service.ListMessages(ctx.UserContext(), userId, dto.ListMessagesQuery{
		AuthorId: authorId,
		ChatId:   chatId,
		Query:    ctx.Query("q"),
		Cursor:   ctx.Query("cursor"),
		PageSize: ctx.QueryInt("page_size", 0),
	})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *messageController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetMessage(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show message", res))
}

func (c *messageController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.DeleteMessage(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete message", res))
}

func (c *messageController) Replies(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ListReplies(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get replies", res))
}

func (c *messageController) SetReaction(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.SetReaction(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set reaction", res))
}

func (c *messageController) ClearReaction(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ClearReaction(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear reaction", res))
}
