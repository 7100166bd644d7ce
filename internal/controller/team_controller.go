package controller

import (
	"taskfeed-be/internal/dto"
	"taskfeed-be/internal/pkg/serverutils"
	"taskfeed-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITeamController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Members(ctx *fiber.Ctx) error
	AddMember(ctx *fiber.Ctx) error
	RemoveMember(ctx *fiber.Ctx) error
	CreateChat(ctx *fiber.Ctx) error
	AddChatMember(ctx *fiber.Ctx) error
	RemoveChatMember(ctx *fiber.Ctx) error
	DeleteChat(ctx *fiber.Ctx) error
}

type teamController struct {
	service     service.IInteractionService
	idempotency fiber.Handler
}

func NewTeamController(service service.IInteractionService, idempotency fiber.Handler) ITeamController {
	return &teamController{service: service, idempotency: idempotency}
}

func (c *teamController) RegisterRoutes(r fiber.Router) {
	teams := r.Group("/teams")
	teams.Use(serverutils.JwtMiddleware)
	teams.Get("", c.GetAll)
	teams.Post("", c.idempotency, c.Create)
	teams.Get("/:id/members", c.Members)
	teams.Post("/:id/members", c.AddMember)
	teams.Delete("/:id/members/:userId", c.RemoveMember)
	teams.Post("/:id/chats", c.CreateChat)

	chats := r.Group("/chats")
	chats.Use(serverutils.JwtMiddleware)
	chats.Post("/:id/members", c.AddChatMember)
	chats.Delete("/:id/members/:userId", c.RemoveChatMember)
	chats.Delete("/:id", c.DeleteChat)
}

func (c *teamController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateTeamRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateTeam(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create team", res))
}

func (c *teamController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListTeams(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all team", res))
}

func (c *teamController) Members(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	teamId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ListMembers(ctx.UserContext(), userId, teamId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get members", res))
}

func (c *teamController) AddMember(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	teamId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AddMember(ctx.UserContext(), userId, teamId, req.UserId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add member", res))
}

func (c *teamController) RemoveMember(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	teamId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	memberId, err := serverutils.ParamUUID(ctx, "userId")
	if err != nil {
		return err
	}

	res, err := c.service.RemoveMember(ctx.UserContext(), userId, teamId, memberId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success remove member", res))
}

func (c *teamController) CreateChat(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	teamId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.CreateChatRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateChat(ctx.UserContext(), userId, teamId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create chat", res))
}

func (c *teamController) AddChatMember(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AddMemberByChat(ctx.UserContext(), userId, chatId, req.UserId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add member", res))
}

func (c *teamController) RemoveChatMember(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	memberId, err := serverutils.ParamUUID(ctx, "userId")
	if err != nil {
		return err
	}

	res, err := c.service.RemoveMemberByChat(ctx.UserContext(), userId, chatId, memberId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success remove member", res))
}

func (c *teamController) DeleteChat(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	chatId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.DeleteChat(ctx.UserContext(), userId, chatId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete chat", res))
}
