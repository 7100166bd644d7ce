package controller

import (
	"taskfeed-be/internal/pkg/serverutils"
	"taskfeed-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFollowController interface {
	RegisterRoutes(r fiber.Router)
	Follow(ctx *fiber.Ctx) error
	Unfollow(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type followController struct {
	service service.IInteractionService
}

func NewFollowController(service service.IInteractionService) IFollowController {
	return &followController{service: service}
}

func (c *followController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/:id/follow", c.Follow)
	h.Delete("/:id/follow", c.Unfollow)
	h.Get("/:id/follow", c.Stats)
}

func (c *followController) Follow(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	targetId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Follow(ctx.UserContext(), userId, targetId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success follow user", res))
}

func (c *followController) Unfollow(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	targetId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Unfollow(ctx.UserContext(), userId, targetId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success unfollow user", res))
}

func (c *followController) Stats(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	targetId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.FollowStats(ctx.UserContext(), userId, targetId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get follow stats", res))
}
