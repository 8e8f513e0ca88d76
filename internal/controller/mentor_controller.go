package controller

import (
	"makementors-be/internal/dto"
	"makementors-be/internal/pkg/serverutils"
	"makementors-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMentorController interface {
	RegisterRoutes(r fiber.Router)
	GetTemplates(ctx *fiber.Ctx) error
	GetTemplateById(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type mentorController struct {
	mentorService service.IMentorService
}

func NewMentorController(mentorService service.IMentorService) IMentorController {
	return &mentorController{
		mentorService: mentorService,
	}
}

func (c *mentorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mentor/v1")
	// The template catalog is public; custom mentors need a login.
	h.Get("/templates", c.GetTemplates)
	h.Get("/templates/:id", c.GetTemplateById)

	p := h.Group("")
	p.Use(serverutils.JwtMiddleware)
	p.Post("", c.Create)
	p.Get("", c.List)
	p.Get(":id", c.Show)
	p.Put(":id", c.Update)
	p.Delete(":id", c.Delete)
}

func (c *mentorController) GetTemplates(ctx *fiber.Ctx) error {
	category := ctx.Query("category")

	res, err := c.mentorService.GetTemplates(ctx.Context(), category)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get mentor templates", res))
}

func (c *mentorController) GetTemplateById(ctx *fiber.Ctx) error {
	res, err := c.mentorService.GetTemplate(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get mentor template", res))
}

func (c *mentorController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateMentorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mentorService.CreateMentor(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create mentor", res))
}

func (c *mentorController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.mentorService.GetMentors(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get mentors", res))
}

func (c *mentorController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.mentorService.GetMentor(ctx.Context(), userId, id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get mentor", res))
}

func (c *mentorController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.UpdateMentorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mentorService.UpdateMentor(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update mentor", res))
}

func (c *mentorController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.mentorService.DeleteMentor(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete mentor", nil))
}
