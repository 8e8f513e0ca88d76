package controller

import (
	"makementors-be/internal/dto"
	"makementors-be/internal/pkg/serverutils"
	"makementors-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
	CreateCheckout(ctx *fiber.Ctx) error
	CustomerPortal(ctx *fiber.Ctx) error
	CheckSubscription(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type billingController struct {
	billingService service.IBillingService
}

func NewBillingController(billingService service.IBillingService) IBillingController {
	return &billingController{
		billingService: billingService,
	}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/billing/v1")

	// Stripe calls this one; it authenticates with its signature.
	h.Post("/webhook", c.Webhook)

	p := h.Group("")
	p.Use(serverutils.JwtMiddleware)
	p.Post("/checkout", c.CreateCheckout)
	p.Post("/portal", c.CustomerPortal)
	p.Get("/subscription", c.CheckSubscription)
}

func (c *billingController) CreateCheckout(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.billingService.CreateCheckout(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout session created", res))
}

func (c *billingController) CustomerPortal(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.billingService.CustomerPortal(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Portal session created", res))
}

func (c *billingController) CheckSubscription(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.billingService.CheckSubscription(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success check subscription", res))
}

func (c *billingController) Webhook(ctx *fiber.Ctx) error {
	payload := ctx.Body()
	signature := ctx.Get("Stripe-Signature")

	if err := c.billingService.HandleWebhook(ctx.Context(), payload, signature); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("ok", nil))
}
