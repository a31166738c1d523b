package share

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/invites", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			RouteID   string `json:"route_id"`
			CreatedBy string `json:"created_by"`
		}
		if err := c.BodyParser(&body); err != nil || body.RouteID == "" || body.CreatedBy == "" {
			return fiber.NewError(fiber.StatusBadRequest, "route_id and created_by required")
		}
		invite, err := svc.CreateInvite(c.Context(), body.RouteID, body.CreatedBy)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(invite)
	})

	r.Post("/invites/accept", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Code   string `json:"code"`
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.Code == "" || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code and user_id required")
		}
		routeID, err := svc.Accept(c.Context(), body.Code, body.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "invite not found")
		}
		return c.JSON(fiber.Map{"route_id": routeID})
	})

	r.Get("/routes", authMiddleware, func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		routes, err := svc.SharedRoutes(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})

	r.Get("/routes/:id/members", func(c *fiber.Ctx) error {
		members, err := svc.Members(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(members)
	})
}
