package organisation

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, cache *Cache) {
	r.Get("/", func(c *fiber.Ctx) error {
		orgs, err := cache.ListOrganisations(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(orgs)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req Organisation
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		org, err := cache.CreateOrganisation(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(org)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		org, err := cache.GetOrganisation(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(org)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := cache.DeleteOrganisation(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
