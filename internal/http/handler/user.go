package handler

import (
	"docstore/internal/service"
	"github.com/gofiber/fiber/v2"
)

// CreateUser validates the body against the users insert shape before anything is stored.
//
// @Summary  Create a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    user body     object{username=string,password=string} true "New user"
// @Success  201  {object} model.User
// @Failure  400  {object} errorPayload
// @Failure  409  {object} errorPayload
// @Router   /users [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := decodeObject(c)
		if err != nil {
			return writeBodyError(c)
		}
		u, err := svc.Create(c.UserContext(), input)
		if err != nil {
			return writeServiceError(c, err, "user not found")
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// GetUser returns one user; the password hash is never serialized.
//
// @Summary  Get a user
// @Tags     users
// @Produce  json
// @Param    id  path     int true "User ID"
// @Success  200 {object} model.User
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /users/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "user not found")
		}
		return c.JSON(u)
	}
}
