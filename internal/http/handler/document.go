package handler

import (
	"strconv"

	"docstore/internal/service"
	"github.com/gofiber/fiber/v2"
)

// CreateDocument stores a document given as JSON; mimeType is optional.
//
// @Summary  Create a document
// @Tags     documents
// @Accept   json
// @Produce  json
// @Param    document body     object{filename=string,data=string,size=int,mimeType=string} true "New document"
// @Success  201      {object} model.Document
// @Failure  400      {object} errorPayload
// @Router   /documents [post]
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := decodeObject(c)
		if err != nil {
			return writeBodyError(c)
		}
		doc, err := svc.Create(c.UserContext(), input)
		if err != nil {
			return writeServiceError(c, err, "document not found")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns a document by ID.
//
// @Summary  Get a document
// @Tags     documents
// @Produce  json
// @Param    id  path     int true "Document ID"
// @Success  200 {object} model.Document
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "document not found")
		}
		return c.JSON(doc)
	}
}

// ListDocuments lists documents with limit & offset.
//
// @Summary  List documents
// @Tags     documents
// @Produce  json
// @Param    limit  query    int false "Page size, at most 100" default(10) maximum(100)
// @Param    offset query    int false "Offset"    default(0)
// @Success  200    {object} service.DocumentListResult
// @Failure  400    {object} errorPayload
// @Router   /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
