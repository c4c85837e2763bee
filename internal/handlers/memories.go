package handlers

import (
	"net/http"
	"strconv"

	"memories-backend/internal/models"
	"memories-backend/internal/services"
	"memories-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ListMemoriesHandler returns the authenticated user's timeline.
func ListMemoriesHandler(memories *services.MemoryService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		list, err := memories.List(c.Context(), userID)
		if err != nil {
			return errorResponse(c, log, err)
		}
		return c.JSON(list)
	}
}

// CreateMemoryHandler handles the multipart upload form: a "photo" file plus
// "date" and "description" fields. The file is written first; if the insert
// fails the file is removed again so no orphan survives a bad request.
func CreateMemoryHandler(memories *services.MemoryService, disk *storage.Disk, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		date := c.FormValue("date")
		description := c.FormValue("description")

		fileHeader, err := c.FormFile("photo")
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "photo file is required"})
		}

		filename := disk.Filename(fileHeader.Filename)
		if err := c.SaveFile(fileHeader, disk.Path(filename)); err != nil {
			log.Error().Err(err).Str("filename", filename).Msg("failed to save upload")
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save file"})
		}

		memory, err := memories.Create(c.Context(), userID, date, description, "/uploads/"+filename)
		if err != nil {
			// Try to cleanup file if DB insert fails
			if rmErr := disk.Remove(filename); rmErr != nil {
				log.Warn().Err(rmErr).Str("filename", filename).Msg("failed to remove orphaned upload")
			}
			return errorResponse(c, log, err)
		}

		return c.Status(http.StatusCreated).JSON(memory)
	}
}

// UpdateMemoryHandler edits date and description of an owned memory.
func UpdateMemoryHandler(memories *services.MemoryService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		memoryID, err := strconv.Atoi(c.Params("id"))
		if err != nil || memoryID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid memory id"})
		}

		var req models.UpdateMemoryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}

		memory, err := memories.Update(c.Context(), userID, memoryID, req.Date, req.Description)
		if err != nil {
			return errorResponse(c, log, err)
		}

		return c.JSON(memory)
	}
}

// DeleteMemoryHandler removes the row, then the photo file. The row delete is
// authoritative; a failed file removal is logged and the request still
// succeeds.
func DeleteMemoryHandler(memories *services.MemoryService, disk *storage.Disk, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)
		memoryID, err := strconv.Atoi(c.Params("id"))
		if err != nil || memoryID <= 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid memory id"})
		}

		photoPath, err := memories.Delete(c.Context(), userID, memoryID)
		if err != nil {
			return errorResponse(c, log, err)
		}

		if err := disk.Remove(photoPath); err != nil {
			log.Warn().Err(err).Str("photo", photoPath).Msg("failed to remove photo file")
		}

		return c.SendStatus(http.StatusNoContent)
	}
}
