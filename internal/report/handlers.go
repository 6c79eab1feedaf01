package report

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type generateRequest struct {
	StudentIDs []string `json:"student_ids"`
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/excel", func(c *fiber.Ctx) error {
		var req generateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(req.StudentIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "student_ids required")
		}

		data, filename, err := svc.ExcelReport(c.Context(), req.StudentIDs)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return sendFile(c, data, filename)
	})

	r.Post("/pdf", func(c *fiber.Ctx) error {
		var req generateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(req.StudentIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "student_ids required")
		}

		data, filename, err := svc.PDFReports(c.Context(), req.StudentIDs)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return sendFile(c, data, filename)
	})
}

func sendFile(c *fiber.Ctx, data []byte, filename string) error {
	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(filename, ".xlsx"):
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case strings.HasSuffix(filename, ".pdf"):
		contentType = "application/pdf"
	case strings.HasSuffix(filename, ".zip"):
		contentType = "application/zip"
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
