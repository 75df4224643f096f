package certValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"certportal/certify"
	"certportal/middleware"
)

var validate = validator.New()

// CreateCertificate validates the single-issuance request body. CertID is
// optional; the pipeline derives one when it is absent.
func CreateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(certify.IssueRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.StudentName) == "" {
			errors["studentName"] = "Student name is required!"
		}

		if err := validate.Var(strings.TrimSpace(reqData.StudentEmail), "required,email"); err != nil {
			errors["studentEmail"] = "Valid student email is required!"
		}

		if strings.TrimSpace(reqData.CourseName) == "" {
			errors["courseName"] = "Course name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

// Search validates the lookup query parameter.
func Search() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Query("q")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Search query required!", nil)
		}
		return c.Next()
	}
}
