package certController

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"

	"certportal/certify"
	"certportal/middleware"
	"certportal/stores"
)

type Controller struct {
	pipeline *certify.Pipeline
	certs    stores.CertificateStore
}

func NewController(pipeline *certify.Pipeline, certs stores.CertificateStore) *Controller {
	return &Controller{pipeline: pipeline, certs: certs}
}

// Search resolves a free-text query to at most one certificate. Exact
// certId matches win over name matches.
func (ctl *Controller) Search(c *fiber.Ctx) error {
	q := c.Query("q")

	cert, err := ctl.pipeline.Lookup(q)
	if err != nil {
		if errors.Is(err, certify.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No certificate found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate found!", cert)
}

// Download streams the rendered PDF for a certificate. A record whose
// file has gone missing is reported as not found.
func (ctl *Controller) Download(c *fiber.Ctx) error {
	certID := c.Params("certId")

	cert, err := ctl.certs.FindByCertID(certID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate!", nil)
	}
	if cert == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if cert.PdfPath == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "PDF not found on server!", nil)
	}
	if _, err := os.Stat(cert.PdfPath); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "PDF not found on server!", nil)
	}

	return c.Download(cert.PdfPath, certID+".pdf")
}
