package adminController

import (
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"certportal/certify"
	"certportal/config"
	"certportal/middleware"
	"certportal/models"
	"certportal/stores"
	"certportal/utils"
)

type Controller struct {
	cfg      *config.Config
	pipeline *certify.Pipeline
	accounts stores.AccountStore
	certs    stores.CertificateStore
}

func NewController(cfg *config.Config, pipeline *certify.Pipeline, accounts stores.AccountStore, certs stores.CertificateStore) *Controller {
	return &Controller{cfg: cfg, pipeline: pipeline, accounts: accounts, certs: certs}
}

// BulkUpload processes an uploaded spreadsheet of student rows through
// the issuance pipeline and reports per-row outcomes. The batch itself
// always succeeds once the file parses; individual row failures land in
// the report, never in the HTTP status.
func (ctl *Controller) BulkUpload(c *fiber.Ctx) error {
	admin, ok := c.Locals("adminUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Excel file required!", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}
	defer file.Close()

	rows, err := parseSpreadsheetRows(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse Excel file!", nil)
	}

	result := ctl.pipeline.ProcessBatch(rows, admin.SignaturePath)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload processed!", result)
}

// parseSpreadsheetRows reads the first sheet of an xlsx file into raw
// rows keyed by the header cells. Missing trailing cells become empty
// strings; fully empty rows are dropped.
func parseSpreadsheetRows(r io.Reader) ([]certify.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	if len(excelRows) == 0 {
		return []certify.RawRow{}, nil
	}

	header := excelRows[0]
	var rows []certify.RawRow
	for i := 1; i < len(excelRows); i++ {
		row := certify.RawRow{}
		empty := true
		for j, key := range header {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			value := ""
			if j < len(excelRows[i]) {
				value = excelRows[i][j]
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			row[key] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// CreateCertificate issues a single certificate.
func (ctl *Controller) CreateCertificate(c *fiber.Ctx) error {
	admin, ok := c.Locals("adminUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCertificate").(*certify.IssueRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	cert, err := ctl.pipeline.IssueOne(*reqData, admin.SignaturePath)
	if err != nil {
		if errors.Is(err, certify.ErrMissingFields) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing fields!", nil)
		}
		if errors.Is(err, stores.ErrDuplicateCertID) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate ID already exists!", nil)
		}
		log.Printf("Error issuing certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate created successfully!", cert)
}

// ListCertificates returns the most recently issued certificates.
func (ctl *Controller) ListCertificates(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	certs, err := ctl.certs.ListRecent(limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certs,
		"total":        len(certs),
	})
}

// ListUsers returns all student accounts.
func (ctl *Controller) ListUsers(c *fiber.Ctx) error {
	users, err := ctl.accounts.ListStudents()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"total": len(users),
	})
}

// DeleteUser removes a student account. Admins cannot delete their own
// account.
func (ctl *Controller) DeleteUser(c *fiber.Ctx) error {
	admin, ok := c.Locals("adminUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	if uint(userID) == admin.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Admin cannot delete own account!", nil)
	}

	user, err := ctl.accounts.FindByID(uint(userID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := ctl.accounts.Delete(user.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// UploadSignature stores the acting admin's signature image, used when
// rendering certificates.
func (ctl *Controller) UploadSignature(c *fiber.Ctx) error {
	admin, ok := c.Locals("adminUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	fileHeader, err := c.FormFile("signature")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Signature image required!", nil)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only images allowed!", nil)
	}

	sigPath, err := utils.SaveUploadedFile(fileHeader, ctl.cfg.SignatureDir)
	if err != nil {
		log.Printf("Error saving signature: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save signature!", nil)
	}

	admin.SignaturePath = sigPath
	if err := ctl.accounts.Save(admin); err != nil {
		log.Printf("Error updating signature path: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save signature!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signature uploaded successfully!", fiber.Map{
		"signature_path": sigPath,
	})
}
