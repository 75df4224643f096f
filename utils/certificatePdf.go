package utils

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"certportal/models"
)

// PdfRenderer writes certificate PDFs under OutDir. It satisfies the
// certify.Renderer interface.
type PdfRenderer struct {
	OutDir string
}

// Render produces the certificate document for cert and returns its path.
// When signaturePath points at a readable PNG/JPEG, the image is embedded
// bottom-right with a caption; anything else falls back to a textual
// placeholder line rather than failing the document.
func (r *PdfRenderer) Render(cert *models.Certificate, signaturePath string) (string, error) {
	if err := os.MkdirAll(r.OutDir, 0755); err != nil {
		return "", err
	}
	outPath := filepath.Join(r.OutDir, cert.CertID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 22)
	pdf.CellFormat(0, 11, cert.StudentName, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, cert.CourseName, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	if cert.Grade != "" {
		pdf.SetFont("Helvetica", "", 14)
		pdf.CellFormat(0, 8, "Grade: "+cert.Grade, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Certificate ID: "+cert.CertID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Issue Date: "+cert.IssueDate.Format("02 Jan 2006"), "", 1, "L", false, 0, "")

	if imgType, ok := decodableImage(signaturePath); ok {
		const sigW, sigH = 50.0, 20.0
		pageW, pageH := pdf.GetPageSize()
		_, _, rightMargin, bottomMargin := pdf.GetMargins()
		x := pageW - rightMargin - sigW
		y := pageH - bottomMargin - sigH - 15

		opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
		pdf.ImageOptions(signaturePath, x, y, sigW, sigH, false, opts, 0, "")
		pdf.SetXY(x, y+sigH+2)
		pdf.CellFormat(sigW, 5, "Authorized Signature", "", 0, "C", false, 0, "")
	} else {
		pdf.Ln(20)
		pdf.CellFormat(0, 5, "Signature: ____________________", "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", err
	}

	return outPath, nil
}

// decodableImage reports whether path exists and decodes as a PNG or
// JPEG, returning the gofpdf image type name.
func decodableImage(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", false
	}

	switch format {
	case "png":
		return "PNG", true
	case "jpeg":
		return "JPEG", true
	default:
		return "", false
	}
}
