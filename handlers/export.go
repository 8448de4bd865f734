package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"github.com/Alphy12345/Alp-version-hal-cost-estimation/api"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/types"
)

// Page layout (A4 portrait, mm).
const (
	pdfMargin     = 15.0
	pdfPageWidth  = 210.0
	pdfLabelWidth = 90.0
	pdfRowHeight  = 7.0
)

// ExportPDF re-runs validation and the calculation, then streams the
// breakdown as a PDF quote sheet.
func (h *Handler) ExportPDF(c *gin.Context) {
	var form types.EstimateForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form input")
		return
	}
	if err := form.Validate(); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	raw, err := h.API.Calculate(c.Request.Context(), form.ToRequest())
	if err != nil {
		logrus.WithError(err).Warn("calculate for pdf export failed")
		c.String(http.StatusBadGateway, api.Message(err))
		return
	}

	total, rows, err := breakdownRows(raw)
	if err != nil {
		c.String(http.StatusBadGateway, "Received an unreadable response from the cost estimation service")
		return
	}

	pdf := buildEstimatePDF(form, total, rows)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="cost-estimate.pdf"`)
	if err := pdf.Output(c.Writer); err != nil {
		logrus.WithError(err).Error("write pdf")
	}
}

func buildEstimatePDF(form types.EstimateForm, total string, rows []DisplayRow) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	contentWidth := pdfPageWidth - 2*pdfMargin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth, 10, "Cost Estimate", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentWidth, 5, time.Now().Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Inputs summary
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidth, pdfRowHeight, "Inputs", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	inputs := []DisplayRow{
		{Label: "Operation Type", Value: form.OperationType},
		{Label: "Material", Value: form.Material},
		{Label: "Machine", Value: form.MachineName},
		{Label: "Length (mm)", Value: trimFloat(form.Length)},
	}
	if form.Diameter > 0 {
		inputs = append(inputs, DisplayRow{Label: "Diameter (mm)", Value: trimFloat(form.Diameter)})
	}
	if form.Breadth > 0 {
		inputs = append(inputs, DisplayRow{Label: "Breadth (mm)", Value: trimFloat(form.Breadth)})
	}
	if form.Height > 0 {
		inputs = append(inputs, DisplayRow{Label: "Height (mm)", Value: trimFloat(form.Height)})
	}
	inputs = append(inputs, DisplayRow{Label: "Man Hours Per Unit", Value: trimFloat(form.ManHoursPerUnit)})

	writeRows(pdf, inputs)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidth, pdfRowHeight, "Breakdown", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	writeRows(pdf, rows)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(pdfLabelWidth, 8, "Total Cost (per unit)", "T", 0, "L", true, 0, "")
	pdf.CellFormat(contentWidth-pdfLabelWidth, 8, pdfText(total), "T", 1, "R", true, 0, "")

	return pdf
}

func writeRows(pdf *fpdf.Fpdf, rows []DisplayRow) {
	contentWidth := pdfPageWidth - 2*pdfMargin
	for _, r := range rows {
		pdf.CellFormat(pdfLabelWidth, pdfRowHeight, pdfText(r.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth-pdfLabelWidth, pdfRowHeight, pdfText(r.Value), "", 1, "R", false, 0, "")
	}
}

// pdfText makes a display string safe for the core fonts: the rupee glyph
// is not in cp1252, and the path separator arrow is not either.
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "₹", "Rs ")
	return strings.ReplaceAll(s, " › ", " / ")
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
}
