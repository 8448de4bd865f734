package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPDF(t *testing.T) {
	fb := newFakeBackend(t)
	r := newTestRouter(t, fb)

	w := postForm(r, "/estimate/pdf", validTurningValues())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "cost-estimate.pdf")
	assert.True(t, len(w.Body.Bytes()) > 4 && string(w.Body.Bytes()[:5]) == "%PDF-",
		"response should be a PDF document")
	assert.Equal(t, 1, fb.calculateHits)
}

func TestExportPDFValidationFailure(t *testing.T) {
	fb := newFakeBackend(t)
	r := newTestRouter(t, fb)

	form := validTurningValues()
	form.Set("length", "0")

	w := postForm(r, "/estimate/pdf", form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Length must be a positive number")
	assert.Equal(t, 0, fb.calculateHits)
}

func TestPDFTextReplacesUnsupportedGlyphs(t *testing.T) {
	assert.Equal(t, "Rs 1,234.50", pdfText("₹1,234.50"))
	assert.Equal(t, "Cost Breakdown / Unit Cost", pdfText("Cost Breakdown › Unit Cost"))
}
