package enquiries

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"trippens/db"
	"trippens/models"
	"trippens/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exportLimit = 1000

// GET /api/admin/enquiries/export?channel=&from=&to=&search=
//
// Renders the filtered enquiry list as a downloadable PDF, newest
// first, capped at exportLimit rows.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	filter, msg := listFilter(r.URL.Query())
	if msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(exportLimit)
	items, err := utils.FindAndDecode[models.Enquiry](ctx, db.EnquiriesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Enquiries")
	pdf.Ln(12)

	widths := []float64{28, 50, 35, 60, 20, 80}
	headers := []string{"Date", "Name", "Phone", "Email", "Channel", "Message"}

	pdf.SetFont("Arial", "B", 10)
	for i, head := range headers {
		pdf.CellFormat(widths[i], 8, head, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, enquiry := range items {
		row := []string{
			enquiry.CreatedAt.Format("2006-01-02 15:04"),
			enquiry.FullName,
			enquiry.Phone,
			enquiry.Email,
			enquiry.Channel,
			enquiry.Message,
		}
		for i, cell := range row {
			if len(cell) > 60 {
				cell = cell[:57] + "..."
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("enquiries-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
