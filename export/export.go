package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"roamio/lists"
	"roamio/middleware"
	"roamio/store"
	"roamio/trip"
	"roamio/utils"
)

// Handler renders a saved trip as a printable PDF itinerary with a share
// QR that deep-links the first stop on a map.
type Handler struct {
	backend store.Backend
}

func NewHandler(b store.Backend) *Handler {
	return &Handler{backend: b}
}

// GET /api/trips/:id/print
func (h *Handler) PrintTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenantID := middleware.TenantID(r)
	st := store.New(tenantID, h.backend)

	saved, ok := lists.NewTrips(st).Get(r.Context(), ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Trip Itinerary")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, saved.Summary)
	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Created %s, %d stops, %s",
		time.Unix(saved.CreatedAt, 0).Format("2 Jan 2006"), len(saved.Timeline), saved.Status))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	for i, leg := range saved.Timeline {
		pdf.Cell(0, 8, fmt.Sprintf("%d. %s", i+1, leg.To.Name))
		pdf.Ln(7)
		if leg.Mode != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.Cell(0, 6, "   via "+leg.Mode)
			pdf.Ln(6)
			pdf.SetFont("Arial", "", 12)
		}
	}

	if len(saved.Timeline) > 0 {
		qrPNG, err := qrcode.Encode(trip.MapLink(saved.Timeline[0]), qrcode.Medium, 256)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(qrPNG))
			pdf.Ln(8)
			pdf.SetFont("Arial", "I", 9)
			pdf.Cell(0, 6, "Scan to open the first stop in your maps app:")
			pdf.Ln(6)
			pdf.ImageOptions("share-qr", pdf.GetX(), pdf.GetY(), 40, 40, false, opts, 0, "")
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.pdf"`, saved.ID))
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
	}
}
