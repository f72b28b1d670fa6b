package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/Davidson1997/bridge-calculator/internal/calc/assessment"
)

// Input wraps one assessment with the sign-off metadata printed on the sheet.
type Input struct {
	Project    string           `json:"project"`
	Structure  string           `json:"structure"`
	Engineer   string           `json:"engineer"`
	Assessment assessment.Input `json:"assessment"`
}

type Handler struct{}

// Generate runs the assessment and streams the calculation sheet as a PDF:
// header, the ordered calculation narrative, the additional loads and the
// verdict.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	outcome := assessment.Run(input.Assessment)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Bridge Member Capacity Assessment")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Structure: %s", input.Structure))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Engineer: %s", input.Engineer))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	if outcome.Error != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Assessment could not be completed")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, outcome.Error, "", "L", false)
	} else {
		writeResult(pdf, outcome.Result)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"assessment.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func writeResult(pdf *gofpdf.Fpdf, res *assessment.Result) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s loading, span %.2f m", res.LoadingType, res.SpanM))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Calculation process")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	for _, step := range res.Steps {
		pdf.Cell(110, 5, step.Label)
		pdf.Cell(0, 5, fmt.Sprintf("%.3f %s", step.Value, step.Unit))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	if len(res.AdditionalLoads) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, "Additional loads")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		for _, lc := range res.AdditionalLoads {
			pdf.Cell(0, 5, fmt.Sprintf("%s: %.2f kN (%s, %s)", lc.Description, lc.MagnitudeKN, lc.Type, lc.Distribution))
			pdf.Ln(5)
		}
		pdf.Ln(5)
	}

	verdict := "FAIL"
	if res.Pass {
		verdict = "PASS"
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Verdict: %s", verdict))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Moment capacity %.2f kNm against demand %.2f kNm", res.MomentCapacityKNM, res.DeadMomentKNM+res.LiveMomentKNM))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Shear capacity %.2f kN against demand %.2f kN", res.ShearCapacityKN, res.DeadShearKN+res.LiveShearKN))
}
