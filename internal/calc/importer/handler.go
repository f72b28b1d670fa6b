package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Davidson1997/bridge-calculator/internal/calc/assessment"
	"github.com/Davidson1997/bridge-calculator/internal/calc/batch"
	"github.com/Davidson1997/bridge-calculator/internal/calc/section"
)

type Handler struct{}

// Assess runs one assessment per spreadsheet row. Expected columns:
// bridge_type, material, grade, span_m, loading_type, loaded_width_m,
// lane_width_m, condition_factor, then the material dimension group —
// steel: flange_width_mm, flange_thickness_mm, web_thickness_mm, depth_mm;
// concrete: width_mm, depth_mm, bar_count, bar_diameter_mm, cover_mm;
// timber: width_mm, depth_mm. Rows that cannot be parsed are skipped.
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var inputs []assessment.Input
	for i := 1; i < len(rows); i++ {
		input, err := parseRow(rows[i])
		if err != nil {
			continue
		}
		inputs = append(inputs, input)
	}
	if len(inputs) == 0 {
		http.Error(w, "No parsable rows", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batch.Run(inputs))
}

func parseRow(row []string) (assessment.Input, error) {
	if len(row) < 10 {
		return assessment.Input{}, fmt.Errorf("row too short")
	}
	span, err := toFloat(row[3])
	if err != nil {
		return assessment.Input{}, err
	}
	loadedWidth, err := toFloat(row[5])
	if err != nil {
		return assessment.Input{}, err
	}
	laneWidth, err := toFloat(row[6])
	if err != nil {
		return assessment.Input{}, err
	}
	condition, err := toFloat(row[7])
	if err != nil {
		return assessment.Input{}, err
	}

	input := assessment.Input{
		BridgeType:      row[0],
		Material:        strings.ToLower(strings.TrimSpace(row[1])),
		Grade:           row[2],
		SpanM:           span,
		LoadingType:     strings.ToUpper(strings.TrimSpace(row[4])),
		LoadedWidthM:    loadedWidth,
		LaneWidthM:      laneWidth,
		ConditionFactor: condition,
	}

	dims := row[8:]
	switch input.Material {
	case "steel":
		if len(dims) < 4 {
			return assessment.Input{}, fmt.Errorf("steel row needs four dimensions")
		}
		if input.FlangeWidthMM, err = toFloat(dims[0]); err != nil {
			return assessment.Input{}, err
		}
		if input.FlangeThicknessMM, err = toFloat(dims[1]); err != nil {
			return assessment.Input{}, err
		}
		if input.WebThicknessMM, err = toFloat(dims[2]); err != nil {
			return assessment.Input{}, err
		}
		if input.SectionDepthMM, err = toFloat(dims[3]); err != nil {
			return assessment.Input{}, err
		}
	case "concrete":
		if len(dims) < 5 {
			return assessment.Input{}, fmt.Errorf("concrete row needs five dimensions")
		}
		if input.WidthMM, err = toFloat(dims[0]); err != nil {
			return assessment.Input{}, err
		}
		if input.DepthMM, err = toFloat(dims[1]); err != nil {
			return assessment.Input{}, err
		}
		count, err := toFloat(dims[2])
		if err != nil {
			return assessment.Input{}, err
		}
		diameter, err := toFloat(dims[3])
		if err != nil {
			return assessment.Input{}, err
		}
		cover, err := toFloat(dims[4])
		if err != nil {
			return assessment.Input{}, err
		}
		input.ReinforcementLayers = []section.RebarLayer{
			{Count: int(count), DiameterMM: diameter, CoverMM: cover},
		}
	case "timber":
		if len(dims) < 2 {
			return assessment.Input{}, fmt.Errorf("timber row needs two dimensions")
		}
		if input.WidthMM, err = toFloat(dims[0]); err != nil {
			return assessment.Input{}, err
		}
		if input.DepthMM, err = toFloat(dims[1]); err != nil {
			return assessment.Input{}, err
		}
	default:
		return assessment.Input{}, fmt.Errorf("material %q not recognised", input.Material)
	}
	return input, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
