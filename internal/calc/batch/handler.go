package batch

import (
	"encoding/json"
	"net/http"

	"github.com/Davidson1997/bridge-calculator/internal/calc/assessment"
)

type Handler struct{}

func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var inputs []assessment.Input
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(inputs) == 0 {
		http.Error(w, "Empty batch", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Run(inputs))
}
