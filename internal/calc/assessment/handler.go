package assessment

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

// Assess runs one assessment. The engine never fails past its own boundary:
// a bad parameter set still yields 200 with an error outcome, only malformed
// JSON is a 400.
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	outcome := Run(input)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outcome)
}
