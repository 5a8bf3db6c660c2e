package handlers

import (
	"encoding/json"
	"net/http"
)

func pathParam(r *http.Request, name string) string {
	return r.PathValue(name)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
