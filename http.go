package securechat

import (
	"encoding/json"
	"net/http"

	"github.com/securechat/securechat/contract"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, contract.ErrorResponse{Error: msg})
}
