package httpapi

import (
	"encoding/json"
	"net/http"

	"mentorhub-backend-go/internal/services"
)

func (s *Server) DiscoverRepositories(w http.ResponseWriter, r *http.Request) {
	var req services.DiscoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	result, err := s.Discovery.Discover(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
