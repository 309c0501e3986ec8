package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"summarizer": map[string]any{
			"model": s.summarizer.Model,
			"stats": s.summarizer.Latency.Snapshot(),
		},
		"llm": map[string]any{
			"model": s.llm.Model,
			"stats": s.llm.Latency.Snapshot(),
		},
	})
}
