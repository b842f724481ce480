package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/campuskit/catview/internal/render"
)

// handleCatalog renders the catalog fragment. The pipeline always yields
// renderable HTML (success or inline error fragment), so the status is
// always 200.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	frag := s.renderer.Render(r.Context(), requestFromQuery(r))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(frag))
}

// handleCatalogMarkdown renders the fragment and converts it to Markdown.
func (s *Server) handleCatalogMarkdown(w http.ResponseWriter, r *http.Request) {
	frag := s.renderer.Render(r.Context(), requestFromQuery(r))
	md, err := render.Markdown(frag)
	if err != nil {
		s.log.Error("markdown conversion failed", "error", err)
		http.Error(w, "markdown conversion failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(md))
}

func requestFromQuery(r *http.Request) render.Request {
	q := r.URL.Query()
	return render.Request{
		URL:              q.Get("url"),
		Tabs:             q.Get("tabs"),
		RemoveParagraphs: parseRemoveList(q.Get("remove_paragraph")),
	}
}

// parseRemoveList parses the comma-separated 1-indexed paragraph removal
// list. Non-numeric, zero, and negative tokens are discarded.
func parseRemoveList(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []int
	for _, tok := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n < 1 {
			continue
		}
		out = append(out, n)
	}
	return out
}
