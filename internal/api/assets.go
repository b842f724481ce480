package api

import "net/http"

// scrollScript is the client-side half of the navigation contract: rewritten
// in-page links call scrollToSection with the section-qualified unique id,
// which smooth-scrolls to the element carrying that data-section-id.
const scrollScript = `(function () {
  window.scrollToSection = function (id) {
    var el = document.querySelector('[data-section-id="' + id + '"]') ||
      document.getElementById(id);
    if (el && el.scrollIntoView) {
      el.scrollIntoView({ behavior: "smooth", block: "start" });
    }
  };
})();
`

func (s *Server) handleScrollScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(scrollScript))
}
