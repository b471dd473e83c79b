package web

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/portfolio/portfolio-api/internal/pkg/response"
)

// SPA serves the front-end build from dir. Existing files are served as
// they are; any other path gets index.html so client-side routing works.
// Paths under /api/ never fall back and answer with a JSON 404.
type SPA struct {
	dir   string
	files http.Handler
}

func NewSPA(dir string) *SPA {
	return &SPA{
		dir:   dir,
		files: http.FileServer(http.Dir(dir)),
	}
}

func (s *SPA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		response.NotFound(w, "Endpoint not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if name != "/" {
		info, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(name)))
		if err == nil && !info.IsDir() {
			s.files.ServeHTTP(w, r)
			return
		}
	}

	index := filepath.Join(s.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		response.NotFound(w, "Not found")
		return
	}
	http.ServeFile(w, r, index)
}
