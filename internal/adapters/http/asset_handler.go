package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/prism/internal/core"
)

// AssetHandler serves files below root. The request path is expected to be
// relative to root once the mount prefix is stripped.
type AssetHandler struct {
	root string
}

func NewAssetHandler(root string) http.Handler {
	return &AssetHandler{root: root}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rel := strings.TrimPrefix(path.Clean("/"+req.URL.Path), "/")
	if rel == "" {
		http.NotFound(w, req)
		return
	}

	fullPath := filepath.Join(h.root, filepath.FromSlash(rel))

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		http.NotFound(w, req)
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		http.NotFound(w, req)
		return
	}
	defer func() { _ = file.Close() }()

	w.Header().Set("Content-Type", core.GetContentType(fullPath))
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, req, info.Name(), info.ModTime(), file)
}
