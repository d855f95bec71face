package app

import (
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/netline-isp/isp-console/web"
)

// Minimal container images ship without /etc/mime.types.
var staticTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "text/javascript; charset=utf-8",
	".svg": "image/svg+xml",
}

func registerStaticTypes() error {
	for ext, typ := range staticTypes {
		if mime.TypeByExtension(ext) != "" {
			continue
		}
		if err := mime.AddExtensionType(ext, typ); err != nil {
			return fmt.Errorf("register mime type %s: %w", ext, err)
		}
	}
	return nil
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() (http.Handler, error) {
	if err := registerStaticTypes(); err != nil {
		return nil, err
	}
	sub, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("static sub filesystem: %w", err)
	}
	files := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
	return staticCacheHandler(files), nil
}

// staticCacheHandler caches embedded assets for an hour. Directory listings
// are refused.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") || path.Ext(r.URL.Path) == "" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
