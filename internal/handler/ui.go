package handler

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed ui
var uiFS embed.FS

// UIHandler serves the customer management page at / and its assets under /static/
func UIHandler() http.Handler {
	assets, err := fs.Sub(uiFS, "ui")
	if err != nil {
		panic(err)
	}
	files := http.StripPrefix("/static", http.FileServer(http.FS(assets)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFileFS(w, r, assets, "index.html")
			return
		}
		files.ServeHTTP(w, r)
	})
}
