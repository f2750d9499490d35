package server

import (
	_ "embed"
	"encoding/json"
	"iter"
	"net/http"
	"path/filepath"

	"github.com/charmbracelet/log"
)

//go:embed index.html
var index []byte

// HomeHandler serves the main HTML page with the photo upload form.
func HomeHandler(w http.ResponseWriter, _ *http.Request) {
	// The HTML page includes inline JS to POST the upload to /analyze
	// and then display the returned visualizations.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(index)
}

func FileProxy(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Clean(r.PathValue("path")))
}

// Respond sends any results from the worker to the client.
func Respond[P ~*T, T any](w http.ResponseWriter, r *http.Request, worker iter.Seq[P]) {
	enc := json.NewEncoder(w)
	if flusher, ok := w.(http.Flusher); ok {
		w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		for res := range worker {
			if res == nil {
				continue
			}
			select {
			case <-r.Context().Done():
				break // interrupt detected
			default:
				if _, err := w.Write([]byte("data: ")); err != nil {
					log.Error("error writing data:", "err", err)
					return
				}
				if err := enc.Encode(res); err != nil {
					log.Error("error writing data:", "err", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				if _, err := w.Write([]byte("\n")); err != nil {
					log.Error("error writing data:", "err", err)
					return
				}
				flusher.Flush()
			}
		}
		if _, err := w.Write([]byte("event: exit\ndata: exit\n\n")); err != nil {
			log.Error("error sending exit event", "err", err)
		}
	} else {
		var allResults []P
		for res := range worker {
			if res == nil {
				continue
			}
			select {
			case <-r.Context().Done():
				break
			default:
				allResults = append(allResults, res)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := enc.Encode(allResults); err != nil {
			log.Error("error writing data:", "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}
