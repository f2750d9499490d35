package server

import (
	"image/color"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"skintone/pkg/imaging"
	"skintone/pkg/skin"
	"skintone/pkg/utils"
)

// DefaultKeepPercent is the fraction of each image dimension kept for
// analysis, centered on the frame.
const DefaultKeepPercent = 60

var regionColor = color.RGBA{G: 255, A: 255}

// Analysis is the response for a single analyzed photo.
type Analysis struct {
	Skin    bool        `json:"skin"`
	Tone    *skin.Tone  `json:"tone,omitempty"`
	Hex     string      `json:"hex,omitempty"`
	Bounds  skin.Bounds `json:"bounds"`
	Overlay string      `json:"overlay,omitempty"`
	Mask    string      `json:"mask,omitempty"`
}

// AnalyzeHandler accepts a multipart photo upload, crops the central
// region, estimates the average skin color and responds with the tone
// plus data-URL visualizations of the analysis region and skin mask.
func AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	keep := DefaultKeepPercent
	if keepStr := r.URL.Query().Get("keep"); keepStr != "" {
		if k, err := strconv.Atoi(keepStr); err == nil {
			keep = k
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if utils.NotImage(header.Filename) {
		http.Error(w, "unsupported file type; upload jpg, jpeg or png", http.StatusBadRequest)
		return
	}

	src, err := imaging.Decode(file)
	if err != nil {
		log.Warn("Error decoding upload", "name", header.Filename, "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img := imaging.Fit(src, imaging.DefaultMaxDim)
	region, bounds := skin.CentralRegion(img, keep)
	tone, _, vis, ok := skin.EstimateDetailed(region)

	analysis := Analysis{Skin: ok, Bounds: bounds}

	overlay, err := imaging.DataURL(skin.DrawBounds(img, bounds, regionColor, 2))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	analysis.Overlay = overlay

	if ok {
		analysis.Tone = &tone
		analysis.Hex = tone.Hex()
		mask, err := imaging.DataURL(vis)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		analysis.Mask = mask
		log.Info("Analyzed upload", "name", header.Filename, "tone", analysis.Hex)
	} else {
		log.Warn("No skin-toned pixels found", "name", header.Filename)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := utils.Encode(w, analysis); err != nil {
		log.Error("error writing analysis", "err", err)
	}
}
