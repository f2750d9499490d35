package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/charmbracelet/log"

	"skintone/pkg/imaging"
	"skintone/pkg/skin"
	"skintone/pkg/utils"
)

// Result is one analyzed file from a batch walk.
type Result struct {
	Path string     `json:"path"`
	Skin bool       `json:"skin"`
	Tone *skin.Tone `json:"tone,omitempty"`
	Hex  string     `json:"hex,omitempty"`
}

// WalkHandler is the HTTP API endpoint that receives query parameters,
// analyzes every image under the folder, and streams results back.
func WalkHandler(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	maxStr := r.URL.Query().Get("max")

	if folder == "" {
		http.Error(w, "folder parameter is required", http.StatusBadRequest)
		return
	}

	maxFiles := -1
	if maxStr != "" {
		if m, err := strconv.Atoi(maxStr); err == nil && m > 0 {
			maxFiles = m
		}
	}

	keep := DefaultKeepPercent
	if keepStr := r.URL.Query().Get("keep"); keepStr != "" {
		if k, err := strconv.Atoi(keepStr); err == nil {
			keep = k
		}
	}

	pool := utils.NewWorkerPool(runtime.NumCPU(), func(jobs <-chan string, yield func(*Result)) {
		for path := range jobs {
			if res := analyzeFile(r.Context(), path, keep); res != nil {
				yield(res)
			}
		}
	})
	pool.Work()

	go walkDir(r.Context(), folder, maxFiles, &pool)

	Respond(w, r, pool.Iter())
	log.Info("Finished processing results for", "folder", folder)
}

// walkDir traverses the folder rooted at root and feeds every image
// file to the worker pool, up to max files when max is positive.
func walkDir(ctx context.Context, root string, max int, pool *utils.WorkerPool[string, *Result]) {
	defer pool.Close()

	var count int
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if utils.NotImage(path) {
			return nil
		}
		if max > 0 && count >= max {
			return filepath.SkipDir
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		count++
		pool.Add(path)
		return nil
	})
	if err != nil {
		log.Errorf("error walking the path %s: %v", root, err)
	}
}

func analyzeFile(ctx context.Context, path string, keep int) *Result {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		log.Errorf("Error opening file %s: %v", path, err)
		return nil
	}
	defer file.Close()

	src, err := imaging.Decode(file)
	if err != nil {
		log.Errorf("Error decoding %s: %v", path, err)
		return nil
	}

	region, _ := skin.CentralRegion(imaging.Fit(src, imaging.DefaultMaxDim), keep)
	tone, ok := skin.Estimate(region)
	if !ok {
		log.Warnf("%s: no skin-toned pixels", path)
		return &Result{Path: path}
	}

	log.Debugf("Analyzed %s: %s", path, tone.Hex())
	return &Result{Path: path, Skin: true, Tone: &tone, Hex: tone.Hex()}
}
