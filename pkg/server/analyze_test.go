package server

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skintone/pkg/skin"
	"skintone/pkg/utils"
)

var skinTone = color.RGBA{R: 200, G: 150, B: 120, A: 255}

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func upload(t *testing.T, name string, img image.Image) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(part, img); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalyzeHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	AnalyzeHandler(rec, upload(t, "face.png", uniform(100, 100, skinTone)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	analysis, err := utils.Decode[Analysis](rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !analysis.Skin {
		t.Fatal("expected skin to be detected")
	}
	if analysis.Hex != "#c89678" {
		t.Errorf("hex = %q, want %q", analysis.Hex, "#c89678")
	}
	if *analysis.Tone != (skin.Tone{R: 200, G: 150, B: 120}) {
		t.Errorf("tone = %+v", analysis.Tone)
	}
	if analysis.Bounds.Top != 20 || analysis.Bounds.Bottom != 80 || analysis.Bounds.Left != 20 || analysis.Bounds.Right != 80 {
		t.Errorf("bounds = %+v", analysis.Bounds)
	}
	if !strings.HasPrefix(analysis.Overlay, "data:image/png;base64,") {
		t.Error("overlay is not a png data URL")
	}
	if !strings.HasPrefix(analysis.Mask, "data:image/png;base64,") {
		t.Error("mask is not a png data URL")
	}
}

func TestAnalyzeHandlerNoSkin(t *testing.T) {
	rec := httptest.NewRecorder()
	AnalyzeHandler(rec, upload(t, "sky.png", uniform(64, 64, color.RGBA{B: 255, A: 255})))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	analysis, err := utils.Decode[Analysis](rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Skin || analysis.Tone != nil || analysis.Hex != "" || analysis.Mask != "" {
		t.Errorf("expected an undefined result, got %+v", analysis)
	}
	if analysis.Overlay == "" {
		t.Error("the analysis region overlay should still be returned")
	}
}

func TestAnalyzeHandlerRejectsUnsupportedType(t *testing.T) {
	rec := httptest.NewRecorder()
	AnalyzeHandler(rec, upload(t, "face.gif", uniform(10, 10, skinTone)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAnalyzeHandlerKeepParam(t *testing.T) {
	req := upload(t, "face.png", uniform(100, 100, skinTone))
	req.URL.RawQuery = "keep=100"
	rec := httptest.NewRecorder()
	AnalyzeHandler(rec, req)

	analysis, err := utils.Decode[Analysis](rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Bounds != (skin.Bounds{Top: 0, Bottom: 100, Left: 0, Right: 100}) {
		t.Errorf("bounds = %+v, want the full image", analysis.Bounds)
	}
}

func TestWalkHandler(t *testing.T) {
	dir := t.TempDir()
	for name, c := range map[string]color.RGBA{
		"face.png": skinTone,
		"sky.png":  {B: 255, A: 255},
	} {
		var buf bytes.Buffer
		if err := png.Encode(&buf, uniform(32, 32, c)); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/walk?folder="+dir, nil)
	rec := httptest.NewRecorder()
	WalkHandler(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `"hex":"#c89678"`) {
		t.Errorf("expected the skin tone result in %q", body)
	}
	if !strings.Contains(body, "sky.png") {
		t.Errorf("expected the undefined result to be reported in %q", body)
	}
	if !strings.Contains(body, "event: exit") {
		t.Errorf("expected the stream to end with an exit event in %q", body)
	}
}

func TestWalkHandlerRequiresFolder(t *testing.T) {
	rec := httptest.NewRecorder()
	WalkHandler(rec, httptest.NewRequest(http.MethodGet, "/walk", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
