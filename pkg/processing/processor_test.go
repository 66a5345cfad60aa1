package processing

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/menta2k/mfit/pkg/types"
)

func solid(w, h int, c color.Color) image.Image {
	return imaging.New(w, h, c)
}

func TestPrepareImageForModelDownscales(t *testing.T) {
	p := NewProcessor()
	img := solid(400, 1000, color.White)

	b64, err := p.PrepareImageForModel(img, "png", 500, 90)
	if err != nil {
		t.Fatalf("PrepareImageForModel failed: %v", err)
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("Invalid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Invalid png: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 200 || b.Dy() != 500 {
		t.Errorf("Expected 200x500, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestSaveAndLoadImage(t *testing.T) {
	p := NewProcessor()
	dir := t.TempDir()
	img := solid(30, 60, color.NRGBA{10, 20, 30, 255})

	for _, format := range []string{"jpg", "png", "webp"} {
		path := filepath.Join(dir, "photo."+format)
		if err := p.SaveImage(img, path, format, 90, true); err != nil {
			t.Fatalf("SaveImage(%s) failed: %v", format, err)
		}
		loaded, err := p.LoadImageSmart(path)
		if err != nil {
			t.Fatalf("LoadImage(%s) failed: %v", format, err)
		}
		if b := loaded.Bounds(); b.Dx() != 30 || b.Dy() != 60 {
			t.Errorf("%s: expected 30x60, got %dx%d", format, b.Dx(), b.Dy())
		}
	}

	if _, err := p.LoadImage(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadImageFromURL(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(8, 16, color.Black)); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/text" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	p := NewProcessor()
	img, err := p.LoadImageSmart(srv.URL + "/photo.png")
	if err != nil {
		t.Fatalf("LoadImageFromURL failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 16 {
		t.Errorf("Expected 8x16, got %dx%d", b.Dx(), b.Dy())
	}

	if _, err := p.LoadImageFromURL(srv.URL + "/text"); err == nil {
		t.Error("Expected error for non-image content type")
	}
	if _, err := p.LoadImageFromURL("ftp://example.com/a.png"); err == nil {
		t.Error("Expected error for unsupported scheme")
	}
}

func TestCreateLandmarkOverlay(t *testing.T) {
	p := NewProcessor()
	img := solid(200, 400, color.Black)
	set := types.LandmarkSet{
		types.LeftShoulder:  {X: 50, Y: 100},
		types.RightShoulder: {X: 150, Y: 100},
		types.Nose:          {X: 100, Y: 40},
	}

	out := p.CreateLandmarkOverlay(img, set, true)

	if got := color.NRGBAModel.Convert(out.At(50, 100)).(color.NRGBA); got.G != 255 {
		t.Errorf("Expected landmark dot at shoulder, got %+v", got)
	}
	if got := color.NRGBAModel.Convert(out.At(100, 100)).(color.NRGBA); got.R != 255 {
		t.Errorf("Expected skeleton line between shoulders, got %+v", got)
	}
	if got := color.NRGBAModel.Convert(out.At(100, 300)).(color.NRGBA); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("Expected untouched background, got %+v", got)
	}
	if got := color.NRGBAModel.Convert(img.At(50, 100)).(color.NRGBA); got.G != 0 {
		t.Error("Overlay must not modify the source image")
	}
}

func TestCreateLandmarkOverlayOutOfFrame(t *testing.T) {
	p := NewProcessor()
	set := types.LandmarkSet{
		types.LeftHip:  {X: -50, Y: -50},
		types.RightHip: {X: 500, Y: 500},
	}
	// Must not panic on points outside the image.
	out := p.CreateLandmarkOverlay(solid(20, 20, color.Black), set, true)
	if out.Bounds().Dx() != 20 {
		t.Errorf("Unexpected overlay size %v", out.Bounds())
	}
}
