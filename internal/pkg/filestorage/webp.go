package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"path"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
)

// WebPOptions controls photo re-encoding.
type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
}

// ConvertToWebP decodes an image, downscales it to fit MaxW x MaxH and encodes it as lossy WebP.
func ConvertToWebP(data []byte, opts WebPOptions) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Fall back to the WebP decoder for files with a non-standard RIFF header.
		img, err = webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unsupported image: %w", err)
		}
	}

	img = downscaleIfNeeded(img, opts.MaxW, opts.MaxH)

	q := opts.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// PhotoStorage re-encodes uploads to the photos folder as WebP before handing them to the wrapped Storage.
// Files that do not decode as images are stored unchanged.
type PhotoStorage struct {
	Storage
	opts WebPOptions
}

// NewPhotoStorage wraps s with WebP conversion for photos.
func NewPhotoStorage(s Storage, opts WebPOptions) *PhotoStorage {
	return &PhotoStorage{Storage: s, opts: opts}
}

// Upload implements Storage
func (p *PhotoStorage) Upload(ctx context.Context, name, contentType string, r io.Reader, folder string) (models.FileRef, error) {
	if folder != FolderPhotos {
		return p.Storage.Upload(ctx, name, contentType, r, folder)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return models.FileRef{}, fmt.Errorf("read upload: %w", err)
	}
	converted, err := ConvertToWebP(data, p.opts)
	if err != nil {
		return p.Storage.Upload(ctx, name, contentType, bytes.NewReader(data), folder)
	}
	webpName := strings.TrimSuffix(name, path.Ext(name)) + ".webp"
	return p.Storage.Upload(ctx, webpName, "image/webp", bytes.NewReader(converted), folder)
}
