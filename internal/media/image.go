package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/homely-bites/internal/config"
	"github.com/BruksfildServices01/homely-bites/internal/httperr"
)

const (
	webpQuality      = 80
	defaultMaxPixels = 40_000_000
)

var (
	ErrTooLarge      = httperr.New(httperr.KindTooLarge, "image_too_large", "Image must be smaller than 5MB")
	ErrTooManyPixels = httperr.New(httperr.KindTooLarge, "image_dimensions_too_large", "Image dimensions are too large")
	ErrUnsupported   = httperr.New(httperr.KindUnsupportedMedia, "unsupported_image", "Only JPEG, PNG and WEBP images are allowed")
	ErrUnreadable    = httperr.Validation("invalid_image", "Image could not be read")
	errEncodeFailed  = httperr.New(httperr.KindInternal, "image_encode_failed", "Image could not be processed")
)

// Uploader checks, downsizes and re-encodes menu images to WEBP before
// handing them to a Store.
type Uploader struct {
	store     Store
	maxBytes  int64
	maxWidth  int
	maxPixels int
	now       func() time.Time
}

func NewUploader(store Store, cfg config.MediaConfig) *Uploader {
	maxPixels := cfg.MaxImagePixels
	if maxPixels <= 0 {
		maxPixels = defaultMaxPixels
	}
	return &Uploader{
		store:     store,
		maxBytes:  cfg.MaxUploadBytes,
		maxWidth:  cfg.MaxImageWidth,
		maxPixels: maxPixels,
		now:       time.Now,
	}
}

func (u *Uploader) Upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > u.maxBytes {
		return "", ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", ErrUnreadable
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.maxBytes+1))
	if err != nil {
		return "", ErrUnreadable
	}
	if int64(len(data)) > u.maxBytes {
		return "", ErrTooLarge
	}

	return u.Store(ctx, data)
}

func (u *Uploader) Store(ctx context.Context, data []byte) (string, error) {
	img, err := decode(data, u.maxPixels)
	if err != nil {
		return "", err
	}
	img = fitWidth(img, u.maxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", errEncodeFailed
	}

	return u.store.Save(ctx, u.fileName(), "image/webp", buf.Bytes())
}

// fileName is food-<unix millis>-<8 hex chars>.webp.
func (u *Uploader) fileName() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("food-%d-%s.webp", u.now().UnixMilli(), id[:8])
}

type codec struct {
	config func(io.Reader) (image.Config, error)
	decode func(io.Reader) (image.Image, error)
}

var codecs = map[string]codec{
	"image/jpeg": {jpeg.DecodeConfig, jpeg.Decode},
	"image/png":  {png.DecodeConfig, png.Decode},
	"image/webp": {webp.DecodeConfig, webp.Decode},
}

// Sniffed by content, the client's declared type is ignored. The header is
// read first so the pixel buffer is only allocated within maxPixels.
func decode(data []byte, maxPixels int) (image.Image, error) {
	cd, ok := codecs[http.DetectContentType(data)]
	if !ok {
		return nil, ErrUnsupported
	}

	cfg, err := cd.config(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrUnreadable
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, ErrTooManyPixels
	}

	img, err := cd.decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnreadable
	}
	return img, nil
}

func fitWidth(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// ResolveURL turns a stored reference into something a client can fetch.
func ResolveURL(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
