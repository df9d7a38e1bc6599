package web

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
)

// allowedScanTypes are the image formats the OCR backend accepts.
var allowedScanTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
}

// maxScanWidth is the width above which PNG and JPEG uploads are
// downscaled before being forwarded. OCR accuracy does not benefit
// from anything wider, and it keeps the upstream upload small.
const maxScanWidth = 1200

// Scan validates an uploaded pantry image locally, forwards it to the
// OCR endpoint, and unions the extracted ingredients into the session's
// collection. Validation failures never reach the network.
func (h *Handler) Scan(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	if file.Size > h.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is too large. The limit is 10MB."})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if mediaType, _, parseErr := mime.ParseMediaType(contentType); parseErr == nil {
		contentType = mediaType
	}
	if !allowedScanTypes[strings.ToLower(contentType)] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type. Upload a PNG, JPEG, GIF, BMP, or WebP image."})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	imageData = downscaleForScan(imageData, contentType)

	language := c.PostForm("language")

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	start := time.Now()
	result, err := h.Oracle.ScanImage(ctx, file.Filename, contentType, imageData, language)
	if err != nil {
		h.Log.Error("ocr scan of %s: %v", file.Filename, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to scan image"})
		return
	}
	h.Log.Info("scanned %s in %s, %d ingredients (confidence %.2f)",
		file.Filename, time.Since(start).Round(time.Millisecond), len(result.Ingredients), result.Confidence)

	sess := h.session(c)
	added := sess.MergeExtracted(result.Ingredients)

	c.JSON(http.StatusOK, gin.H{
		"extraction":  result,
		"added":       added,
		"ingredients": sess.Ingredients(),
	})
}

// downscaleForScan shrinks oversized PNG and JPEG images to maxScanWidth
// before the upstream upload. Other formats, images that already fit,
// and anything that fails to decode pass through unchanged.
func downscaleForScan(data []byte, contentType string) []byte {
	if contentType != "image/png" && contentType != "image/jpeg" {
		return data
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= maxScanWidth {
		return data
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	img = resize.Resize(maxScanWidth, 0, img, resize.Lanczos3)

	out := &bytes.Buffer{}
	switch contentType {
	case "image/jpeg":
		err = jpeg.Encode(out, img, nil)
	case "image/png":
		err = png.Encode(out, img)
	}
	if err != nil {
		return data
	}
	return out.Bytes()
}
