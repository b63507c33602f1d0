package services

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// Output types the browser client can render inline.
var allowedImageMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// EncodeImageDataURL wraps raw provider bytes into a base64 data URL for
// display. Providers do not decide the presentation encoding, this does.
func EncodeImageDataURL(img *RawImage) string {
	mimeType := strings.TrimSpace(strings.Split(img.ContentType, ";")[0])
	if !allowedImageMimeTypes[mimeType] {
		// sniff, provider content types are not always trustworthy
		mimeType = http.DetectContentType(img.Data)
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(img.Data))
}
