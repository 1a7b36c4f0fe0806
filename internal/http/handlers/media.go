package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// saveUpload stores an optional image from the named form field under
// mediaDir and returns its public path. Empty string when no file was sent
// or the extension is not an image type.
func saveUpload(c *fiber.Ctx, field, mediaDir string) string {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExts[ext] {
		return ""
	}
	name := uuid.NewString() + ext
	if err := c.SaveFile(fh, filepath.Join(mediaDir, name)); err != nil {
		return ""
	}
	return "/media/" + name
}
