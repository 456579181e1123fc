package app

import (
	"fmt"
	"mime"
)

// staticMimeTypes covers assets under web/static on hosts without a mime.types file.
var staticMimeTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".svg": "image/svg+xml",
}

func registerStaticMimeTypes() error {
	for ext, typ := range staticMimeTypes {
		if mime.TypeByExtension(ext) != "" {
			continue
		}
		if err := mime.AddExtensionType(ext, typ); err != nil {
			return fmt.Errorf("register mime type %s: %w", ext, err)
		}
	}
	return nil
}
