package build

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"cssel/config"
)

// outputPath derives stylesheet name from definition file name.
func outputPath(src, dst, ext string, transliterate bool) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if transliterate {
		baseName = slug.Make(baseName)
	}
	return filepath.Join(dst, config.CleanFileName(baseName)+ext)
}
