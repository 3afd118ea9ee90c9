package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	FILE_EXT_SHP = ".shp"
	FILE_EXT_CPG = ".cpg"
	FILE_EXT_TIF = ".tif"

	UTF8  = "UTF8"
	UTF_8 = "UTF-8"
)

// GetUniqSubDir creates a scratch directory with a unique name under
// parentPath.
func GetUniqSubDir(parentPath string) (path string, err error) {
	path = filepath.Join(parentPath, uuid.NewString())
	err = os.Mkdir(path, os.ModePerm)
	return
}

// ShpSidecarIsUtf8 reads the .cpg next to a shapefile; absence means the
// legacy Latin-1 default applies.
func ShpSidecarIsUtf8(shp string) bool {
	enc, err := os.ReadFile(strings.TrimSuffix(shp, FILE_EXT_SHP) + FILE_EXT_CPG)
	if err != nil || len(enc) == 0 {
		return false
	}
	encStr := strings.ToUpper(strings.TrimSpace(string(enc)))
	return encStr == UTF_8 || encStr == UTF8
}
