package utils

import (
	"io"
	"strings"
	"unsafe"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func B2S(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

// Latin-1 string to UTF-8. Legacy DBF sidecars in the study region ship
// without a .cpg and are ISO-8859-1 encoded.
func Latin1StrToUtf8(s string) (d string, e error) {
	reader := transform.NewReader(strings.NewReader(s), charmap.ISO8859_1.NewDecoder())
	t, e := io.ReadAll(reader)
	if e != nil {
		return
	}
	d = B2S(t)
	return
}

func PurifyForUtf8(s string) string {
	return strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
}
