package news

import (
	"strconv"
	"unicode/utf16"
)

// DeriveID computes a stable identifier for an article from its title and
// published timestamp. It folds the UTF-16 code units of "title-publishedAt"
// through a 32-bit rolling hash and emits the absolute value in decimal.
//
// The hash is cheap and deterministic, not cryptographic: two articles with
// identical title and timestamp intentionally collide, which deduplicates
// upstream republishes. Missing fields hash as empty strings.
func DeriveID(title, publishedAt string) string {
	var hash int32
	for _, u := range utf16.Encode([]rune(title + "-" + publishedAt)) {
		hash = hash*31 + int32(u)
	}

	v := int64(hash)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 10)
}
