package form

import (
	"strings"
	"time"
)

// isoMillis matches an ISO-8601 UTC instant with millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z"

// DeriveFilename names the generated document:
// AccessONIX_{isbn}_{timestamp}.xml, where timestamp is the UTC instant
// with every ':' and '.' removed.
func DeriveFilename(isbn string, now time.Time) string {
	stamp := now.UTC().Format(isoMillis)
	stamp = strings.NewReplacer(":", "", ".", "").Replace(stamp)
	return "AccessONIX_" + isbn + "_" + stamp + ".xml"
}
