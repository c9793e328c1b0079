package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// CurrentSchemaVersion is stamped on new documents and is the default
// baseline for compatibility checks.
const CurrentSchemaVersion = "1.0.0"

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidVersion reports whether v is MAJOR.MINOR.PATCH.
func ValidVersion(v string) bool {
	return versionPattern.MatchString(v)
}

// IsCompatible reports whether a document at dataVersion can be read by an
// engine supporting currentVersion. Malformed versions are incompatible.
func IsCompatible(dataVersion, currentVersion string) bool {
	data, ok := canonical(dataVersion)
	if !ok {
		return false
	}
	current, ok := canonical(currentVersion)
	if !ok {
		return false
	}
	if semver.Major(data) != semver.Major(current) {
		return false
	}
	return semver.Compare(data, current) >= 0
}

// canonical converts "1.02.3" into the semver form "v1.2.3".
func canonical(v string) (string, bool) {
	if !ValidVersion(v) {
		return "", false
	}
	parts := strings.Split(v, ".")
	nums := make([]any, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", false
		}
		nums[i] = n
	}
	s := fmt.Sprintf("v%d.%d.%d", nums...)
	return s, semver.IsValid(s)
}
