package catalog

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
	"paskoocheh/internal/gql"
)

type Version struct {
	Number      string
	DownloadURL string
	Size        int
	ReleasedAt  string
}

// mapVersions orders versions newest first. Numbers that are not semantic versions sort after
// every valid one, newest release date first.
func mapVersions(source []gql.ToolDetailToolToolVersionsVersion) []Version {
	out := make([]Version, 0, len(source))
	for _, v := range source {
		number := strings.TrimSpace(v.VersionNumber)
		if number == "" {
			continue
		}
		version := Version{
			Number:      number,
			DownloadURL: strOr(v.DownloadUrl, ""),
			ReleasedAt:  strOr(v.ReleasedAt, ""),
		}
		if v.Size != nil {
			version.Size = *v.Size
		}
		out = append(out, version)
	}

	sort.SliceStable(out, func(i, j int) bool {
		left, right := canonical(out[i].Number), canonical(out[j].Number)
		switch {
		case left != "" && right != "":
			return semver.Compare(left, right) > 0
		case left != "":
			return true
		case right != "":
			return false
		default:
			return out[i].ReleasedAt > out[j].ReleasedAt
		}
	})

	return out
}

// canonical returns the semver form of a backend version number such as "3.1" or "v2.0.1-beta",
// or "" when it is not one.
func canonical(number string) string {
	candidate := strings.TrimSpace(number)
	if !strings.HasPrefix(candidate, "v") {
		candidate = "v" + candidate
	}
	if !semver.IsValid(candidate) {
		return ""
	}
	return semver.Canonical(candidate)
}
