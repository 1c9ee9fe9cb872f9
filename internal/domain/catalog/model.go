package catalog

import "strings"

// Audience is the closed set of audience buckets a version tag can map to.
// Free-text catalog tags are classified once at load time; nothing downstream
// re-parses tag strings.
type Audience string

const (
	AudienceYoung      Audience = "young"      // K-3
	AudienceElementary Audience = "elementary" // Gr. 4-6
	AudienceMiddle     Audience = "middle"     // Gr. 6-8, Gr. 7-8
	AudienceHigh       Audience = "high"       // Gr. 9-10, Gr. 11-12
	AudienceAdult      Audience = "adult"      // faculty, parents, corporate, ...
	AudienceUnknown    Audience = "unknown"
)

// PriceCategory groups audiences for the price table. Adult and unknown
// audiences have no table entry and require a manual quote.
type PriceCategory string

const (
	PriceElementary PriceCategory = "elementary"
	PriceSecondary  PriceCategory = "secondary"
	PriceCustom     PriceCategory = "custom"
)

// Version is one audience offering of a program, with its bucket resolved.
type Version struct {
	Tag      string   `json:"tag"`
	Audience Audience `json:"audience"`
}

// Program is an immutable catalog entry.
type Program struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Versions    []Version `json:"versions"`
	HasParts    bool      `json:"hasParts"`
	Duration    string    `json:"duration"`
	Description string    `json:"description"`
}

// HasVersion reports whether the program offers the given version tag.
func (p Program) HasVersion(tag string) bool {
	for _, v := range p.Versions {
		if v.Tag == tag {
			return true
		}
	}
	return false
}

// VersionAudience returns the audience bucket for one of the program's tags.
func (p Program) VersionAudience(tag string) Audience {
	for _, v := range p.Versions {
		if v.Tag == tag {
			return v.Audience
		}
	}
	return AudienceUnknown
}

// ClassifyVersion maps a free-text version tag to an audience bucket.
// Tags that match no pattern land in AudienceUnknown and are priced manually.
func ClassifyVersion(tag string) Audience {
	t := strings.ToLower(tag)
	t = strings.ReplaceAll(t, ".", "")
	t = strings.ReplaceAll(t, " ", "")

	switch {
	case strings.Contains(t, "k-3"):
		return AudienceYoung
	case strings.Contains(t, "4-6"):
		return AudienceElementary
	case strings.Contains(t, "6-8"), strings.Contains(t, "7-8"):
		return AudienceMiddle
	case strings.Contains(t, "9-10"), strings.Contains(t, "11-12"):
		return AudienceHigh
	case strings.Contains(t, "faculty"),
		strings.Contains(t, "educator"),
		strings.Contains(t, "admin"),
		strings.Contains(t, "parent"),
		strings.Contains(t, "corporate"),
		strings.Contains(t, "team"):
		return AudienceAdult
	}
	return AudienceUnknown
}

// CategoryFor collapses an audience bucket into a price-table category.
func CategoryFor(a Audience) PriceCategory {
	switch a {
	case AudienceYoung, AudienceElementary, AudienceMiddle:
		return PriceElementary
	case AudienceHigh:
		return PriceSecondary
	default:
		return PriceCustom
	}
}
