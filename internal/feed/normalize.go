package feed

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"borderwatch/internal/domain"
	"borderwatch/internal/scoring"
)

const DefaultRadiusKM = 25.0

// Normalize turns raw feed items into active external alerts. Items
// without a title are skipped. IDs are derived from the item id (or url, or
// title) so the same story keeps the same id across fetches.
func Normalize(items []Item, now time.Time) []domain.Alert {
	out := make([]domain.Alert, 0, len(items))
	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}

		key := it.ID
		if key == "" {
			key = it.URL
		}
		if key == "" {
			key = title
		}

		created := now.UTC()
		if it.PublishedAt != nil {
			created = it.PublishedAt.UTC()
		}

		a := domain.Alert{
			ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte("feed:"+key)),
			Title:     title,
			Message:   strings.TrimSpace(it.Description),
			Severity:  scoring.ClassifySeverity(title + " " + it.Description),
			IsActive:  true,
			Source:    domain.AlertSourceExternal,
			CreatedAt: created,
		}

		if it.Latitude != nil && it.Longitude != nil {
			center := domain.Coordinate{Latitude: *it.Latitude, Longitude: *it.Longitude}
			if center.Valid() {
				radius := DefaultRadiusKM
				if it.RadiusKM != nil && *it.RadiusKM > 0 {
					radius = *it.RadiusKM
				}
				a.TargetArea = &domain.TargetArea{Center: center, RadiusKM: radius}
			}
		}

		out = append(out, a)
	}
	return out
}
