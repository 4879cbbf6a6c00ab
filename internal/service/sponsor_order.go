package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/awsugahm/acd2026-api/internal/models"
)

// ReorderSponsors moves movedID to targetIndex within displayed and assigns
// sort_order = position+1 to every item of the result. displayed is not
// modified.
func ReorderSponsors(displayed []models.Sponsor, movedID string, targetIndex int) ([]models.Sponsor, error) {
	from := -1
	for i, s := range displayed {
		if s.ID == movedID {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("sponsor %q is not in the displayed list", movedID)
	}
	if targetIndex < 0 || targetIndex >= len(displayed) {
		return nil, fmt.Errorf("target index %d out of range [0,%d)", targetIndex, len(displayed))
	}

	src := cloneSponsors(displayed)
	reordered := make([]models.Sponsor, 0, len(src))
	reordered = append(reordered, src[:from]...)
	reordered = append(reordered, src[from+1:]...)
	reordered = append(reordered[:targetIndex], append([]models.Sponsor{src[from]}, reordered[targetIndex:]...)...)

	for i := range reordered {
		reordered[i].SortOrder = i + 1
	}
	return reordered, nil
}

// MergeSortOrders copies the sort orders of reordered onto the matching ids of
// full. Sponsors missing from reordered keep their order. full is not modified.
func MergeSortOrders(full, reordered []models.Sponsor) []models.Sponsor {
	orders := make(map[string]int, len(reordered))
	for _, s := range reordered {
		orders[s.ID] = s.SortOrder
	}
	merged := cloneSponsors(full)
	for i := range merged {
		if order, ok := orders[merged[i].ID]; ok {
			merged[i].SortOrder = order
		}
	}
	SortSponsors(merged)
	return merged
}

// SortSponsors orders sponsors by sort_order, then by company name.
func SortSponsors(sponsors []models.Sponsor) {
	sort.SliceStable(sponsors, func(i, j int) bool {
		if sponsors[i].SortOrder != sponsors[j].SortOrder {
			return sponsors[i].SortOrder < sponsors[j].SortOrder
		}
		return sponsors[i].CompanyName < sponsors[j].CompanyName
	})
}

// FilterSponsors returns the sponsors whose company name or tier contains
// search, ignoring case, sorted by sort_order.
func FilterSponsors(sponsors []models.Sponsor, search string) []models.Sponsor {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Sponsor, 0, len(sponsors))
	for _, s := range sponsors {
		if needle == "" ||
			strings.Contains(strings.ToLower(s.CompanyName), needle) ||
			strings.Contains(strings.ToLower(s.Tier), needle) {
			out = append(out, cloneSponsor(s))
		}
	}
	SortSponsors(out)
	return out
}

func cloneSponsors(in []models.Sponsor) []models.Sponsor {
	if in == nil {
		return nil
	}
	out := make([]models.Sponsor, len(in))
	for i, s := range in {
		out[i] = cloneSponsor(s)
	}
	return out
}

func cloneSponsor(s models.Sponsor) models.Sponsor {
	if s.Benefits != nil {
		s.Benefits = append(s.Benefits[:0:0], s.Benefits...)
	}
	return s
}
