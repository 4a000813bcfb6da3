package places

import (
	"fmt"
	"sort"

	"github.com/team4/foodflow/internal/allocation"
	"github.com/team4/foodflow/internal/types"
)

// donationShortlist is how many of the closest kitchens stay in the draw.
const donationShortlist = 5

// ChooseDonationCenter picks today's donation target: it shortlists the five
// closest soup kitchens and draws one of them at random, so nearby kitchens
// share the donations across runs instead of the closest one getting them all.
func ChooseDonationCenter(kitchens []types.DonationCenter, rng allocation.Rand) (*types.DonationCenter, error) {
	if len(kitchens) == 0 {
		return nil, fmt.Errorf("no soup kitchens available")
	}

	sorted := make([]types.DonationCenter, len(kitchens))
	copy(sorted, kitchens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DistanceKm < sorted[j].DistanceKm
	})

	shortlist := sorted
	if len(shortlist) > donationShortlist {
		shortlist = shortlist[:donationShortlist]
	}

	i := int(rng.Float64() * float64(len(shortlist)))
	if i >= len(shortlist) {
		i = len(shortlist) - 1
	}
	chosen := shortlist[i]
	return &chosen, nil
}
