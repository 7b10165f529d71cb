package commuting

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrUnknownRegion is returned for region codes outside the static name table.
var ErrUnknownRegion = errors.New("unknown region")

// Region is an ISTAT region code.
type Region int

var regionNames = map[Region]string{
	1:  "Piemonte",
	2:  "Valle d'Aosta/Vallée d'Aoste",
	3:  "Lombardia",
	4:  "Trentino-Alto Adige/Südtirol",
	5:  "Veneto",
	6:  "Friuli-Venezia Giulia",
	7:  "Liguria",
	8:  "Emilia-Romagna",
	9:  "Toscana",
	10: "Umbria",
	11: "Marche",
	12: "Lazio",
	13: "Abruzzo",
	14: "Molise",
	15: "Campania",
	16: "Puglia",
	17: "Basilicata",
	18: "Calabria",
	19: "Sicilia",
	20: "Sardegna",
}

// Name returns the display name, or an empty string for unknown codes.
func (r Region) Name() string {
	return regionNames[r]
}

func (r Region) Known() bool {
	_, ok := regionNames[r]
	return ok
}

// CheckRegion returns ErrUnknownRegion if r has no name.
func CheckRegion(r Region) error {
	if !r.Known() {
		return errors.Wrapf(ErrUnknownRegion, "code %d", int(r))
	}
	return nil
}

// RegionsByName returns every known region sorted by display name, which is the
// order the region selector shows them in.
func RegionsByName() []Region {
	regions := make([]Region, 0, len(regionNames))
	for code := range regionNames {
		regions = append(regions, code)
	}
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Name() < regions[j].Name()
	})
	return regions
}
