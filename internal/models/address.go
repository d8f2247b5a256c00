package models

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressCandidate is one result of a postal code lookup. It lives until a
// detail is chosen or the lookup is reset.
type AddressCandidate struct {
	PostalCode    string  `json:"postal_code"`
	Prefecture    string  `json:"prefecture"`
	City          string  `json:"city"`
	Town          string  `json:"town"`
	CombinedLabel string  `json:"combined_label"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	// HasLocation is set only when the lookup supplied both Lat and Lng.
	HasLocation bool `json:"has_location"`
}

// Coordinates returns the zip-level position, if the lookup supplied one.
func (c AddressCandidate) Coordinates() (Coordinates, bool) {
	if !c.HasLocation {
		return Coordinates{}, false
	}
	return Coordinates{Lat: c.Lat, Lng: c.Lng}, true
}

// PartialCoordinates is a wire-level point whose fields may be missing.
type PartialCoordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Complete returns the point when both fields are present.
func (p *PartialCoordinates) Complete() (*Coordinates, bool) {
	if p == nil || p.Lat == nil || p.Lng == nil {
		return nil, false
	}
	return &Coordinates{Lat: *p.Lat, Lng: *p.Lng}, true
}

// NormalizedAddress is the canonical breakdown returned by the address
// normalizer. Coordinates is nil unless the normalizer supplied a full pair.
type NormalizedAddress struct {
	Prefecture  string       `json:"pref"`
	City        string       `json:"city"`
	Town        string       `json:"town"`
	Street      string       `json:"addr"`
	FullAddress string       `json:"fullAddress"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// GeocodeResult is a single geocoder hit.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
}

// Provenance records which source supplied a resolved address's coordinates.
type Provenance string

const (
	ProvenanceNormalizedOnly  Provenance = "normalized_only"
	ProvenanceGeocodeEnhanced Provenance = "geocode_enhanced"
	ProvenancePostalFallback  Provenance = "postal_fallback"
)

// ResolvedAddress is the output of one resolution chain run. Lat and Lng are
// always set together; a new run replaces the previous value wholesale.
type ResolvedAddress struct {
	Prefecture       string     `json:"prefecture"`
	City             string     `json:"city"`
	Town             string     `json:"town"`
	Street           string     `json:"street"`
	Building         string     `json:"building"`
	PostalCode       string     `json:"postal_code"`
	Lat              float64    `json:"lat"`
	Lng              float64    `json:"lng"`
	FormattedAddress string     `json:"formatted_address"`
	Provenance       Provenance `json:"provenance"`
}

// Coordinates returns the resolved position.
func (r ResolvedAddress) Coordinates() Coordinates {
	return Coordinates{Lat: r.Lat, Lng: r.Lng}
}

// PostalLookupResult is the user-visible state of one postal code lookup.
// NotFound covers both an empty result and a failed lookup; either way the
// caller offers manual entry.
type PostalLookupResult struct {
	PostalCode string             `json:"postal_code"`
	Candidates []AddressCandidate `json:"candidates"`
	NotFound   bool               `json:"not_found"`
}
