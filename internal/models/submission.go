package models

// Submission is the flattened location block handed to the shop submission flow.
type Submission struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	AddressPref      string  `json:"address_pref"`
	AddressCity      string  `json:"address_city"`
	AddressTown      string  `json:"address_town"`
	AddressStreet    string  `json:"address_street,omitempty"`
	AddressBuilding  string  `json:"address_building,omitempty"`
	NearestStationID int64   `json:"nearest_station_id"`
	SubStationIDs    []int64 `json:"sub_station_ids"`
}
