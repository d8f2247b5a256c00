package repository

import (
	"testing"

	"shop-location-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func km(v float64) *float64 {
	return &v
}

func TestGroupStationRows(t *testing.T) {
	rows := []stationRow{
		{StationCD: 2800101, GroupCD: 1130205, Name: "渋谷", NameKana: "しぶや", LineName: "東急東横線", Lat: 35.6590, Lng: 139.7016, DistanceKm: km(0.35)},
		{StationCD: 1130205, GroupCD: 1130205, Name: "渋谷", NameKana: "しぶや", LineName: "JR山手線", Lat: 35.6580, Lng: 139.7016, DistanceKm: km(0.40)},
		{StationCD: 2800218, GroupCD: 2800218, Name: "代官山", NameKana: "だいかんやま", LineName: "東急東横線", Lat: 35.6481, Lng: 139.7033, DistanceKm: km(0.90)},
	}

	got := groupStationRows(rows)

	assert.Equal(t, []models.GroupedStationCandidate{
		{
			GroupID:            1130205,
			StationID:          1130205,
			RepresentativeName: "渋谷",
			NameKana:           "しぶや",
			Lines: []models.StationLine{
				{StationID: 2800101, LineName: "東急東横線"},
				{StationID: 1130205, LineName: "JR山手線"},
			},
			DistanceKm: km(0.35),
			Lat:        35.6580,
			Lng:        139.7016,
		},
		{
			StationID:          2800218,
			RepresentativeName: "代官山",
			NameKana:           "だいかんやま",
			Lines:              []models.StationLine{{StationID: 2800218, LineName: "東急東横線"}},
			DistanceKm:         km(0.90),
			Lat:                35.6481,
			Lng:                139.7033,
		},
	}, got)
}

func TestGroupStationRows_RepresentativeFallsBackToFirstMember(t *testing.T) {
	rows := []stationRow{
		{StationCD: 9930101, GroupCD: 9930100, Name: "新宿", LineName: "都営新宿線"},
		{StationCD: 9930102, GroupCD: 9930100, Name: "新宿", LineName: "都営大江戸線"},
	}

	got := groupStationRows(rows)
	if assert.Len(t, got, 1) {
		assert.Equal(t, int64(9930100), got[0].GroupID)
		assert.Equal(t, int64(9930101), got[0].StationID)
		assert.Nil(t, got[0].DistanceKm)
	}
}

func TestGroupStationRows_Empty(t *testing.T) {
	assert.Equal(t, []models.GroupedStationCandidate{}, groupStationRows(nil))
}

func TestLikePrefix(t *testing.T) {
	assert.Equal(t, "渋谷%", likePrefix("渋谷"))
	assert.Equal(t, `100\%\_x\\%`, likePrefix(`100%_x\`))
}
