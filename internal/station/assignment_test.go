package station

import (
	"fmt"
	"testing"

	"shop-location-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(groupID, stationID int64, name string, lines ...models.StationLine) models.GroupedStationCandidate {
	if len(lines) == 0 {
		lines = []models.StationLine{{StationID: stationID, LineName: name + "線"}}
	}
	return models.GroupedStationCandidate{
		GroupID:            groupID,
		StationID:          stationID,
		RepresentativeName: name,
		Lines:              lines,
	}
}

func TestAssignment_SelectMain(t *testing.T) {
	var pushed []bool
	a := NewAssignment(func(valid bool) { pushed = append(pushed, valid) })

	assert.Equal(t, PhaseSelectingMain, a.Phase())
	assert.False(t, a.Valid())
	assert.Nil(t, a.Main())

	main := a.SelectMain(candidate(100, 100, "渋谷"))
	assert.Equal(t, int64(100), main.ID)
	assert.Equal(t, PhaseSelectingSub, a.Phase())
	assert.True(t, a.Valid())
	assert.Equal(t, []bool{true}, pushed)
}

func TestAssignment_SelectMainClearsSubs(t *testing.T) {
	a := NewAssignment(nil)
	a.SelectMain(candidate(100, 100, "渋谷"))
	require.NoError(t, a.AddSub(candidate(200, 200, "恵比寿")))

	a.SelectMain(candidate(300, 300, "代官山"))
	assert.Empty(t, a.Subs())
	assert.Equal(t, "代官山", a.Main().Name)
}

func TestAssignment_AddSubSameAsMain(t *testing.T) {
	a := NewAssignment(nil)
	shibuya := candidate(100, 100, "渋谷")
	a.SelectMain(shibuya)

	err := a.AddSub(shibuya)
	assert.ErrorIs(t, err, ErrSameAsMain)
	assert.Equal(t, []models.Station{}, a.Subs())
}

func TestAssignment_AddSubRejections(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(a *Assignment)
		add      models.GroupedStationCandidate
		expected error
	}{
		{
			name:     "main not selected",
			setup:    func(a *Assignment) {},
			add:      candidate(100, 100, "渋谷"),
			expected: ErrMainNotSelected,
		},
		{
			name: "same as main by member id",
			setup: func(a *Assignment) {
				a.SelectMain(candidate(100, 100, "渋谷",
					models.StationLine{StationID: 100, LineName: "JR山手線"},
					models.StationLine{StationID: 101, LineName: "東急東横線"}))
			},
			add:      candidate(0, 101, "渋谷"),
			expected: ErrSameAsMain,
		},
		{
			name: "already selected",
			setup: func(a *Assignment) {
				a.SelectMain(candidate(100, 100, "渋谷"))
				_ = a.AddSub(candidate(200, 200, "恵比寿"))
			},
			add:      candidate(200, 201, "恵比寿"),
			expected: ErrAlreadySelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssignment(nil)
			tt.setup(a)
			before := a.Subs()

			err := a.AddSub(tt.add)
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, before, a.Subs())
		})
	}
}

func TestAssignment_MaxSubStations(t *testing.T) {
	a := NewAssignment(nil)
	a.SelectMain(candidate(1, 1, "main"))

	var errs []error
	for i := int64(2); i <= 5; i++ {
		errs = append(errs, a.AddSub(candidate(i, i, fmt.Sprintf("sub%d", i))))
	}

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.NoError(t, errs[2])
	assert.ErrorIs(t, errs[3], ErrMaxSubStations)
	assert.Len(t, a.Subs(), MaxSubStations)
}

func TestAssignment_RemoveSub(t *testing.T) {
	a := NewAssignment(nil)
	a.SelectMain(candidate(1, 1, "main"))
	require.NoError(t, a.AddSub(candidate(2, 2, "a")))
	require.NoError(t, a.AddSub(candidate(3, 3, "b")))

	a.RemoveSub(2)
	subs := a.Subs()
	require.Len(t, subs, 1)
	assert.Equal(t, int64(3), subs[0].ID)
	assert.Equal(t, PhaseSelectingSub, a.Phase())

	require.NoError(t, a.AddSub(candidate(2, 2, "a")), "removed station is addable again")
}

func TestAssignment_Reset(t *testing.T) {
	var pushed []bool
	a := NewAssignment(func(valid bool) { pushed = append(pushed, valid) })
	a.SelectMain(candidate(1, 1, "main"))
	require.NoError(t, a.AddSub(candidate(2, 2, "sub")))

	a.Reset()
	assert.Equal(t, PhaseSelectingMain, a.Phase())
	assert.Nil(t, a.Main())
	assert.Equal(t, []models.Station{}, a.Subs())
	assert.Equal(t, []bool{true, true, false}, pushed)
}

func TestAssignment_Addable(t *testing.T) {
	shibuya := candidate(100, 100, "渋谷")
	ebisu := candidate(200, 200, "恵比寿")
	daikanyama := candidate(0, 300, "代官山")
	shibuyaToyoko := candidate(100, 101, "渋谷")
	cands := []models.GroupedStationCandidate{shibuya, ebisu, daikanyama, shibuyaToyoko}

	a := NewAssignment(nil)
	assert.Equal(t, cands, a.Addable(cands))

	a.SelectMain(shibuya)
	require.NoError(t, a.AddSub(ebisu))

	addable := a.Addable(cands)
	assert.Equal(t, []models.GroupedStationCandidate{daikanyama}, addable)
	for _, c := range addable {
		assert.NotEqual(t, a.Main().GroupID, c.GroupID)
		for _, s := range a.Subs() {
			if s.GroupID != 0 {
				assert.NotEqual(t, s.GroupID, c.GroupID)
			}
		}
	}
}
