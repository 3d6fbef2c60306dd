package service

import (
	"testing"

	"teadesk-system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDeskBumpsNumDesks(t *testing.T) {
	svc := newTestService(t)

	reg, err := svc.Desks.SaveDesk("acme", "20", domain.DeskInfo{Building: "HQ", Floor: "4", TeaBoy: "Ali"})
	require.NoError(t, err)
	assert.Equal(t, 20, reg.NumDesks)
	assert.Equal(t, "Ali", reg.Desks["20"].TeaBoy)

	// a lower id never lowers the counter
	reg, err = svc.Desks.SaveDesk("acme", "3", domain.DeskInfo{})
	require.NoError(t, err)
	assert.Equal(t, 20, reg.NumDesks)
}

func TestSaveDeskNonNumericIDLeavesCounter(t *testing.T) {
	svc := newTestService(t)

	before := svc.Desks.Get("acme").NumDesks
	reg, err := svc.Desks.SaveDesk("acme", "lobby", domain.DeskInfo{Building: "Annex"})
	require.NoError(t, err)
	assert.Equal(t, before, reg.NumDesks)
	assert.Equal(t, "Annex", reg.Desks["lobby"].Building)
}

func TestSaveDeskRequiresID(t *testing.T) {
	svc := newTestService(t)
	var verr *domain.ValidationError
	_, err := svc.Desks.SaveDesk("acme", "", domain.DeskInfo{})
	require.ErrorAs(t, err, &verr)
}

func TestSaveAllNormalizesRegistry(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.Desks.SaveAll("acme", domain.DeskRegistry{
		NumDesks: 2,
		Desks: map[string]domain.DeskInfo{
			"1": {TeaBoy: "Omar"},
			"8": {TeaBoy: "Ali"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, saved.NumDesks)

	got := svc.Desks.Get("acme")
	assert.Equal(t, saved, got)
}

func TestSaveAllNilDesksBecomesEmptyMap(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.Desks.SaveAll("acme", domain.DeskRegistry{NumDesks: 4})
	require.NoError(t, err)
	require.NotNil(t, saved.Desks)
	assert.Empty(t, saved.Desks)
}
