package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfitSettings_PercentageSum(t *testing.T) {
	settings := ProfitSettings{
		MasterPaid:    30,
		MasterBalance: 30,
		Curator:       5,
		Company:       35,
	}

	assert.Equal(t, 100, settings.PercentageSum())
}

func TestProfitSettings_Scope(t *testing.T) {
	global := ProfitSettings{}
	assert.False(t, global.IsIndividual())
	assert.Equal(t, ProfitScopeGlobal, global.Scope())

	masterID := uint(3)
	individual := ProfitSettings{MasterID: &masterID}
	assert.True(t, individual.IsIndividual())
	assert.Equal(t, ProfitScopeIndividual, individual.Scope())
}
