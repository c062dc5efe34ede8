package companies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/cadastro/internal/masterdata/shared"
	"github.com/odyssey-erp/cadastro/internal/masterdata/suppliers"
)

func TestValidateLinkAge_Boundaries(t *testing.T) {
	today := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC)
	pr := Company{Region: "PR"}

	tests := []struct {
		name    string
		birth   time.Time
		wantAge int
		ok      bool
	}{
		{name: "turns 18 today", birth: time.Date(2007, time.June, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "turns 18 tomorrow", birth: time.Date(2007, time.June, 16, 0, 0, 0, 0, time.UTC), wantAge: 17},
		{name: "turned 18 yesterday", birth: time.Date(2007, time.June, 14, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "born this year", birth: time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), wantAge: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			birth := tt.birth
			supplier := suppliers.Supplier{PersonType: suppliers.PersonIndividual, BirthDate: &birth}

			err := ValidateLinkAge(pr, supplier, today)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var ageErr *shared.AgeRestrictedError
			require.ErrorAs(t, err, &ageErr)
			assert.Equal(t, tt.wantAge, ageErr.Age)
			assert.Equal(t, "PR", ageErr.Region.Code)
		})
	}
}

func TestValidateLinkAge_RegionCaseInsensitive(t *testing.T) {
	birth := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	supplier := suppliers.Supplier{PersonType: suppliers.PersonIndividual, BirthDate: &birth}

	assert.Error(t, ValidateLinkAge(Company{Region: "pr"}, supplier, time.Now()))
	assert.NoError(t, ValidateLinkAge(Company{Region: "SC"}, supplier, time.Now()))
	assert.NoError(t, ValidateLinkAge(Company{Region: ""}, supplier, time.Now()))
}
