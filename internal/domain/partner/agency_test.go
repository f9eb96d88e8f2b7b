package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAgency(t *testing.T) {
	agency, err := NewAgency("North Region", "NR-01")
	require.NoError(t, err)
	assert.True(t, agency.Active)
	assert.Nil(t, agency.DiscountLimitPercent)

	_, err = NewAgency("", "NR-01")
	assert.Error(t, err)

	_, err = NewAgency("North Region", "")
	assert.Error(t, err)
}

func TestAgency_SetDiscountLimit(t *testing.T) {
	agency, err := NewAgency("North Region", "NR-01")
	require.NoError(t, err)

	require.NoError(t, agency.SetDiscountLimit(decimal.NewFromInt(30)))
	require.NotNil(t, agency.DiscountLimitPercent)
	assert.True(t, agency.DiscountLimitPercent.Equal(decimal.NewFromInt(30)))

	assert.Error(t, agency.SetDiscountLimit(decimal.NewFromInt(-1)))
	assert.Error(t, agency.SetDiscountLimit(decimal.NewFromInt(101)))

	agency.ClearDiscountLimit()
	assert.Nil(t, agency.DiscountLimitPercent)
}

func TestNewCustomer(t *testing.T) {
	agencyID := uuid.New()

	customer, err := NewCustomer(agencyID, "Acme Grocers", "555-0101", "5 High St")
	require.NoError(t, err)
	assert.Equal(t, agencyID, customer.AgencyID)
	assert.True(t, customer.Active)

	_, err = NewCustomer(agencyID, "", "", "")
	assert.Error(t, err)

	require.NoError(t, customer.Rename("Acme Wholesale"))
	assert.Equal(t, "Acme Wholesale", customer.Name)
	assert.Error(t, customer.Rename(""))

	customer.Deactivate()
	assert.False(t, customer.Active)
}
