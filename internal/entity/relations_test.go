package entity_test

import (
	"sync"
	"testing"

	"anoa.com/bloodconnect/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parse(t *testing.T, model any) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

func TestDonationRecordBelongsToHospital(t *testing.T) {
	rel, ok := parse(t, &entity.DonationRecord{}).Relationships.Relations["Hospital"]
	require.True(t, ok)
	assert.Equal(t, schema.BelongsTo, rel.Type)
	require.Len(t, rel.References, 1)
	assert.Equal(t, "donation_history", rel.References[0].ForeignKey.Schema.Table)
	assert.Equal(t, "hospital_id", rel.References[0].ForeignKey.DBName)
	assert.Equal(t, "id", rel.References[0].PrimaryKey.DBName)
}

func TestHospitalCodeHasItsOwnColumn(t *testing.T) {
	s := parse(t, &entity.Hospital{})
	field := s.LookUpField("HospitalCode")
	require.NotNil(t, field)
	assert.Equal(t, "hospital_code", field.DBName)
	assert.Nil(t, s.LookUpField("hospital_id"))

	rel, ok := s.Relationships.Relations["BloodStock"]
	require.True(t, ok)
	assert.Equal(t, schema.HasMany, rel.Type)
	assert.Equal(t, "blood_stock", rel.References[0].ForeignKey.Schema.Table)
}
