package donation

import (
	"context"
	"testing"
	"time"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/donation/repository"
	"anoa.com/bloodconnect/internal/testutil"
	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func record(t *testing.T, db *gorm.DB, donorID, hospitalID uuid.UUID, at time.Time) *entity.DonationRecord {
	t.Helper()
	rec := &entity.DonationRecord{
		DonorID:      donorID,
		HospitalID:   hospitalID,
		BloodGroup:   "O-",
		DonationDate: at,
	}
	require.NoError(t, db.Create(rec).Error)
	return rec
}

func TestHistoryNewestFirstWithHospital(t *testing.T) {
	db := testutil.NewDB(t)
	donor := testutil.CreateDonor(t, db, "Asha", "O-")
	h := testutil.CreateHospital(t, db, "H-001", "Pune")
	svc := NewDonationService(repository.NewDonationRepository(db))

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	first := record(t, db, donor.ID, h.ID, base)
	second := record(t, db, donor.ID, h.ID, base.AddDate(0, 3, 0))

	other := testutil.CreateDonor(t, db, "Ravi", "A+")
	record(t, db, other.ID, h.ID, base)

	history, err := svc.History(context.Background(), donor.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, "Hospital H-001", history[0].HospitalName)
	assert.Equal(t, "Pune", history[0].HospitalCity)
}

func TestCertificate(t *testing.T) {
	db := testutil.NewDB(t)
	donor := testutil.CreateDonor(t, db, "Asha  Patil", "O-")
	h := testutil.CreateHospital(t, db, "H-001", "Pune")
	svc := NewDonationService(repository.NewDonationRepository(db))

	rec := record(t, db, donor.ID, h.ID, time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC))

	cert, err := svc.Certificate(context.Background(), donor.ID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha  Patil", cert.DonorName)
	assert.Equal(t, "O-", cert.BloodGroup)
	assert.Equal(t, "Hospital H-001", cert.HospitalName)
	assert.Equal(t, "February 14, 2026", cert.FormattedDate)
	assert.Equal(t, "BloodDonation_Certificate_Asha_Patil_2026-02-14.pdf", cert.FileName)
	assert.Regexp(t, `^BC-20260214-[0-9A-F]{8}$`, cert.Number)
	assert.Contains(t, cert.Statement, "Hospital H-001")
}

func TestCertificateOfAnotherDonorIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateDonor(t, db, "Asha", "O-")
	intruder := testutil.CreateDonor(t, db, "Ravi", "A+")
	h := testutil.CreateHospital(t, db, "H-001", "Pune")
	svc := NewDonationService(repository.NewDonationRepository(db))

	rec := record(t, db, owner.ID, h.ID, time.Now())

	_, err := svc.Certificate(context.Background(), intruder.ID, rec.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Certificate(context.Background(), owner.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
