package admin

import (
	"context"
	"testing"
	"time"

	"anoa.com/bloodconnect/internal/entity"
	"anoa.com/bloodconnect/internal/modules/admin/repository"
	"anoa.com/bloodconnect/internal/testutil"
	"anoa.com/bloodconnect/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	donor    *entity.DonorProfile
	hospital *entity.Hospital
	request  *entity.WillingnessRequest
}

// seed builds a donor whose request was approved by a hospital, with stock,
// a donation record and a dismissal in place.
func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	donor := testutil.CreateDonor(t, db, "Asha", "O-")
	hospital := testutil.CreateHospital(t, db, "H-001", "Pune")

	require.NoError(t, db.Create(&entity.StockEntry{HospitalID: hospital.ID, BloodGroup: "O-", UnitsAvailable: 4}).Error)

	at := time.Now().UTC()
	req := &entity.WillingnessRequest{
		DonorID:     donor.ID,
		DonorName:   donor.FullName,
		BloodGroup:  donor.BloodGroup,
		City:        donor.City,
		Status:      entity.StatusApproved,
		RespondedBy: &hospital.ID,
		RespondedAt: &at,
	}
	require.NoError(t, db.Create(req).Error)
	require.NoError(t, db.Create(&entity.DonationRecord{
		DonorID:      donor.ID,
		HospitalID:   hospital.ID,
		BloodGroup:   donor.BloodGroup,
		DonationDate: at,
	}).Error)
	require.NoError(t, db.Create(&entity.RequestDismissal{HospitalID: hospital.ID, RequestID: req.ID}).Error)

	return fixture{donor: donor, hospital: hospital, request: req}
}

func count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestDeleteHospitalKeepsRequestStatus(t *testing.T) {
	db := testutil.NewDB(t)
	f := seed(t, db)
	index := testutil.NewHospitalIndex()
	require.NoError(t, index.IndexHospitals(*f.hospital))

	svc := NewAdminService(repository.NewAdminRepository(db), index, nil, testutil.Logger())
	require.NoError(t, svc.DeleteHospital(context.Background(), f.hospital.ID))

	assert.Zero(t, count(t, db, &entity.Hospital{}, "id = ?", f.hospital.ID))
	assert.Zero(t, count(t, db, &entity.Account{}, "id = ?", f.hospital.AccountID))
	assert.Zero(t, count(t, db, &entity.StockEntry{}, "hospital_id = ?", f.hospital.ID))
	assert.Zero(t, count(t, db, &entity.DonationRecord{}, "hospital_id = ?", f.hospital.ID))
	assert.Zero(t, count(t, db, &entity.RequestDismissal{}, "hospital_id = ?", f.hospital.ID))

	var req entity.WillingnessRequest
	require.NoError(t, db.First(&req, "id = ?", f.request.ID).Error)
	assert.Equal(t, entity.StatusApproved, req.Status)
	assert.Nil(t, req.RespondedBy)

	assert.NotContains(t, index.Docs, f.hospital.ID)
}

func TestDeleteDonorRemovesEverything(t *testing.T) {
	db := testutil.NewDB(t)
	f := seed(t, db)
	images := testutil.NewImageStorage()

	avatar := "https://res.cloudinary.test/image/upload/v1/avatars/asha.webp"
	require.NoError(t, db.Model(&entity.DonorProfile{}).Where("id = ?", f.donor.ID).Update("avatar_url", avatar).Error)

	svc := NewAdminService(repository.NewAdminRepository(db), nil, images, testutil.Logger())
	require.NoError(t, svc.DeleteDonor(context.Background(), f.donor.ID))

	assert.Zero(t, count(t, db, &entity.DonorProfile{}, "id = ?", f.donor.ID))
	assert.Zero(t, count(t, db, &entity.Account{}, "id = ?", f.donor.AccountID))
	assert.Zero(t, count(t, db, &entity.WillingnessRequest{}, "donor_id = ?", f.donor.ID))
	assert.Zero(t, count(t, db, &entity.DonationRecord{}, "donor_id = ?", f.donor.ID))
	assert.Zero(t, count(t, db, &entity.RequestDismissal{}, "request_id = ?", f.request.ID))
	assert.Equal(t, []string{avatar}, images.Deleted)

	// the hospital is untouched
	assert.EqualValues(t, 1, count(t, db, &entity.Hospital{}, "id = ?", f.hospital.ID))
	assert.EqualValues(t, 1, count(t, db, &entity.StockEntry{}, "hospital_id = ?", f.hospital.ID))
}

func TestDeleteUnknownReturnsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(repository.NewAdminRepository(db), nil, nil, testutil.Logger())

	assert.ErrorIs(t, svc.DeleteHospital(context.Background(), uuid.New()), apperror.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteDonor(context.Background(), uuid.New()), apperror.ErrNotFound)
}

func TestListsAndStats(t *testing.T) {
	db := testutil.NewDB(t)
	f := seed(t, db)
	pending := &entity.WillingnessRequest{DonorID: f.donor.ID, DonorName: "Asha", BloodGroup: "O-"}
	require.NoError(t, db.Create(pending).Error)

	svc := NewAdminService(repository.NewAdminRepository(db), nil, nil, testutil.Logger())
	ctx := context.Background()

	hospitals, err := svc.ListHospitals(ctx)
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	assert.Len(t, hospitals[0].BloodStock, 1)

	donors, err := svc.ListDonors(ctx)
	require.NoError(t, err)
	assert.Len(t, donors, 1)

	reqs, err := svc.ListRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, reqs, 2)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Hospitals)
	assert.EqualValues(t, 1, stats.Donors)
	assert.EqualValues(t, 1, stats.PendingRequests)
	assert.EqualValues(t, 1, stats.Donations)
}
