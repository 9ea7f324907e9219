package services

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

type userFixture struct {
	users         *fakeUserRepo
	opportunities *fakeOpportunityRepo
	applications  *fakeApplicationRepo
	svc           UserService
}

func newUserFixture() *userFixture {
	users := newFakeUserRepo()
	opportunities := newFakeOpportunityRepo(users)
	applications := newFakeApplicationRepo(opportunities)
	return &userFixture{
		users:         users,
		opportunities: opportunities,
		applications:  applications,
		svc:           NewUserService(users, applications),
	}
}

func cvRequest(size int) *dto.UploadCVRequest {
	return &dto.UploadCVRequest{
		FileName: "cv.pdf",
		MimeType: "application/pdf",
		Data:     base64.StdEncoding.EncodeToString(make([]byte, size)),
	}
}

func TestUploadCV_SizeBoundary(t *testing.T) {
	f := newUserFixture()
	candidate := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})

	require.NoError(t, f.svc.UploadCV(candidate.ID, cvRequest(MaxCVSize)),
		"exactly 10 MiB is accepted")

	err := f.svc.UploadCV(candidate.ID, cvRequest(MaxCVSize+1))
	assert.ErrorIs(t, err, apperrors.ErrCVTooLarge)

	stored, _ := f.users.FindByID(candidate.ID)
	assert.Len(t, stored.CV, MaxCVSize, "rejected upload must not replace the stored CV")
	assert.Equal(t, "cv.pdf", stored.CVFileName)
	assert.NotNil(t, stored.CVUploadedAt)
}

func TestUploadCV_InvalidBase64(t *testing.T) {
	f := newUserFixture()
	candidate := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})

	err := f.svc.UploadCV(candidate.ID, &dto.UploadCVRequest{
		FileName: "cv.pdf",
		MimeType: "application/pdf",
		Data:     "not%%%base64",
	})
	require.Error(t, err)
	assert.Equal(t, 400, httpCodeOf(t, err))
}

func TestDownloadCV_AccessMatrix(t *testing.T) {
	f := newUserFixture()
	candidate := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})
	partner := newPartner(f.users, "pat@acme.test")
	rival := newPartner(f.users, "rival@corp.test")

	require.NoError(t, f.svc.UploadCV(candidate.ID, cvRequest(128)))

	opp := f.opportunities.add(&models.Opportunity{Title: "Intern", CompanyID: partner.ID})
	require.NoError(t, f.applications.Create(&models.Application{
		CandidateID:   candidate.ID,
		OpportunityID: opp.ID,
		Status:        models.ApplicationStatusPending,
	}))

	file, err := f.svc.DownloadCV(candidate.ID, models.UserRoleCandidate, candidate.ID)
	require.NoError(t, err, "owner downloads own CV")
	assert.Equal(t, "cv.pdf", file.FileName)
	assert.Len(t, file.Data, 128)

	_, err = f.svc.DownloadCV("root", models.UserRoleAdmin, candidate.ID)
	assert.NoError(t, err, "admin downloads any CV")

	_, err = f.svc.DownloadCV(partner.ID, models.UserRolePartner, candidate.ID)
	assert.NoError(t, err, "partner with an application from the candidate")

	_, err = f.svc.DownloadCV(rival.ID, models.UserRolePartner, candidate.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions,
		"partner without an application is locked out")
}

func TestDownloadCV_Missing(t *testing.T) {
	f := newUserFixture()
	candidate := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})

	_, err := f.svc.DownloadCV(candidate.ID, models.UserRoleCandidate, candidate.ID)
	assert.ErrorIs(t, err, apperrors.ErrCVNotFound)
}

func TestRemoveCV(t *testing.T) {
	f := newUserFixture()
	candidate := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})
	stranger := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("eve@test")})

	require.NoError(t, f.svc.UploadCV(candidate.ID, cvRequest(64)))

	err := f.svc.RemoveCV(stranger.ID, models.UserRoleCandidate, candidate.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, f.svc.RemoveCV(candidate.ID, models.UserRoleCandidate, candidate.ID))

	stored, _ := f.users.FindByID(candidate.ID)
	assert.Empty(t, stored.CV)
	assert.Empty(t, stored.CVFileName)
	assert.Empty(t, stored.CVMimeType)
	assert.Nil(t, stored.CVUploadedAt)

	err = f.svc.RemoveCV(candidate.ID, models.UserRoleCandidate, candidate.ID)
	assert.ErrorIs(t, err, apperrors.ErrCVNotFound)
}

func TestUserUpdate_SelfOrAdmin(t *testing.T) {
	f := newUserFixture()
	candidate := f.users.add(&models.User{FirstName: "Kim", Role: models.UserRoleCandidate, Email: strPtr("kim@test")})
	stranger := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("eve@test")})

	newName := "Kimberly"

	_, err := f.svc.Update(stranger.ID, models.UserRoleCandidate, candidate.ID, &dto.UpdateUserRequest{FirstName: &newName})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	updated, err := f.svc.Update(candidate.ID, models.UserRoleCandidate, candidate.ID, &dto.UpdateUserRequest{FirstName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Kimberly", updated.FirstName)

	phone := "+359888123456"
	updated, err = f.svc.Update("root", models.UserRoleAdmin, candidate.ID, &dto.UpdateUserRequest{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.PhoneNumber)
}

func TestUserUpdate_EmailConflict(t *testing.T) {
	f := newUserFixture()
	f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("taken@test")})
	candidate := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})

	taken := "taken@test"
	_, err := f.svc.Update(candidate.ID, models.UserRoleCandidate, candidate.ID, &dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUpdateRole(t *testing.T) {
	f := newUserFixture()
	candidate := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})

	updated, err := f.svc.UpdateRole(candidate.ID, &dto.UpdateRoleRequest{Role: "partner"})
	require.NoError(t, err)
	assert.Equal(t, models.UserRolePartner, updated.Role)

	_, err = f.svc.UpdateRole("missing", &dto.UpdateRoleRequest{Role: "partner"})
	require.Error(t, err)
	assert.Equal(t, 404, httpCodeOf(t, err))
}

func TestFindAll_RoleFilter(t *testing.T) {
	f := newUserFixture()
	f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})
	newPartner(f.users, "pat@acme.test")

	all, err := f.svc.FindAll("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	partners, err := f.svc.FindAll("partner")
	require.NoError(t, err)
	require.Len(t, partners, 1)
	assert.Equal(t, models.UserRolePartner, partners[0].Role)

	_, err = f.svc.FindAll("wizard")
	require.Error(t, err)
	assert.Equal(t, 400, httpCodeOf(t, err))
}

func TestPartnersCoordinates(t *testing.T) {
	f := newUserFixture()
	withCoords := newPartner(f.users, "pat@acme.test")
	withCoords.CompanyCoordinates = "42.69,23.32"
	require.NoError(t, f.users.Update(withCoords))
	newPartner(f.users, "nocoords@corp.test")
	f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})

	list, err := f.svc.PartnersCoordinates()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "42.69,23.32", list[0].CompanyCoordinates)
	assert.Equal(t, "Acme", list[0].CompanyName)
}

func TestUserDelete(t *testing.T) {
	f := newUserFixture()
	candidate := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("kim@test")})

	require.NoError(t, f.svc.Delete(candidate.ID))

	err := f.svc.Delete(candidate.ID)
	require.Error(t, err)
	assert.Equal(t, 404, httpCodeOf(t, err))
}
