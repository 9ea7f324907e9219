package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/services/dto"
	"github.com/hugovasko/intern-com-backend/pkg/apperrors"
)

type applicationFixture struct {
	users         *fakeUserRepo
	opportunities *fakeOpportunityRepo
	applications  *fakeApplicationRepo
	svc           ApplicationService
}

func newApplicationFixture() *applicationFixture {
	users := newFakeUserRepo()
	opportunities := newFakeOpportunityRepo(users)
	applications := newFakeApplicationRepo(opportunities)
	subscriptions := NewSubscriptionService(users, newFakeBillingProvider())
	return &applicationFixture{
		users:         users,
		opportunities: opportunities,
		applications:  applications,
		svc:           NewApplicationService(applications, opportunities, subscriptions),
	}
}

func (f *applicationFixture) seed() (candidate, partner *models.User, opp *models.Opportunity) {
	candidate = f.users.add(&models.User{
		FirstName: "Kim",
		Email:     strPtr("kim@test"),
		Role:      models.UserRoleCandidate,
	})
	partner = newPartner(f.users, "pat@acme.test")
	partner.SubscriptionStatus = models.SubscriptionStatusActive
	if err := f.users.Update(partner); err != nil {
		panic(err)
	}
	opp = f.opportunities.add(&models.Opportunity{Title: "Intern", CompanyID: partner.ID})
	return candidate, partner, opp
}

func TestApplicationCreate(t *testing.T) {
	f := newApplicationFixture()
	candidate, _, opp := f.seed()

	resp, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{
		OpportunityID: opp.ID,
		Message:       "Please hire me",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, resp.Status)
	assert.Equal(t, opp.ID, resp.OpportunityID)
	require.NotNil(t, resp.Opportunity)
	assert.Equal(t, "Intern", resp.Opportunity.Title)
}

func TestApplicationCreate_DuplicateRejected(t *testing.T) {
	f := newApplicationFixture()
	candidate, _, opp := f.seed()

	_, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: opp.ID})
	require.NoError(t, err)

	_, err = f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: opp.ID})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)
}

func TestApplicationCreate_InactiveCompany(t *testing.T) {
	f := newApplicationFixture()
	candidate, partner, opp := f.seed()

	partner.SubscriptionStatus = models.SubscriptionStatusCanceled
	require.NoError(t, f.users.Update(partner))

	_, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: opp.ID})
	assert.ErrorIs(t, err, apperrors.ErrOpportunityNotOpen)
}

func TestApplicationCreate_MissingOpportunity(t *testing.T) {
	f := newApplicationFixture()
	candidate, _, _ := f.seed()

	_, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: "missing"})
	require.Error(t, err)
	assert.Equal(t, 404, httpCodeOf(t, err))
}

func TestApplicationFindByCompany_GatedOnOwnSubscription(t *testing.T) {
	f := newApplicationFixture()
	candidate, partner, opp := f.seed()

	_, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: opp.ID})
	require.NoError(t, err)

	list, err := f.svc.FindByCompany(partner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Candidate)
	assert.Equal(t, "Kim", list[0].Candidate.FirstName)

	partner.SubscriptionStatus = models.SubscriptionStatusPastDue
	require.NoError(t, f.users.Update(partner))

	_, err = f.svc.FindByCompany(partner.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionRequired)
}

func TestApplicationFindOne_AccessMatrix(t *testing.T) {
	f := newApplicationFixture()
	candidate, partner, opp := f.seed()
	stranger := f.users.add(&models.User{Role: models.UserRoleCandidate, Email: strPtr("who@test")})

	created, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: opp.ID})
	require.NoError(t, err)

	_, err = f.svc.FindOne(candidate.ID, models.UserRoleCandidate, created.ID)
	assert.NoError(t, err, "owning candidate sees it")

	_, err = f.svc.FindOne(partner.ID, models.UserRolePartner, created.ID)
	assert.NoError(t, err, "owning partner sees it")

	_, err = f.svc.FindOne("root", models.UserRoleAdmin, created.ID)
	assert.NoError(t, err, "admin sees everything")

	_, err = f.svc.FindOne(stranger.ID, models.UserRoleCandidate, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestApplicationUpdate_StatusAndNote(t *testing.T) {
	f := newApplicationFixture()
	candidate, partner, opp := f.seed()

	created, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: opp.ID})
	require.NoError(t, err)

	accepted := "accepted"
	note := "Strong profile"
	updated, err := f.svc.Update(partner.ID, models.UserRolePartner, created.ID, &dto.UpdateApplicationRequest{
		Status: &accepted,
		Note:   &note,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)
	assert.Equal(t, "Strong profile", updated.Note)

	bogus := "on-hold"
	_, err = f.svc.Update(partner.ID, models.UserRolePartner, created.ID, &dto.UpdateApplicationRequest{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, 400, httpCodeOf(t, err))
}

func TestApplicationUpdate_OnlyReviewerOrAdmin(t *testing.T) {
	f := newApplicationFixture()
	candidate, _, opp := f.seed()
	otherPartner := newPartner(f.users, "rival@corp.test")

	created, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: opp.ID})
	require.NoError(t, err)

	rejected := "rejected"

	_, err = f.svc.Update(candidate.ID, models.UserRoleCandidate, created.ID, &dto.UpdateApplicationRequest{Status: &rejected})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions, "candidates cannot move their own application")

	_, err = f.svc.Update(otherPartner.ID, models.UserRolePartner, created.ID, &dto.UpdateApplicationRequest{Status: &rejected})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	updated, err := f.svc.Update("root", models.UserRoleAdmin, created.ID, &dto.UpdateApplicationRequest{Status: &rejected})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, updated.Status)
}

func TestApplicationDelete(t *testing.T) {
	f := newApplicationFixture()
	candidate, _, opp := f.seed()

	created, err := f.svc.Create(candidate.ID, &dto.CreateApplicationRequest{OpportunityID: opp.ID})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(created.ID))

	err = f.svc.Delete(created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, httpCodeOf(t, err))
}
