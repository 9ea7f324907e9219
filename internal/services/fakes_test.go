package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hugovasko/intern-com-backend/internal/billing"
	"github.com/hugovasko/intern-com-backend/internal/github"
	"github.com/hugovasko/intern-com-backend/internal/models"
	"github.com/hugovasko/intern-com-backend/internal/repositories"
)

// In-memory repository fakes. Pointers are never shared with callers so
// tests observe only persisted state, like a real database.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	c := *u
	r.users[u.ID] = &c
	return u
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.Email != nil {
		for _, u := range r.users {
			if u.Email != nil && *u.Email == *user.Email {
				return repositories.ErrUserAlreadyExists
			}
		}
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByGithubID(githubID string) (*models.User, error) {
	for _, u := range r.users {
		if u.GithubID != nil && *u.GithubID == githubID {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByStripeCustomerID(customerID string) (*models.User, error) {
	for _, u := range r.users {
		if u.StripeCustomerID == customerID {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(role models.UserRole) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindPartnersWithCoordinates() ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Role == models.UserRolePartner && u.CompanyCoordinates != "" {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	if user.Email != nil {
		for id, u := range r.users {
			if id != user.ID && u.Email != nil && *u.Email == *user.Email {
				return repositories.ErrUserAlreadyExists
			}
		}
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) UpdateRole(userID string, role models.UserRole) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) UpdateCV(userID string, cv []byte, fileName, mimeType string, uploadedAt *time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.CV = cv
	u.CVFileName = fileName
	u.CVMimeType = mimeType
	u.CVUploadedAt = uploadedAt
	return nil
}

func (r *fakeUserRepo) UpdateSubscriptionByCustomer(customerID, status string, endDate *time.Time) error {
	for _, u := range r.users {
		if u.StripeCustomerID == customerID {
			u.SubscriptionStatus = status
			u.SubscriptionEndDate = endDate
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (r *fakeUserRepo) DeleteCascade(userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

type fakeOpportunityRepo struct {
	opportunities map[string]*models.Opportunity
	users         *fakeUserRepo
}

func newFakeOpportunityRepo(users *fakeUserRepo) *fakeOpportunityRepo {
	return &fakeOpportunityRepo{
		opportunities: make(map[string]*models.Opportunity),
		users:         users,
	}
}

func (r *fakeOpportunityRepo) add(o *models.Opportunity) *models.Opportunity {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	c := *o
	c.Company = nil
	r.opportunities[o.ID] = &c
	return o
}

func (r *fakeOpportunityRepo) Create(opportunity *models.Opportunity) error {
	r.add(opportunity)
	return nil
}

func (r *fakeOpportunityRepo) FindByID(id string) (*models.Opportunity, error) {
	o, ok := r.opportunities[id]
	if !ok {
		return nil, repositories.ErrOpportunityNotFound
	}
	c := *o
	if company, err := r.users.FindByID(c.CompanyID); err == nil {
		c.Company = company
	}
	return &c, nil
}

func (r *fakeOpportunityRepo) FindAllActive(field string) ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, o := range r.opportunities {
		company, err := r.users.FindByID(o.CompanyID)
		if err != nil || company.SubscriptionStatus != models.SubscriptionStatusActive {
			continue
		}
		if field != "" && o.Field != field {
			continue
		}
		c := *o
		c.Company = company
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeOpportunityRepo) FindByCompany(companyID string) ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, o := range r.opportunities {
		if o.CompanyID == companyID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOpportunityRepo) Update(opportunity *models.Opportunity) error {
	if _, ok := r.opportunities[opportunity.ID]; !ok {
		return repositories.ErrOpportunityNotFound
	}
	c := *opportunity
	c.Company = nil
	r.opportunities[opportunity.ID] = &c
	return nil
}

func (r *fakeOpportunityRepo) Delete(id string) error {
	if _, ok := r.opportunities[id]; !ok {
		return repositories.ErrOpportunityNotFound
	}
	delete(r.opportunities, id)
	return nil
}

type fakeApplicationRepo struct {
	applications  map[string]*models.Application
	opportunities *fakeOpportunityRepo
}

func newFakeApplicationRepo(opportunities *fakeOpportunityRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications:  make(map[string]*models.Application),
		opportunities: opportunities,
	}
}

func (r *fakeApplicationRepo) Create(application *models.Application) error {
	for _, a := range r.applications {
		if a.CandidateID == application.CandidateID && a.OpportunityID == application.OpportunityID {
			return repositories.ErrDuplicateApplication
		}
	}
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	c := *application
	c.Candidate = nil
	c.Opportunity = nil
	r.applications[application.ID] = &c
	return nil
}

func (r *fakeApplicationRepo) FindByID(id string) (*models.Application, error) {
	a, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	c := *a
	if opp, err := r.opportunities.FindByID(c.OpportunityID); err == nil {
		c.Opportunity = opp
	}
	if candidate, err := r.opportunities.users.FindByID(c.CandidateID); err == nil {
		c.Candidate = candidate
	}
	return &c, nil
}

func (r *fakeApplicationRepo) FindAll() ([]models.Application, error) {
	var out []models.Application
	for id := range r.applications {
		a, _ := r.FindByID(id)
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindByCandidate(candidateID string) ([]models.Application, error) {
	var out []models.Application
	for id, a := range r.applications {
		if a.CandidateID == candidateID {
			full, _ := r.FindByID(id)
			out = append(out, *full)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindByCompany(companyID string) ([]models.Application, error) {
	var out []models.Application
	for id, a := range r.applications {
		opp, err := r.opportunities.FindByID(a.OpportunityID)
		if err != nil || opp.CompanyID != companyID {
			continue
		}
		full, _ := r.FindByID(id)
		out = append(out, *full)
	}
	return out, nil
}

func (r *fakeApplicationRepo) ExistsForCompanyByCandidate(candidateID, companyID string) (bool, error) {
	for _, a := range r.applications {
		if a.CandidateID != candidateID {
			continue
		}
		opp, err := r.opportunities.FindByID(a.OpportunityID)
		if err == nil && opp.CompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) Update(application *models.Application) error {
	if _, ok := r.applications[application.ID]; !ok {
		return repositories.ErrApplicationNotFound
	}
	c := *application
	c.Candidate = nil
	c.Opportunity = nil
	r.applications[application.ID] = &c
	return nil
}

func (r *fakeApplicationRepo) Delete(id string) error {
	if _, ok := r.applications[id]; !ok {
		return repositories.ErrApplicationNotFound
	}
	delete(r.applications, id)
	return nil
}

// fakeBillingProvider scripts provider responses per test.
type fakeBillingProvider struct {
	customerSeq  int
	createErr    error
	intents      map[string]*billing.PaymentIntent
	event        *billing.Event
	eventErr     error
	canceledSubs []string
	cancelStatus string
}

func newFakeBillingProvider() *fakeBillingProvider {
	return &fakeBillingProvider{
		intents:      make(map[string]*billing.PaymentIntent),
		cancelStatus: "canceled",
	}
}

func (p *fakeBillingProvider) CreateCustomer(email, userID string) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	p.customerSeq++
	return fmt.Sprintf("cus_%03d", p.customerSeq), nil
}

func (p *fakeBillingProvider) CreateSubscription(customerID, userID string) (*billing.CheckoutIntent, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &billing.CheckoutIntent{
		SubscriptionID: "sub_for_" + customerID,
		Status:         "incomplete",
		ClientSecret:   "pi_secret_" + customerID,
	}, nil
}

func (p *fakeBillingProvider) CancelSubscription(subscriptionID string) (*billing.Subscription, error) {
	p.canceledSubs = append(p.canceledSubs, subscriptionID)
	return &billing.Subscription{ID: subscriptionID, Status: p.cancelStatus}, nil
}

func (p *fakeBillingProvider) RetrievePaymentIntent(id string) (*billing.PaymentIntent, error) {
	intent, ok := p.intents[id]
	if !ok {
		return nil, errors.New("no such payment intent")
	}
	return intent, nil
}

func (p *fakeBillingProvider) ConstructEvent(payload []byte, signature string) (*billing.Event, error) {
	if p.eventErr != nil {
		return nil, p.eventErr
	}
	return p.event, nil
}

// fakeGitHubClient scripts the OAuth flow.
type fakeGitHubClient struct {
	codes map[string]string
	users map[string]*github.AuthenticatedUser
}

func newFakeGitHubClient() *fakeGitHubClient {
	return &fakeGitHubClient{
		codes: make(map[string]string),
		users: make(map[string]*github.AuthenticatedUser),
	}
}

func (c *fakeGitHubClient) ExchangeCode(code string) (string, error) {
	token, ok := c.codes[code]
	if !ok {
		return "", errors.New("bad verification code")
	}
	return token, nil
}

func (c *fakeGitHubClient) FetchAuthenticatedUser(accessToken string) (*github.AuthenticatedUser, error) {
	user, ok := c.users[accessToken]
	if !ok {
		return nil, errors.New("bad credentials")
	}
	return user, nil
}
