package service

import (
	"errors"
	"testing"

	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/stretchr/testify/assert"
)

func quotaSub(plan, status string) *model.Subscription {
	return &model.Subscription{
		ID:     "sub-1",
		UserID: "owner-1",
		PlanID: plan,
		Status: status,
	}
}

func TestCheckUploadFreeTierDefault(t *testing.T) {
	docs := &fakeDocRepo{seedBytes: model.FreeTierStorageBytes - 100}
	svc := NewQuotaService(&fakeSubRepo{}, docs)

	// no subscription record falls back to the free tier quota
	assert.NoError(t, svc.CheckUpload("org-1", "owner-1", 100))
	assert.ErrorIs(t, svc.CheckUpload("org-1", "owner-1", 101), ErrStorageQuotaExceeded)
}

func TestCheckUploadPaidPlan(t *testing.T) {
	subs := &fakeSubRepo{subs: map[string]*model.Subscription{
		"owner-1": quotaSub(model.SubscriptionPlanPro, model.SubscriptionStatusActive),
	}}
	docs := &fakeDocRepo{seedBytes: 10 << 30}
	svc := NewQuotaService(subs, docs)

	// well past the free tier, within the pro quota
	assert.NoError(t, svc.CheckUpload("org-1", "owner-1", 1<<20))
}

func TestCheckUploadEnterpriseUnlimited(t *testing.T) {
	subs := &fakeSubRepo{subs: map[string]*model.Subscription{
		"owner-1": quotaSub(model.SubscriptionPlanEnterprise, model.SubscriptionStatusActive),
	}}
	docs := &fakeDocRepo{seedBytes: 500 << 30}
	svc := NewQuotaService(subs, docs)

	assert.NoError(t, svc.CheckUpload("org-1", "owner-1", 1<<30))
}

func TestCheckUploadCancelledPlanFallsBackToFreeTier(t *testing.T) {
	subs := &fakeSubRepo{subs: map[string]*model.Subscription{
		"owner-1": quotaSub(model.SubscriptionPlanPro, model.SubscriptionStatusCancelled),
	}}
	docs := &fakeDocRepo{seedBytes: 2 << 30}
	svc := NewQuotaService(subs, docs)

	assert.ErrorIs(t, svc.CheckUpload("org-1", "owner-1", 1), ErrStorageQuotaExceeded)
}

func TestCheckUploadAdmitsOnUsageReadFailure(t *testing.T) {
	docs := &fakeDocRepo{sizeErr: errors.New("db down")}
	svc := NewQuotaService(&fakeSubRepo{}, docs)

	// quota degrades open rather than blocking intake
	assert.NoError(t, svc.CheckUpload("org-1", "owner-1", 512))
}
