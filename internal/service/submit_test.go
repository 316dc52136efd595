package service

import (
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/ownitpro/omgsystems/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submitFixture struct {
	svc         *SubmitService
	portals     *fakePortalRepo
	requests    *fakeRequestRepo
	submissions *repository.MemorySubmissionStore
	folders     *fakeFolderRepo
	docs        *fakeDocRepo
	subs        *fakeSubRepo
	notifs      *fakeNotifRepo
	emailer     *fakeEmailer
}

func newSubmitFixture() *submitFixture {
	portal := testPortal()
	portals := &fakePortalRepo{portals: map[string]*model.Portal{portal.ID: portal}}
	requests := &fakeRequestRepo{requests: map[string]*model.PortalRequest{
		"req-1": {ID: "req-1", PortalID: "portal-1", Label: "Tax Return 2025", CreatedAt: time.Now()},
		"req-other": {ID: "req-other", PortalID: "portal-2", Label: "Payslip", CreatedAt: time.Now()},
	}}
	submissions := repository.NewMemorySubmissionStore()
	folders := &fakeFolderRepo{}
	docs := &fakeDocRepo{}
	subs := &fakeSubRepo{}
	notifs := &fakeNotifRepo{}
	emailer := &fakeEmailer{}

	notifications := NewNotificationService(
		notifs,
		&fakeUserRepo{users: map[string]*model.User{
			"creator": {ID: "creator", Email: "creator@org.example"},
		}},
		&fakeOrgRepo{orgs: map[string]*model.Organization{"org-1": {ID: "org-1", Name: "Acme"}}},
		emailer,
	)

	svc := NewSubmitService(
		portals,
		requests,
		submissions,
		NewFolderService(folders),
		NewDocumentService(docs),
		notifications,
		NewQuotaService(subs, docs),
		"securevault-documents",
		100<<20,
	)

	return &submitFixture{
		svc:         svc,
		portals:     portals,
		requests:    requests,
		submissions: submissions,
		folders:     folders,
		docs:        docs,
		subs:        subs,
		notifs:      notifs,
		emailer:     emailer,
	}
}

func TestSubmitRequestRoute(t *testing.T) {
	f := newSubmitFixture()

	sub, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName:  "tax-return.pdf",
		Bytes:     2048,
		RequestID: strptr("req-1"),
		ItemKey:   strptr("item-1"),
		FileKey:   "uploads/2026/tax-return.pdf",
	})
	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.Equal(t, "portal-1", sub.PortalID)
	assert.Equal(t, "req-1", *sub.RequestID)
	assert.Equal(t, "item-1", *sub.ItemKey)
	assert.Equal(t, "uploads/2026/tax-return.pdf", sub.StorageKey)
	assert.Equal(t, model.OCRStatusPending, sub.OCRStatus)
	assert.Equal(t, []string{"Jane at Acme", "Requests", "Tax Return 2025"}, []string(sub.FolderPath))
	require.NotNil(t, sub.FolderID)

	// durable record
	stored, err := f.submissions.ByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.FileName, stored.FileName)

	// document record and fulfillment join
	require.Len(t, f.docs.docs, 1)
	require.Len(t, f.requests.fulfillments, 1)
	fulfillment := f.requests.fulfillments[0]
	assert.Equal(t, "req-1", fulfillment.RequestID)
	assert.Equal(t, f.docs.docs[0].ID, fulfillment.DocumentID)
	assert.Equal(t, model.FulfillmentStatusSubmitted, fulfillment.Status)

	// fan-out ran after the record was stored
	assert.NotEmpty(t, f.notifs.all())
	assert.NotEmpty(t, f.emailer.confirmations)
}

func TestSubmitPurposeRoute(t *testing.T) {
	f := newSubmitFixture()

	sub, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName: "receipt.jpg",
		Bytes:    512,
		Purpose:  "Quarterly expense receipts for review",
	})
	require.NoError(t, err)

	assert.Nil(t, sub.RequestID)
	assert.Nil(t, sub.ItemKey)
	assert.Equal(t, []string{"Jane at Acme", "Quarterly expense receipts"}, []string(sub.FolderPath))
	assert.Empty(t, f.requests.fulfillments)
}

func TestSubmitAISuggestedRoute(t *testing.T) {
	f := newSubmitFixture()

	sub, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName: "scan.png",
		Bytes:    512,
		AIAnalysis: &AIAnalysis{
			Category:            "invoice",
			SuggestedFolderPath: []string{"Invoices", "2026"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Jane at Acme", "Invoices", "2026"}, []string(sub.FolderPath))
}

func TestSubmitDefaultFileKey(t *testing.T) {
	f := newSubmitFixture()

	sub, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName: "notes.txt",
		Bytes:    10,
		Purpose:  "misc",
	})
	require.NoError(t, err)

	assert.Equal(t, "mock/portal-1/notes.txt", sub.StorageKey)
}

func TestSubmitRoutingRequired(t *testing.T) {
	f := newSubmitFixture()

	_, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName: "orphan.pdf",
		Bytes:    10,
	})
	assert.ErrorIs(t, err, ErrRoutingRequired)

	size, _ := f.submissions.Size()
	assert.Zero(t, size, "nothing may be written before routing validation passes")
}

func TestSubmitUnknownRequest(t *testing.T) {
	f := newSubmitFixture()

	_, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName:  "file.pdf",
		Bytes:     10,
		RequestID: strptr("req-missing"),
		ItemKey:   strptr("item-1"),
	})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	size, _ := f.submissions.Size()
	assert.Zero(t, size)
}

func TestSubmitRequestPortalMismatch(t *testing.T) {
	f := newSubmitFixture()

	_, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName:  "file.pdf",
		Bytes:     10,
		RequestID: strptr("req-other"),
		ItemKey:   strptr("item-1"),
	})
	assert.ErrorIs(t, err, ErrRequestPortalMismatch)

	size, _ := f.submissions.Size()
	assert.Zero(t, size)
	assert.Empty(t, f.notifs.all(), "no notifications on rejected submissions")
}

func TestSubmitUnknownPortal(t *testing.T) {
	f := newSubmitFixture()

	_, err := f.svc.Submit("portal-missing", SubmitRequest{
		FileName: "file.pdf",
		Bytes:    10,
		Purpose:  "misc",
	})
	assert.ErrorIs(t, err, repository.ErrPortalNotFound)
}

func TestSubmitValidation(t *testing.T) {
	f := newSubmitFixture()

	_, err := f.svc.Submit("portal-1", SubmitRequest{FileName: "", Bytes: 10, Purpose: "x"})
	var verrs validation.Errors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Submit("portal-1", SubmitRequest{FileName: "../../etc/passwd", Bytes: 10, Purpose: "x"})
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Submit("portal-1", SubmitRequest{FileName: "big.bin", Bytes: 200 << 20, Purpose: "x"})
	assert.ErrorAs(t, err, &verrs)
}

func TestSubmitSurvivesDocumentFailure(t *testing.T) {
	f := newSubmitFixture()
	f.docs.failErr = errors.New("db down")

	sub, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName:  "tax-return.pdf",
		Bytes:     2048,
		RequestID: strptr("req-1"),
		ItemKey:   strptr("item-1"),
	})
	require.NoError(t, err, "the submission record must be created even when the document step fails")
	require.NotNil(t, sub)

	size, _ := f.submissions.Size()
	assert.Equal(t, 1, size)

	// the request stays unfulfilled
	assert.Empty(t, f.requests.fulfillments)

	// staff are still told about the upload
	assert.NotEmpty(t, f.notifs.all())
}

func TestSubmitSurvivesFolderFailure(t *testing.T) {
	f := newSubmitFixture()
	f.folders.failErr = errors.New("db down")

	sub, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName: "receipt.jpg",
		Bytes:    512,
		Purpose:  "expenses",
	})
	require.NoError(t, err)
	assert.Nil(t, sub.FolderID, "folder failures degrade to no folder association")

	// the document record is still created, just unfiled
	require.Len(t, f.docs.docs, 1)
	assert.Nil(t, f.docs.docs[0].FolderID)
}

func TestSubmitPortalWithoutOrganization(t *testing.T) {
	f := newSubmitFixture()
	f.portals.portals["portal-1"].OrganizationID = nil

	sub, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName: "receipt.jpg",
		Bytes:    512,
		Purpose:  "expenses",
	})
	require.NoError(t, err)

	assert.Nil(t, sub.FolderID)
	assert.Empty(t, f.docs.docs)

	size, _ := f.submissions.Size()
	assert.Equal(t, 1, size)
}

func TestSubmitRejectsOverQuota(t *testing.T) {
	f := newSubmitFixture()
	// free tier vault already full
	f.docs.seedBytes = model.FreeTierStorageBytes

	_, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName: "receipt.jpg",
		Bytes:    512,
		Purpose:  "expenses",
	})
	assert.ErrorIs(t, err, ErrStorageQuotaExceeded)

	size, _ := f.submissions.Size()
	assert.Zero(t, size, "nothing may be written when the quota check fails")
	assert.Empty(t, f.notifs.all())
}

func TestSubmitSanitizesPurpose(t *testing.T) {
	f := newSubmitFixture()

	sub, err := f.svc.Submit("portal-1", SubmitRequest{
		FileName: "receipt.jpg",
		Bytes:    512,
		Purpose:  "bank\x00 statements please",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Jane at Acme", "bank statements please"}, []string(sub.FolderPath))
}
