package service

import (
	"sync"

	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/ownitpro/omgsystems/internal/repository"
)

type fakeFolderRepo struct {
	mu      sync.Mutex
	folders []*model.Folder
	creates int
	failErr error
}

func (f *fakeFolderRepo) Create(folder *model.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	copied := *folder
	f.folders = append(f.folders, &copied)
	f.creates++
	return nil
}

func (f *fakeFolderRepo) ByID(id string) (*model.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, folder := range f.folders {
		if folder.ID == id {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, repository.ErrFolderNotFound
}

func (f *fakeFolderRepo) ByNameAndParent(organizationID, name string, parentID *string) (*model.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, folder := range f.folders {
		if folder.OrganizationID != organizationID || folder.Name != name {
			continue
		}
		if parentID == nil && folder.ParentID == nil {
			copied := *folder
			return &copied, nil
		}
		if parentID != nil && folder.ParentID != nil && *parentID == *folder.ParentID {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, repository.ErrFolderNotFound
}

type fakeDocRepo struct {
	mu        sync.Mutex
	docs      []*model.Document
	seedBytes int64
	sizeErr   error
	failErr   error
}

func (f *fakeDocRepo) Create(doc *model.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	copied := *doc
	f.docs = append(f.docs, &copied)
	return nil
}

func (f *fakeDocRepo) ByID(id string) (*model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doc := range f.docs {
		if doc.ID == id {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, repository.ErrDocumentNotFound
}

func (f *fakeDocRepo) TotalSizeByOrganization(organizationID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sizeErr != nil {
		return 0, f.sizeErr
	}
	total := f.seedBytes
	for _, doc := range f.docs {
		if doc.OrganizationID == organizationID {
			total += doc.SizeBytes
		}
	}
	return total, nil
}

func (f *fakeDocRepo) ByFolder(folderID string) ([]*model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []*model.Document
	for _, doc := range f.docs {
		if doc.FolderID != nil && *doc.FolderID == folderID {
			copied := *doc
			docs = append(docs, &copied)
		}
	}
	return docs, nil
}

type fakeUserRepo struct {
	users  map[string]*model.User
	admins []*model.User
}

func (f *fakeUserRepo) ByID(id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) OrgAdmins(organizationID, excludeUserID string, limit int) ([]*model.User, error) {
	var admins []*model.User
	for _, admin := range f.admins {
		if admin.ID == excludeUserID {
			continue
		}
		admins = append(admins, admin)
		if len(admins) == limit {
			break
		}
	}
	return admins, nil
}

type fakeOrgRepo struct {
	orgs map[string]*model.Organization
}

func (f *fakeOrgRepo) ByID(id string) (*model.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, repository.ErrOrganizationNotFound
	}
	return org, nil
}

type fakeNotifRepo struct {
	mu            sync.Mutex
	notifications []*model.Notification
	failErr       error
}

func (f *fakeNotifRepo) Create(n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	copied := *n
	f.notifications = append(f.notifications, &copied)
	return nil
}

func (f *fakeNotifRepo) ByUser(userID string) ([]*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeNotifRepo) all() []*model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.Notification(nil), f.notifications...)
}

type fakePortalRepo struct {
	portals map[string]*model.Portal
}

func (f *fakePortalRepo) ByID(id string) (*model.Portal, error) {
	portal, ok := f.portals[id]
	if !ok {
		return nil, repository.ErrPortalNotFound
	}
	return portal, nil
}

func (f *fakePortalRepo) Create(portal *model.Portal) error {
	if f.portals == nil {
		f.portals = make(map[string]*model.Portal)
	}
	f.portals[portal.ID] = portal
	return nil
}

type fakeRequestRepo struct {
	requests     map[string]*model.PortalRequest
	fulfillments []*model.RequestFulfillment
	failErr      error
}

func (f *fakeRequestRepo) ByID(id string) (*model.PortalRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) Create(req *model.PortalRequest) error {
	if f.requests == nil {
		f.requests = make(map[string]*model.PortalRequest)
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestRepo) CreateFulfillment(fulfillment *model.RequestFulfillment) error {
	if f.failErr != nil {
		return f.failErr
	}
	copied := *fulfillment
	f.fulfillments = append(f.fulfillments, &copied)
	return nil
}

type fakeSubRepo struct {
	subs    map[string]*model.Subscription
	failErr error
}

func (f *fakeSubRepo) Create(sub *model.Subscription) error {
	if f.subs == nil {
		f.subs = make(map[string]*model.Subscription)
	}
	f.subs[sub.UserID] = sub
	return nil
}

func (f *fakeSubRepo) ByUserID(userID string) (*model.Subscription, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	sub, ok := f.subs[userID]
	if !ok {
		return nil, repository.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (f *fakeSubRepo) ByProviderSubscriptionID(providerSubID string) (*model.Subscription, error) {
	for _, sub := range f.subs {
		if sub.ProviderSubscriptionID != nil && *sub.ProviderSubscriptionID == providerSubID {
			return sub, nil
		}
	}
	return nil, repository.ErrSubscriptionNotFound
}

func (f *fakeSubRepo) ByProviderCustomerID(providerCustomerID string) (*model.Subscription, error) {
	for _, sub := range f.subs {
		if sub.ProviderCustomerID != nil && *sub.ProviderCustomerID == providerCustomerID {
			return sub, nil
		}
	}
	return nil, repository.ErrSubscriptionNotFound
}

func (f *fakeSubRepo) Update(sub *model.Subscription) error {
	f.subs[sub.UserID] = sub
	return nil
}

type sentEmail struct {
	to     string
	params UploadNotificationParams
}

type fakeEmailer struct {
	mu            sync.Mutex
	sent          []sentEmail
	confirmations []UploadConfirmationParams
	failFor       map[string]error
}

func (f *fakeEmailer) SendUploadNotification(to string, p UploadNotificationParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentEmail{to: to, params: p})
	return nil
}

func (f *fakeEmailer) SendUploadConfirmation(to string, p UploadConfirmationParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.confirmations = append(f.confirmations, p)
	return nil
}

func (f *fakeEmailer) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.sent {
		out = append(out, e.to)
	}
	return out
}

func strptr(s string) *string {
	return &s
}
