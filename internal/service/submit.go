package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/ownitpro/omgsystems/internal/repository"
	vfile "github.com/ownitpro/omgsystems/internal/validation"
)

// Error messages are returned verbatim to the portal client.
var (
	ErrRoutingRequired       = errors.New("Either requestId/itemKey or purpose is required")
	ErrRequestNotFound       = errors.New("Request not found")
	ErrRequestPortalMismatch = errors.New("Unauthorized")
)

const maxPurposeLength = 200

// AIAnalysis is the optional classifier output a client attaches to an
// upload. Only the suggested folder path participates in routing.
type AIAnalysis struct {
	Category            string   `json:"category"`
	SuggestedFolderPath []string `json:"suggestedFolderPath"`
	Summary             string   `json:"summary"`
}

// SubmitRequest is the intake payload for one uploaded file. Routing needs
// either a (requestId, itemKey) pair or a free-form purpose.
type SubmitRequest struct {
	FileName         string      `json:"fileName"`
	OriginalFileName string      `json:"originalFileName"`
	Bytes            int64       `json:"bytes"`
	RequestID        *string     `json:"requestId"`
	ItemKey          *string     `json:"itemKey"`
	FileKey          string      `json:"fileKey"`
	Purpose          string      `json:"purpose"`
	AIAnalysis       *AIAnalysis `json:"aiAnalysis"`
}

func (r SubmitRequest) Validate(maxUploadBytes int64) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FileName,
			validation.Required.Error("file name is required"),
			validation.By(func(any) error { return vfile.ValidateFileName(r.FileName) }),
		),
		validation.Field(&r.Bytes,
			validation.By(func(any) error { return vfile.ValidateFileSize(r.Bytes, maxUploadBytes) }),
		),
	)
}

// SubmitService runs the full intake pipeline for one upload: validation,
// request authorization, folder routing, document registration, the durable
// submission record, fulfillment, and the notification fan-out.
type SubmitService struct {
	portalRepo     repository.PortalRepository
	requestRepo    repository.RequestRepository
	submissions    repository.SubmissionStore
	folders        *FolderService
	documents      *DocumentService
	notifications  *NotificationService
	quota          *QuotaService
	storageBucket  string
	maxUploadBytes int64
}

func NewSubmitService(
	portalRepo repository.PortalRepository,
	requestRepo repository.RequestRepository,
	submissions repository.SubmissionStore,
	folders *FolderService,
	documents *DocumentService,
	notifications *NotificationService,
	quota *QuotaService,
	storageBucket string,
	maxUploadBytes int64,
) *SubmitService {
	return &SubmitService{
		portalRepo:     portalRepo,
		requestRepo:    requestRepo,
		submissions:    submissions,
		folders:        folders,
		documents:      documents,
		notifications:  notifications,
		quota:          quota,
		storageBucket:  storageBucket,
		maxUploadBytes: maxUploadBytes,
	}
}

// Submit records one client upload. The submission record is the only hard
// requirement: folder routing, the document record, fulfillment, and
// notifications are all best effort and degrade to logged failures. All
// validation and authorization happens before anything is written.
func (s *SubmitService) Submit(portalID string, req SubmitRequest) (*model.Submission, error) {
	err := req.Validate(s.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	hasRequest := req.RequestID != nil && *req.RequestID != "" && req.ItemKey != nil && *req.ItemKey != ""
	hasPurpose := strings.TrimSpace(req.Purpose) != "" || req.AIAnalysis != nil
	if !hasRequest && !hasPurpose {
		return nil, ErrRoutingRequired
	}

	portal, err := s.portalRepo.ByID(portalID)
	if err != nil {
		return nil, err
	}

	// Authorization before any write. An unknown request is a 404; a request
	// that belongs to a different portal is a 403.
	var request *model.PortalRequest
	if req.RequestID != nil && *req.RequestID != "" {
		request, err = s.requestRepo.ByID(*req.RequestID)
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		if err != nil {
			return nil, err
		}
		if request.PortalID != portalID {
			return nil, ErrRequestPortalMismatch
		}
	}

	// Quota is the last pre-write check. Portals without an organization have
	// no vault to fill, so no quota applies.
	if portal.OrganizationID != nil {
		err = s.quota.CheckUpload(*portal.OrganizationID, portal.CreatedByID, req.Bytes)
		if err != nil {
			return nil, err
		}
	}

	req.Purpose = vfile.SanitizeText(req.Purpose, maxPurposeLength)
	segments := folderSegments(portal, request, req)

	var folderID *string
	var documentID *string

	fileKey := req.FileKey
	if fileKey == "" {
		fileKey = fmt.Sprintf("mock/%s/%s", portalID, req.FileName)
	}

	if portal.OrganizationID != nil {
		folderID = s.folders.Resolve(*portal.OrganizationID, segments)
		documentID = s.documents.Register(req.FileName, req.Bytes, folderID, *portal.OrganizationID, fileKey, s.storageBucket, portal.CreatedByID)
	} else {
		slog.Warn("portal has no organization, skipping folder and document records", "portal_id", portalID)
	}

	sub := &model.Submission{
		ID:         uuid.New().String(),
		PortalID:   portalID,
		RequestID:  req.RequestID,
		ItemKey:    req.ItemKey,
		FolderID:   folderID,
		FolderPath: segments,
		StorageKey: fileKey,
		FileName:   req.FileName,
		SizeBytes:  req.Bytes,
		OCRStatus:  model.OCRStatusPending,
		CreatedAt:  time.Now(),
	}

	err = s.submissions.Create(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if request != nil {
		if documentID != nil {
			attempt("create fulfillment", func() error {
				return s.requestRepo.CreateFulfillment(&model.RequestFulfillment{
					ID:         uuid.New().String(),
					RequestID:  request.ID,
					DocumentID: *documentID,
					Status:     model.FulfillmentStatusSubmitted,
					CreatedAt:  time.Now(),
				})
			}, "request_id", request.ID)
		} else {
			slog.Warn("document record missing, skipping fulfillment", "request_id", request.ID, "submission_id", sub.ID)
		}
	}

	s.notifications.NotifyUpload(portal, req.FileName, req.Bytes, segments)
	s.notifications.SendClientConfirmation(portal, req.FileName)

	return sub, nil
}

// folderSegments derives the routing path for an upload. Requested documents
// file under the client's Requests folder; ad hoc uploads follow the
// classifier suggestion, then the purpose text, then a dated default.
func folderSegments(portal *model.Portal, request *model.PortalRequest, req SubmitRequest) []string {
	clientName := "Client"
	if portal.ClientName != nil && *portal.ClientName != "" {
		clientName = *portal.ClientName
	}

	if request != nil {
		label := request.Label
		if label == "" {
			label = "Requested Document"
		}
		return []string{clientName, "Requests", label}
	}

	if req.AIAnalysis != nil && len(req.AIAnalysis.SuggestedFolderPath) > 0 {
		return append([]string{clientName}, req.AIAnalysis.SuggestedFolderPath...)
	}

	if req.Purpose != "" {
		words := strings.Fields(req.Purpose)
		if len(words) > 3 {
			words = words[:3]
		}
		return []string{clientName, strings.Join(words, " ")}
	}

	return []string{clientName, "Uploads", fmt.Sprintf("%d", time.Now().Year())}
}
