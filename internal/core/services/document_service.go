package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/config"
	"loanconv-backoffice/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentService handles application document uploads. Files land in the
// configured upload directory under a UUID-prefixed name; the original
// file name is kept on the record.
type DocumentService struct {
	documentRepo repositories.DocumentRepositoryInterface
	appRepo      repositories.LoanApplicationRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	cfg          *config.UploadConfig
	saveFile     func(file *multipart.FileHeader, path string) error
}

// NewDocumentService creates a new document service. saveFile is the
// transport's file writer (fiber's Ctx.SaveFile in production).
func NewDocumentService(
	documentRepo repositories.DocumentRepositoryInterface,
	appRepo repositories.LoanApplicationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cfg *config.UploadConfig,
	saveFile func(file *multipart.FileHeader, path string) error,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		appRepo:      appRepo,
		userRepo:     userRepo,
		cfg:          cfg,
		saveFile:     saveFile,
	}
}

// Upload stores a document against an application. Non-admin callers may
// only attach to their own applications.
func (s *DocumentService) Upload(ctx context.Context, principal *domain.Principal, applicationID uint, documentType string, file *multipart.FileHeader) (*models.DocumentResponse, error) {
	if strings.TrimSpace(documentType) == "" {
		return nil, domain.ErrInvalidStatus
	}

	if _, err := s.ownedOrAdmin(ctx, principal, applicationID); err != nil {
		return nil, err
	}

	storedName := uuid.New().String() + filepath.Ext(file.Filename)
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	if err := s.saveFile(file, filepath.Join(s.cfg.Dir, storedName)); err != nil {
		return nil, err
	}

	document := &models.Document{
		ApplicationID: applicationID,
		DocumentType:  documentType,
		FileName:      file.Filename,
		StoredName:    storedName,
	}
	if err := s.documentRepo.Create(ctx, document); err != nil {
		// Remove the orphaned file; the record is the source of truth.
		if rmErr := os.Remove(filepath.Join(s.cfg.Dir, storedName)); rmErr != nil {
			log.Printf("⚠️ Could not remove orphaned upload %s: %v", storedName, rmErr)
		}
		return nil, err
	}
	return document.ToResponse(s.cfg.URLPrefix), nil
}

// List returns the documents attached to an application. Non-admin callers
// may only read their own applications.
func (s *DocumentService) List(ctx context.Context, principal *domain.Principal, applicationID uint) ([]*models.DocumentResponse, error) {
	if _, err := s.ownedOrAdmin(ctx, principal, applicationID); err != nil {
		return nil, err
	}

	documents, err := s.documentRepo.ListByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	items := make([]*models.DocumentResponse, 0, len(documents))
	for i := range documents {
		items = append(items, documents[i].ToResponse(s.cfg.URLPrefix))
	}
	return items, nil
}

// Delete removes a document record and its file
func (s *DocumentService) Delete(ctx context.Context, principal *domain.Principal, id uint) error {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDocumentNotFound
		}
		return err
	}

	if _, err := s.ownedOrAdmin(ctx, principal, document.ApplicationID); err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.cfg.Dir, document.StoredName)); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Could not remove stored file %s: %v", document.StoredName, err)
	}
	return nil
}

func (s *DocumentService) ownedOrAdmin(ctx context.Context, principal *domain.Principal, applicationID uint) (*models.LoanApplication, error) {
	application, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanApplicationNotFound
		}
		return nil, err
	}

	if principal.IsAdmin() {
		return application, nil
	}

	user, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if application.UserID != user.ID {
		return nil, domain.ErrUnauthorized
	}
	return application, nil
}
