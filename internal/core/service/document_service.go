package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

// FileStore abstracts where uploaded document bytes land (local disk in this
// deployment).
type FileStore interface {
	Save(ctx context.Context, fileName string, content io.Reader) (string, error)
}

// DocumentService attaches files to deals on behalf of their owning agent.
type DocumentService struct {
	deals ports.DealRepository
	docs  ports.DocumentRepository
	store FileStore
	log   zerolog.Logger
}

func NewDocumentService(deals ports.DealRepository, docs ports.DocumentRepository, store FileStore, log zerolog.Logger) *DocumentService {
	return &DocumentService{deals: deals, docs: docs, store: store, log: log}
}

// Attach saves the uploaded file and persists its metadata. Only the agent who
// owns the deal may attach documents to it.
func (s *DocumentService) Attach(ctx context.Context, reference string, input ports.AttachDocumentInput, actor *domain.User) (*domain.DealDocument, error) {
	if err := domain.Authorize(actor.Role, domain.ActionUploadDocument); err != nil {
		return nil, err
	}

	deal, err := s.deals.FindByReference(ctx, reference, "")
	if err != nil {
		return nil, err
	}
	if deal.AgentID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if input.FileName == "" || input.Content == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrValidation)
	}

	storedPath, err := s.store.Save(ctx, input.FileName, input.Content)
	if err != nil {
		s.log.Error().Err(err).Str("reference", reference).Msg("failed to store document")
		return nil, err
	}

	doc := &domain.DealDocument{
		DealID:     deal.ID,
		FileType:   input.FileType,
		FileName:   input.FileName,
		StoredPath: storedPath,
		UploadedBy: actor.ID,
		CreatedAt:  nowUTC(),
	}

	created, err := s.docs.Create(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("reference", reference).Str("file", input.FileName).Msg("document attached")
	return created, nil
}

// ListForDeal returns the documents attached to a deal, visible to the owning
// agent and to admins.
func (s *DocumentService) ListForDeal(ctx context.Context, reference string, actor *domain.User) ([]*domain.DealDocument, error) {
	deal, err := s.deals.FindByReference(ctx, reference, "")
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && deal.AgentID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return s.docs.ListByDeal(ctx, deal.ID)
}
