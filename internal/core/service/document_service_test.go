package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

type stubDocRepo struct {
	docs []*domain.DealDocument
}

func (r *stubDocRepo) Create(_ context.Context, doc *domain.DealDocument) (*domain.DealDocument, error) {
	stored := *doc
	stored.ID = "doc_" + strconv.Itoa(len(r.docs)+1)
	r.docs = append(r.docs, &stored)
	return &stored, nil
}

func (r *stubDocRepo) ListByDeal(_ context.Context, dealID string) ([]*domain.DealDocument, error) {
	var out []*domain.DealDocument
	for _, d := range r.docs {
		if d.DealID == dealID {
			out = append(out, d)
		}
	}
	return out, nil
}

type stubFileStore struct {
	saved map[string][]byte
	err   error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{saved: make(map[string][]byte)}
}

func (s *stubFileStore) Save(_ context.Context, fileName string, content io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	path := "uploads/" + fileName
	s.saved[path] = data
	return path, nil
}

func newTestDocumentService(deals ports.DealRepository, docs *stubDocRepo, store FileStore) *DocumentService {
	return NewDocumentService(deals, docs, store, zerolog.Nop())
}

func attachInput(name string) ports.AttachDocumentInput {
	return ports.AttachDocumentInput{
		FileType: "contract",
		FileName: name,
		Content:  bytes.NewReader([]byte("file contents")),
	}
}

func TestDocumentService_Attach(t *testing.T) {
	deals := newStubDealRepo()
	dealSvc := newTestDealService(deals, domain.WorkflowDirect)
	deal, _ := dealSvc.Create(context.Background(), validInput(), agentA)

	store := newStubFileStore()
	docs := &stubDocRepo{}
	svc := newTestDocumentService(deals, docs, store)

	doc, err := svc.Attach(context.Background(), deal.Reference, attachInput("contract.pdf"), agentA)
	if err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("expected stored document to carry an id")
	}
	if doc.UploadedBy != agentA.ID {
		t.Fatalf("expected uploaded_by %s, got %s", agentA.ID, doc.UploadedBy)
	}
	if got := store.saved[doc.StoredPath]; string(got) != "file contents" {
		t.Fatalf("stored bytes mismatch: %q", got)
	}
}

func TestDocumentService_Attach_OwnershipAndRoles(t *testing.T) {
	deals := newStubDealRepo()
	dealSvc := newTestDealService(deals, domain.WorkflowDirect)
	deal, _ := dealSvc.Create(context.Background(), validInput(), agentA)

	svc := newTestDocumentService(deals, &stubDocRepo{}, newStubFileStore())

	if _, err := svc.Attach(context.Background(), deal.Reference, attachInput("x.pdf"), agentB); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign agent: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Attach(context.Background(), deal.Reference, attachInput("x.pdf"), admin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Attach(context.Background(), "QR-MISSING", attachInput("x.pdf"), agentA); !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("missing deal: expected ErrDealNotFound, got %v", err)
	}
}

func TestDocumentService_Attach_Validation(t *testing.T) {
	deals := newStubDealRepo()
	dealSvc := newTestDealService(deals, domain.WorkflowDirect)
	deal, _ := dealSvc.Create(context.Background(), validInput(), agentA)

	svc := newTestDocumentService(deals, &stubDocRepo{}, newStubFileStore())

	input := attachInput("")
	if _, err := svc.Attach(context.Background(), deal.Reference, input, agentA); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty file name: expected ErrValidation, got %v", err)
	}
	input = ports.AttachDocumentInput{FileType: "contract", FileName: "x.pdf"}
	if _, err := svc.Attach(context.Background(), deal.Reference, input, agentA); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("nil content: expected ErrValidation, got %v", err)
	}
}

func TestDocumentService_Attach_StoreFailure(t *testing.T) {
	deals := newStubDealRepo()
	dealSvc := newTestDealService(deals, domain.WorkflowDirect)
	deal, _ := dealSvc.Create(context.Background(), validInput(), agentA)

	store := newStubFileStore()
	store.err = errors.New("disk full")
	docs := &stubDocRepo{}
	svc := newTestDocumentService(deals, docs, store)

	if _, err := svc.Attach(context.Background(), deal.Reference, attachInput("x.pdf"), agentA); err == nil {
		t.Fatalf("expected store error to surface")
	}
	if len(docs.docs) != 0 {
		t.Fatalf("no metadata should be persisted when the store fails")
	}
}

func TestDocumentService_ListForDeal(t *testing.T) {
	deals := newStubDealRepo()
	dealSvc := newTestDealService(deals, domain.WorkflowDirect)
	deal, _ := dealSvc.Create(context.Background(), validInput(), agentA)

	docs := &stubDocRepo{}
	svc := newTestDocumentService(deals, docs, newStubFileStore())

	if _, err := svc.Attach(context.Background(), deal.Reference, attachInput("a.pdf"), agentA); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if _, err := svc.Attach(context.Background(), deal.Reference, attachInput("b.pdf"), agentA); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	for _, actor := range []*domain.User{agentA, admin} {
		listed, err := svc.ListForDeal(context.Background(), deal.Reference, actor)
		if err != nil {
			t.Fatalf("%s list failed: %v", actor.Role, err)
		}
		if len(listed) != 2 {
			t.Fatalf("%s: expected 2 documents, got %d", actor.Role, len(listed))
		}
	}

	if _, err := svc.ListForDeal(context.Background(), deal.Reference, agentB); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign agent list: expected ErrForbidden, got %v", err)
	}
}
