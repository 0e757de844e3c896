package clinic

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/starford/vetdesk/internal/apperr"
	"github.com/starford/vetdesk/internal/models"
	"github.com/starford/vetdesk/internal/testutil"
)

func TestUploadsSaveListOpen(t *testing.T) {
	_, blobs := testutil.TestBlobs(t)
	u := NewUploads(blobs, clock)

	doc, err := u.Save(Upload{
		PetID:        3,
		OriginalName: "Blood Panel.PDF",
		ContentType:  "application/pdf",
		DocumentType: models.DocBloodTest,
		UploadedBy:   "vet@example.com",
		Data:         []byte("%PDF-1.4"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(doc.FileName, ".pdf") || doc.UploadDate != "2024-01-16" {
		t.Errorf("doc = %+v", doc)
	}
	if doc.FilePath != "/api/pets/3/documents/"+doc.FileName {
		t.Errorf("FilePath = %s", doc.FilePath)
	}

	docs, err := u.List(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].FileName != doc.FileName {
		t.Fatalf("List = %+v", docs)
	}
	if others, _ := u.List(4); len(others) != 0 {
		t.Errorf("List(4) = %d docs, want 0", len(others))
	}

	abs, err := u.Open(3, doc.FileName)
	if err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(abs); string(data) != "%PDF-1.4" {
		t.Errorf("content = %q", data)
	}
}

func TestUploadsDefaultsToOther(t *testing.T) {
	_, blobs := testutil.TestBlobs(t)
	doc, err := NewUploads(blobs, clock).Save(Upload{PetID: 1, OriginalName: "a.png", Data: []byte("x")})
	if err != nil {
		t.Fatal(err)
	}
	if doc.DocumentType != models.DocOther {
		t.Errorf("DocumentType = %s, want other", doc.DocumentType)
	}
}

func TestUploadsRejects(t *testing.T) {
	_, blobs := testutil.TestBlobs(t)
	u := NewUploads(blobs, clock)

	bad := []Upload{
		{PetID: 0, OriginalName: "a.png", Data: []byte("x")},
		{PetID: 1, OriginalName: "", Data: []byte("x")},
		{PetID: 1, OriginalName: "a.png"},
		{PetID: 1, OriginalName: "a.png", DocumentType: "recipe", Data: []byte("x")},
	}
	for i, up := range bad {
		if _, err := u.Save(up); !errors.Is(err, apperr.ErrInvalid) {
			t.Errorf("case %d: err = %v, want ErrInvalid", i, err)
		}
	}

	for _, name := range []string{"", "../x", "a.png.meta.json"} {
		if _, err := u.Open(1, name); !errors.Is(err, apperr.ErrInvalid) {
			t.Errorf("Open(%q) = %v, want ErrInvalid", name, err)
		}
	}
	if _, err := u.Open(1, "missing.png"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Open(missing) = %v, want ErrNotFound", err)
	}
}

func TestServiceListDocumentsMergesUploads(t *testing.T) {
	_, blobs := testutil.TestBlobs(t)
	svc := testService(t)
	WithUploads(NewUploads(blobs, clock))(svc)

	if _, err := svc.UploadDocument(Upload{PetID: 2, OriginalName: "x.png", Data: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	snap, err := svc.ListDocuments(t.Context(), 2, DocumentFilters.Parse(nil), PageRequest{Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if snap.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", snap.TotalItems)
	}

	if _, err := testService(t).UploadDocument(Upload{PetID: 2}); !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("uploads disabled err = %v", err)
	}
}
