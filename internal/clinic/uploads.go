package clinic

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/starford/vetdesk/internal/apperr"
	"github.com/starford/vetdesk/internal/models"
	"github.com/starford/vetdesk/internal/storage"
)

const metaSuffix = ".meta.json"

// Upload is an incoming document file.
type Upload struct {
	PetID        int
	OriginalName string
	ContentType  string
	DocumentType models.DocumentType
	Description  string
	UploadedBy   string
	Data         []byte
}

// Uploads keeps uploaded documents in a blob store, one metadata sidecar
// per file, under pets/<id>/.
type Uploads struct {
	blobs storage.Provider
	now   func() time.Time
}

// NewUploads returns an Uploads over blobs.
func NewUploads(blobs storage.Provider, now func() time.Time) *Uploads {
	if now == nil {
		now = time.Now
	}
	return &Uploads{blobs: blobs, now: now}
}

func petDir(petID int) string {
	return fmt.Sprintf("pets/%d", petID)
}

// Save stores u under a generated name and returns its document record.
func (s *Uploads) Save(u Upload) (*models.Document, error) {
	if u.DocumentType == "" {
		u.DocumentType = models.DocOther
	}
	err := validation.Errors{
		"petId":        validation.Validate(u.PetID, validation.Required, validation.Min(1)),
		"fileName":     validation.Validate(u.OriginalName, validation.Required),
		"documentType": validation.Validate(u.DocumentType, validation.In(models.DocumentTypes...)),
		"file":         validation.Validate(len(u.Data), validation.Required),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("uploads: %v: %w", err, apperr.ErrInvalid)
	}

	name := uuid.NewString() + strings.ToLower(path.Ext(u.OriginalName))
	rel := path.Join(petDir(u.PetID), name)
	if err := s.blobs.Write(rel, u.Data); err != nil {
		return nil, fmt.Errorf("uploads: write %s: %w", rel, err)
	}

	doc := &models.Document{
		PetID:            u.PetID,
		FileName:         name,
		OriginalFileName: u.OriginalName,
		FileType:         u.ContentType,
		FileSize:         int64(len(u.Data)),
		FilePath:         fmt.Sprintf("/api/pets/%d/documents/%s", u.PetID, name),
		DocumentType:     u.DocumentType,
		Description:      u.Description,
		UploadDate:       s.now().Format(time.DateOnly),
		UploadedBy:       u.UploadedBy,
	}
	meta, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("uploads: encode meta: %w", err)
	}
	if err := s.blobs.Write(rel+metaSuffix, meta); err != nil {
		_ = s.blobs.Delete(rel)
		return nil, fmt.Errorf("uploads: write meta: %w", err)
	}
	return doc, nil
}

// List returns the uploaded documents of petID, oldest file name first.
func (s *Uploads) List(petID int) ([]models.Document, error) {
	files, err := s.blobs.List(petDir(petID))
	if err != nil {
		return nil, fmt.Errorf("uploads: list: %w", err)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].UpdatedAt.Equal(files[j].UpdatedAt) {
			return files[i].Path < files[j].Path
		}
		return files[i].UpdatedAt.Before(files[j].UpdatedAt)
	})
	var out []models.Document
	for _, f := range files {
		if !strings.HasSuffix(f.Path, metaSuffix) {
			continue
		}
		data, err := s.blobs.Read(f.Path)
		if err != nil {
			return nil, fmt.Errorf("uploads: read meta: %w", err)
		}
		var doc models.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

// Open resolves the stored file name of petID's document.
func (s *Uploads) Open(petID int, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasSuffix(name, metaSuffix) {
		return "", fmt.Errorf("uploads: invalid name %q: %w", name, apperr.ErrInvalid)
	}
	rel := path.Join(petDir(petID), name)
	if _, err := s.blobs.Read(rel + metaSuffix); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", fmt.Errorf("uploads: %s: %w", name, apperr.ErrNotFound)
		}
		return "", err
	}
	return s.blobs.Abs(rel)
}
