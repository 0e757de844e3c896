package models

// DocumentType classifies an uploaded medical document.
type DocumentType string

const (
	DocMedicalReport          DocumentType = "medical_report"
	DocXRay                   DocumentType = "xray"
	DocBloodTest              DocumentType = "blood_test"
	DocVaccinationCertificate DocumentType = "vaccination_certificate"
	DocSurgeryReport          DocumentType = "surgery_report"
	DocPrescription           DocumentType = "prescription"
	DocOther                  DocumentType = "other"
)

// DocumentTypes lists every valid document type.
var DocumentTypes = []any{
	DocMedicalReport, DocXRay, DocBloodTest, DocVaccinationCertificate,
	DocSurgeryReport, DocPrescription, DocOther,
}

// Document is a medical file attached to a pet.
type Document struct {
	ID               int          `json:"id" yaml:"id"`
	PetID            int          `json:"petId" yaml:"pet_id"`
	PetName          string       `json:"petName,omitempty" yaml:"pet_name"`
	FileName         string       `json:"fileName" yaml:"file_name"`
	OriginalFileName string       `json:"originalFileName" yaml:"original_file_name"`
	FileType         string       `json:"fileType" yaml:"file_type"`
	FileSize         int64        `json:"fileSize" yaml:"file_size"`
	FilePath         string       `json:"filePath" yaml:"file_path"`
	DocumentType     DocumentType `json:"documentType" yaml:"document_type"`
	Description      string       `json:"description,omitempty" yaml:"description"`
	UploadDate       string       `json:"uploadDate" yaml:"upload_date"`
	UploadedBy       string       `json:"uploadedBy" yaml:"uploaded_by"`
	IsPublic         *bool        `json:"isPublic,omitempty" yaml:"is_public"`
	Tags             []string     `json:"tags,omitempty" yaml:"tags"`
}

// Field returns the named field using its JSON name.
func (d Document) Field(name string) (any, bool) {
	switch name {
	case "id":
		return d.ID, true
	case "petId":
		return d.PetID, true
	case "petName":
		return text(d.PetName)
	case "fileName":
		return text(d.FileName)
	case "originalFileName":
		return text(d.OriginalFileName)
	case "fileType":
		return text(d.FileType)
	case "fileSize":
		return d.FileSize, true
	case "documentType":
		return text(string(d.DocumentType))
	case "description":
		return text(d.Description)
	case "uploadDate":
		return text(d.UploadDate)
	case "uploadedBy":
		return text(d.UploadedBy)
	case "isPublic":
		return flag(d.IsPublic)
	}
	return nil, false
}
