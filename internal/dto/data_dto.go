package dto

import (
	"time"

	"github.com/noah-isme/assignment-tracker/internal/models"
)

// DataExport is the backup document. It uses the persisted field layout so a backup can
// be restored verbatim.
type DataExport struct {
	Assignments []models.Assignment `json:"assignments"`
	Submissions []models.Submission `json:"submissions"`
	ExportedAt  time.Time           `json:"exportedAt"`
}

// DataImportRequest restores collections. Absent collections are left untouched.
type DataImportRequest struct {
	Assignments *[]models.Assignment `json:"assignments"`
	Submissions *[]models.Submission `json:"submissions"`
}

// DataImportResult reports what an import replaced.
type DataImportResult struct {
	Assignments *int `json:"assignments,omitempty"`
	Submissions *int `json:"submissions,omitempty"`
}
