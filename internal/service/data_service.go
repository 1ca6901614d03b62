package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/repository"
)

const importSchemaURL = "tracker://schemas/import.json"

// importSchema mirrors the persisted layout of assignments and submissions.
const importSchema = `{
  "type": "object",
  "properties": {
    "assignments": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "description", "dueDate", "assignedTo"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "dueDate": {"type": "string"},
          "createdAt": {"type": "string"},
          "assignedTo": {"type": "array", "items": {"type": "string"}},
          "attachments": {"type": "array", "items": {"$ref": "#/$defs/attachment"}}
        }
      }
    },
    "submissions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "assignmentId", "studentId", "submitted"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "assignmentId": {"type": "string", "minLength": 1},
          "studentId": {"type": "string", "minLength": 1},
          "submitted": {"type": "boolean"},
          "submittedAt": {"type": ["string", "null"]},
          "attachments": {"type": "array", "items": {"$ref": "#/$defs/attachment"}},
          "feedback": {
            "type": ["object", "null"],
            "required": ["approved", "message"],
            "properties": {
              "approved": {"type": "boolean"},
              "message": {"type": "string"},
              "feedbackDate": {"type": "string"}
            }
          },
          "resubmitted": {"type": "boolean"},
          "resubmittedAt": {"type": ["string", "null"]}
        }
      }
    },
    "exportedAt": {"type": "string"}
  },
  "$defs": {
    "attachment": {
      "type": "object",
      "required": ["type", "value"],
      "properties": {
        "type": {"enum": ["image", "link"]},
        "value": {"type": "string"},
        "name": {"type": "string"}
      }
    }
  }
}`

// DataService backs up and restores assignments and submissions.
type DataService interface {
	Export(ctx context.Context) (dto.DataExport, error)
	Import(ctx context.Context, raw []byte) (dto.DataImportResult, error)
	Clear(ctx context.Context) error
}

type dataService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	schema      *jsonschema.Schema
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDataService compiles the import schema and builds the service.
func NewDataService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, logger zerolog.Logger) (DataService, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(importSchemaURL, strings.NewReader(importSchema)); err != nil {
		return nil, fmt.Errorf("load import schema: %w", err)
	}

	schema, err := compiler.Compile(importSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile import schema: %w", err)
	}

	return &dataService{
		assignments: assignments,
		submissions: submissions,
		schema:      schema,
		logger:      logger.With().Str("component", "data_service").Logger(),
		now:         time.Now,
	}, nil
}

func (s *dataService) Export(ctx context.Context) (dto.DataExport, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return dto.DataExport{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{})
	if err != nil {
		return dto.DataExport{}, err
	}

	if assignments == nil {
		assignments = []models.Assignment{}
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}

	return dto.DataExport{
		Assignments: assignments,
		Submissions: submissions,
		ExportedAt:  s.now().UTC(),
	}, nil
}

// Import validates the document and replaces only the collections it contains.
func (s *dataService) Import(ctx context.Context, raw []byte) (dto.DataImportResult, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var document interface{}
	if err := decoder.Decode(&document); err != nil {
		return dto.DataImportResult{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if err := s.schema.Validate(document); err != nil {
		return dto.DataImportResult{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	var payload dto.DataImportRequest
	if err := json.Unmarshal(raw, &payload); err != nil {
		return dto.DataImportResult{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if payload.Submissions != nil {
		if err := checkUniqueSubmissions(*payload.Submissions); err != nil {
			return dto.DataImportResult{}, err
		}
	}

	var result dto.DataImportResult
	if payload.Assignments != nil {
		if err := s.assignments.ReplaceAll(ctx, *payload.Assignments); err != nil {
			return dto.DataImportResult{}, err
		}
		count := len(*payload.Assignments)
		result.Assignments = &count
	}

	if payload.Submissions != nil {
		if err := s.submissions.ReplaceAll(ctx, *payload.Submissions); err != nil {
			return dto.DataImportResult{}, err
		}
		count := len(*payload.Submissions)
		result.Submissions = &count
	}

	s.logger.Info().
		Bool("assignments", result.Assignments != nil).
		Bool("submissions", result.Submissions != nil).
		Msg("data imported")

	return result, nil
}

// Clear drops every assignment and submission. Other keys are left untouched.
func (s *dataService) Clear(ctx context.Context) error {
	if err := s.assignments.Clear(ctx); err != nil {
		return err
	}
	if err := s.submissions.Clear(ctx); err != nil {
		return err
	}

	s.logger.Warn().Msg("assignments and submissions cleared")
	return nil
}

// checkUniqueSubmissions rejects repeated ids and more than one record per assignment and student.
func checkUniqueSubmissions(submissions []models.Submission) error {
	seenIDs := make(map[string]struct{}, len(submissions))
	seenPairs := make(map[[2]string]struct{}, len(submissions))
	for _, submission := range submissions {
		if _, ok := seenIDs[submission.ID]; ok {
			return fmt.Errorf("%w: duplicate submission id %q", ErrInvalidImport, submission.ID)
		}
		seenIDs[submission.ID] = struct{}{}

		pair := [2]string{submission.AssignmentID, submission.StudentID}
		if _, ok := seenPairs[pair]; ok {
			return fmt.Errorf("%w: more than one submission for assignment %q and student %q", ErrInvalidImport, submission.AssignmentID, submission.StudentID)
		}
		seenPairs[pair] = struct{}{}
	}
	return nil
}
