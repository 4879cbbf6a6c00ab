package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/export"
	"github.com/awsugahm/acd2026-api/pkg/storage"
)

// ExportDir is the storage directory holding rendered exports.
const ExportDir = "exports"

// ExportKind names an exportable dataset.
type ExportKind string

const (
	ExportKindSchedule   ExportKind = "schedule"
	ExportKindVolunteers ExportKind = "volunteers"
)

type scheduleSource interface {
	ListAll(ctx context.Context) ([]models.ScheduleEntry, error)
}

type volunteerSource interface {
	List(ctx context.Context, filter models.VolunteerFilter) ([]models.Volunteer, int, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(dir string, ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	EventName string
	Subtitle  string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	ID           string        `json:"id"`
	Kind         ExportKind    `json:"kind"`
	Format       export.Format `json:"format"`
	RelativePath string        `json:"-"`
	Token        string        `json:"token"`
	URL          string        `json:"url"`
	ExpiresAt    time.Time     `json:"expires_at"`
}

// ExportService renders admin datasets to files and hands out signed
// download links for them.
type ExportService struct {
	schedules  scheduleSource
	volunteers volunteerSource
	storage    fileStorage
	csv        export.Renderer
	pdf        export.Renderer
	signer     *storage.SignedURLSigner
	logger     *zap.Logger
	cfg        ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(schedules scheduleSource, volunteers volunteerSource, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv, pdf export.Renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.EventName == "" {
		cfg.EventName = "AWS Community Day"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter(map[string]float64{"Time Slot": 45, "Track": 18, "Room": 35})
	}
	return &ExportService{
		schedules:  schedules,
		volunteers: volunteers,
		storage:    store,
		csv:        csv,
		pdf:        pdf,
		signer:     signer,
		logger:     logger,
		cfg:        cfg,
	}
}

// ParseExportKind validates a kind from a request path.
func ParseExportKind(raw string) (ExportKind, error) {
	switch kind := ExportKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case ExportKindSchedule, ExportKindVolunteers:
		return kind, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export %q", raw))
	}
}

// ParseExportFormat validates a format, defaulting to CSV.
func ParseExportFormat(raw string) (export.Format, error) {
	switch format := export.Format(strings.ToLower(strings.TrimSpace(raw))); format {
	case "":
		return export.FormatCSV, nil
	case export.FormatCSV, export.FormatPDF:
		return format, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", raw))
	}
}

// Generate builds the dataset for kind, renders it and stores the file.
func (s *ExportService) Generate(ctx context.Context, kind ExportKind, format export.Format) (*ExportResult, error) {
	dataset, err := s.buildDataset(ctx, kind)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch format {
	case export.FormatCSV:
		payload, err = s.csv.Render(dataset)
	case export.FormatPDF:
		payload, err = s.pdf.Render(dataset)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}

	id := uuid.NewString()
	filename := path.Join(ExportDir, fmt.Sprintf("%s_%s_%s.%s", kind, time.Now().UTC().Format("20060102_150405"), id[:8], format))
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sign export")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("export generated", zap.String("kind", string(kind)), zap.String("format", string(format)), zap.Int("rows", len(dataset.Rows)))
	return &ExportResult{
		ID:           id,
		Kind:         kind,
		Format:       format,
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/%s", prefix, token),
		ExpiresAt:    expiresAt,
	}, nil
}

// Resolve validates a download token and returns the stored file path.
func (s *ExportService) Resolve(token string) (string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export link invalid or expired")
	}
	return relPath, nil
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export not found")
	}
	return file, nil
}

// Cleanup removes exports older than ttl, or the configured TTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ExportDir, ttl)
}

func (s *ExportService) buildDataset(ctx context.Context, kind ExportKind) (export.Dataset, error) {
	switch kind {
	case ExportKindSchedule:
		return s.scheduleDataset(ctx)
	case ExportKindVolunteers:
		return s.volunteerDataset(ctx)
	default:
		return export.Dataset{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export %q", kind))
	}
}

func (s *ExportService) scheduleDataset(ctx context.Context) (export.Dataset, error) {
	entries, err := s.schedules.ListAll(ctx)
	if err != nil {
		return export.Dataset{}, appErrors.Internal(err, "failed to load schedules")
	}
	headers := []string{"Time Slot", "Track", "Title", "Speaker", "Room"}
	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]string{
			"Time Slot": e.TimeSlot,
			"Track":     fmt.Sprintf("Track %d", e.TrackNumber),
			"Title":     e.Title,
			"Speaker":   e.Speaker,
			"Room":      e.Room,
		})
	}
	return export.Dataset{
		Title:    s.cfg.EventName + " Agenda",
		Subtitle: s.cfg.Subtitle,
		Headers:  headers,
		Rows:     rows,
	}, nil
}

func (s *ExportService) volunteerDataset(ctx context.Context) (export.Dataset, error) {
	volunteers, _, err := s.volunteers.List(ctx, models.VolunteerFilter{})
	if err != nil {
		return export.Dataset{}, appErrors.Internal(err, "failed to load volunteers")
	}
	headers := []string{"Name", "Email", "Phone", "Role", "Availability", "Experience", "Motivation", "Submitted At"}
	rows := make([]map[string]string, 0, len(volunteers))
	for _, v := range volunteers {
		rows = append(rows, map[string]string{
			"Name":         v.Name,
			"Email":        v.Email,
			"Phone":        derefString(v.Phone),
			"Role":         v.Role,
			"Availability": strings.Join(v.Availability, "; "),
			"Experience":   derefString(v.ExperienceLevel),
			"Motivation":   v.Motivation,
			"Submitted At": v.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return export.Dataset{
		Title:   s.cfg.EventName + " Volunteers",
		Headers: headers,
		Rows:    rows,
	}, nil
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
