package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/loadrush/loadrush-backend/internal/models"
	"github.com/loadrush/loadrush-backend/internal/repositories"
	"github.com/loadrush/loadrush-backend/internal/store"
)

// Expected CSV columns, in order. A header row is tolerated and skipped.
// origin,destination,weight,rate,pickup_date

// BulkUploadService turns an uploaded CSV into load records, one create per
// row. Bad rows are collected into the job report; they never abort the
// batch.
type BulkUploadService struct {
	loads repositories.LoadRepo
	jobs  repositories.UploadJobRepo
	hub   *store.Hub
}

func NewBulkUploadService(loads repositories.LoadRepo, jobs repositories.UploadJobRepo, hub *store.Hub) *BulkUploadService {
	return &BulkUploadService{loads: loads, jobs: jobs, hub: hub}
}

// Process parses the CSV, creates one load per valid row, and persists an
// UploadJob with the outcome.
func (s *BulkUploadService) Process(fileName, shipperID string, r io.Reader) (*models.UploadJob, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	start := 0
	if isHeaderRow(records[0]) {
		start = 1
	}

	job := &models.UploadJob{FileName: fileName}
	var rowErrors []models.RowError

	for i := start; i < len(records); i++ {
		job.TotalRows++
		line := i + 1 // 1-based, counting the header

		load, err := parseLoadRow(records[i], shipperID)
		if err == nil {
			err = s.loads.Create(load)
		}
		if err != nil {
			job.Failed++
			rowErrors = append(rowErrors, models.RowError{Row: line, Message: err.Error()})
			continue
		}
		job.Inserted++
	}

	if len(rowErrors) > 0 {
		report, err := json.Marshal(rowErrors)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize error report: %w", err)
		}
		job.Errors = report
	}

	if err := s.jobs.Create(job); err != nil {
		return nil, fmt.Errorf("failed to record upload job: %w", err)
	}

	if job.Inserted > 0 {
		s.hub.Notify()
	}
	return job, nil
}

func isHeaderRow(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(fields[0]), "origin")
}

func parseLoadRow(fields []string, shipperID string) (*models.Load, error) {
	if len(fields) < 4 {
		return nil, fmt.Errorf("expected at least 4 columns (origin,destination,weight,rate), got %d", len(fields))
	}

	origin := strings.TrimSpace(fields[0])
	destination := strings.TrimSpace(fields[1])
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("origin and destination are required")
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil || weight < 0 {
		return nil, fmt.Errorf("invalid weight %q", fields[2])
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("invalid rate %q", fields[3])
	}

	load := &models.Load{
		ShipperID:   shipperID,
		Origin:      origin,
		Destination: destination,
		Weight:      weight,
		Price:       rate,
		Status:      models.StatusAvailable,
	}

	if len(fields) > 4 {
		if raw := strings.TrimSpace(fields[4]); raw != "" {
			pickup, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, fmt.Errorf("invalid pickup_date %q (want YYYY-MM-DD)", raw)
			}
			load.PickupDate = &pickup
		}
	}

	return load, nil
}
