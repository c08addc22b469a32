package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/database"
	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
	"github.com/GabrielHenriqueHE/sinapse/internal/response"
)

func openScenarioDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	database.RegisterUUIDCallback(db)

	// Hand-written DDL for SQLite compatibility: the production schema uses
	// postgres-only column types and defaults.
	db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT 0,
		deleted_at DATETIME,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1
	)`)
	db.Exec(`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT 0,
		deleted_at DATETIME,
		name TEXT NOT NULL UNIQUE
	)`)
	db.Exec(`CREATE TABLE events (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT 0,
		deleted_at DATETIME,
		name TEXT NOT NULL,
		description TEXT,
		topics TEXT,
		street TEXT NOT NULL,
		complement TEXT,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT 'Brasil',
		zip_code TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'OPEN',
		participants_limit INTEGER,
		image_url TEXT,
		category_id TEXT NOT NULL,
		user_id TEXT NOT NULL
	)`)
	db.Exec(`CREATE TABLE participations (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT 0,
		deleted_at DATETIME,
		user_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		attended_at DATETIME,
		UNIQUE(user_id, event_id)
	)`)

	return db
}

func scenarioUser(t *testing.T, db *gorm.DB, role domain.Role, firstName, lastName string) *domain.User {
	user := &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func scenarioEvent(t *testing.T, db *gorm.DB, ownerID uuid.UUID, start, end time.Time, limit int) *domain.Event {
	category := &domain.Category{Name: "cat-" + uuid.NewString()}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	event := &domain.Event{
		Name:              "Minicurso de Arduino",
		Street:            "Av. Brasil, 500",
		City:              "Curitiba",
		State:             "PR",
		Country:           "Brasil",
		ZipCode:           "80000-000",
		StartDate:         start,
		EndDate:           end,
		Status:            domain.EventStatusOpen,
		ParticipantsLimit: &limit,
		CategoryID:        category.ID,
		UserID:            ownerID,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

// Walks a capacity-1 event from enrollment to certificate issuance through
// the real repositories: the first student takes the only spot, the second
// is rejected, attendance and finish unlock the certificate for the first
// student only.
func TestEnrollmentToCertificateFlow(t *testing.T) {
	db := openScenarioDB(t)
	ctx := context.Background()

	eventRepo := repository.NewEventRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	participationRepo := repository.NewParticipationRepository(db)
	userRepo := repository.NewUserRepository(db)

	logger := zap.NewNop()
	eventSvc := NewEventService(eventRepo, categoryRepo, participationRepo, nil, nil, logger)
	enrollmentSvc := NewEnrollmentService(eventRepo, participationRepo, eventSvc, nil, logger)
	certificateSvc := NewCertificateService(userRepo, eventRepo, participationRepo, eventSvc, nil, logger)

	teacher := scenarioUser(t, db, domain.RoleTeacher, "Helena", "Costa")
	studentA := scenarioUser(t, db, domain.RoleStudent, "Ana", "Souza")
	studentB := scenarioUser(t, db, domain.RoleStudent, "Bruno", "Lima")

	// Ongoing event: started, not yet ended, single spot.
	event := scenarioEvent(t, db, teacher.ID,
		time.Now().Add(-2*time.Hour), time.Now().Add(1*time.Hour), 1)

	enrolled, err := enrollmentSvc.Enroll(ctx, event.ID, studentA.ID)
	if err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}
	if !enrolled.Created {
		t.Fatal("first enrollment should take the spot")
	}

	_, err = enrollmentSvc.Enroll(ctx, event.ID, studentB.ID)
	if code := appErrorCode(t, err); code != response.ErrCodeConflict {
		t.Fatalf("expected CONFLICT for the full event, got %s", code)
	}

	marked, err := enrollmentSvc.UpdateAttendance(ctx, event.ID, teacher.ID, &dto.UpdateAttendanceRequest{
		ParticipationID: enrolled.Participation.ID,
		Status:          string(domain.ParticipationStatusPresent),
	})
	if err != nil {
		t.Fatalf("attendance update failed: %v", err)
	}
	if marked.AttendedAt == nil {
		t.Fatal("present participant should have a check-in time")
	}

	// The event ends before the organizer finishes it.
	if err := db.Model(&domain.Event{}).Where("id = ?", event.ID).
		Update("end_date", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("failed to move end date: %v", err)
	}

	finished, err := eventSvc.FinishEvent(ctx, event.ID, teacher.ID)
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if !finished.Changed || finished.Event.Status != domain.EventStatusFinished {
		t.Fatalf("expected the event to move to FINISHED, got %s", finished.Event.Status)
	}

	doc, err := certificateSvc.GenerateCertificate(ctx, event.ID, studentA.ID)
	if err != nil {
		t.Fatalf("certificate for the present student failed: %v", err)
	}
	if !bytes.HasPrefix(doc.Content, []byte("%PDF")) {
		t.Fatal("certificate content should be a PDF document")
	}

	_, err = certificateSvc.GenerateCertificate(ctx, event.ID, studentB.ID)
	if code := appErrorCode(t, err); code != response.ErrCodeForbidden {
		t.Fatalf("expected FORBIDDEN for the rejected student, got %s", code)
	}

	eligible, err := certificateSvc.ListCertificates(ctx, studentA.ID)
	if err != nil {
		t.Fatalf("certificate listing failed: %v", err)
	}
	if len(eligible) != 1 || eligible[0].EventID != event.ID {
		t.Fatalf("expected exactly the finished event in the listing, got %d entries", len(eligible))
	}

	notEligible, err := certificateSvc.ListCertificates(ctx, studentB.ID)
	if err != nil {
		t.Fatalf("certificate listing failed: %v", err)
	}
	if len(notEligible) != 0 {
		t.Fatalf("rejected student should have no certificates, got %d", len(notEligible))
	}
}
