package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/database"
	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
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

func createTestUser(t *testing.T, db *gorm.DB, role domain.Role) *domain.User {
	user := &domain.User{
		FirstName:    "Carla",
		LastName:     "Mendes",
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

func createTestEvent(t *testing.T, db *gorm.DB, ownerID uuid.UUID, status domain.EventStatus, start, end time.Time, limit *int) *domain.Event {
	category := &domain.Category{Name: "cat-" + uuid.NewString()}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	event := &domain.Event{
		Name:              "Oficina de Robótica",
		Street:            "Rua das Flores, 10",
		City:              "Campinas",
		State:             "SP",
		Country:           "Brasil",
		ZipCode:           "13000-000",
		StartDate:         start,
		EndDate:           end,
		Status:            status,
		ParticipantsLimit: limit,
		CategoryID:        category.ID,
		UserID:            ownerID,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

func intPtr(v int) *int { return &v }

func TestEnroll_CapacityEnforced(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, domain.RoleTeacher)
	event := createTestEvent(t, db, owner.ID, domain.EventStatusOpen,
		time.Now().Add(24*time.Hour), time.Now().Add(32*time.Hour), intPtr(2))

	first := createTestUser(t, db, domain.RoleStudent)
	second := createTestUser(t, db, domain.RoleStudent)
	third := createTestUser(t, db, domain.RoleStudent)

	if _, err := repo.Enroll(ctx, event.ID, first.ID); err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}
	if _, err := repo.Enroll(ctx, event.ID, second.ID); err != nil {
		t.Fatalf("second enrollment failed: %v", err)
	}

	_, err := repo.Enroll(ctx, event.ID, third.ID)
	if !errors.Is(err, ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
}

func TestEnroll_UnlimitedEventNeverFull(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, domain.RoleTeacher)
	event := createTestEvent(t, db, owner.ID, domain.EventStatusOpen,
		time.Now().Add(24*time.Hour), time.Now().Add(32*time.Hour), nil)

	for i := 0; i < 5; i++ {
		student := createTestUser(t, db, domain.RoleStudent)
		if _, err := repo.Enroll(ctx, event.ID, student.ID); err != nil {
			t.Fatalf("enrollment %d failed: %v", i, err)
		}
	}
}

func TestEnroll_DuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, domain.RoleTeacher)
	student := createTestUser(t, db, domain.RoleStudent)
	event := createTestEvent(t, db, owner.ID, domain.EventStatusOpen,
		time.Now().Add(24*time.Hour), time.Now().Add(32*time.Hour), intPtr(10))

	if _, err := repo.Enroll(ctx, event.ID, student.ID); err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}

	_, err := repo.Enroll(ctx, event.ID, student.ID)
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestEnroll_NonOpenEventRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, domain.RoleTeacher)
	student := createTestUser(t, db, domain.RoleStudent)

	for _, status := range []domain.EventStatus{
		domain.EventStatusClosed,
		domain.EventStatusCanceled,
		domain.EventStatusFinished,
	} {
		event := createTestEvent(t, db, owner.ID, status,
			time.Now().Add(24*time.Hour), time.Now().Add(32*time.Hour), nil)

		_, err := repo.Enroll(ctx, event.ID, student.ID)
		if !errors.Is(err, ErrEventNotOpen) {
			t.Fatalf("status %s: expected ErrEventNotOpen, got %v", status, err)
		}
	}
}

func TestRemove_FreesSpotForReEnrollment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, domain.RoleTeacher)
	student := createTestUser(t, db, domain.RoleStudent)
	event := createTestEvent(t, db, owner.ID, domain.EventStatusOpen,
		time.Now().Add(24*time.Hour), time.Now().Add(32*time.Hour), intPtr(1))

	if _, err := repo.Enroll(ctx, event.ID, student.ID); err != nil {
		t.Fatalf("enrollment failed: %v", err)
	}
	if err := repo.Remove(ctx, event.ID, student.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	// The unique (user, event) index must not block the second enrollment,
	// and the freed spot must count as available again.
	if _, err := repo.Enroll(ctx, event.ID, student.ID); err != nil {
		t.Fatalf("re-enrollment after cancel failed: %v", err)
	}
}

func TestFindEligibleByUser_OnlyPresentOnFinished(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, domain.RoleTeacher)
	student := createTestUser(t, db, domain.RoleStudent)

	finished := createTestEvent(t, db, owner.ID, domain.EventStatusFinished,
		time.Now().Add(-32*time.Hour), time.Now().Add(-24*time.Hour), nil)
	open := createTestEvent(t, db, owner.ID, domain.EventStatusOpen,
		time.Now().Add(24*time.Hour), time.Now().Add(32*time.Hour), nil)
	finishedAbsent := createTestEvent(t, db, owner.ID, domain.EventStatusFinished,
		time.Now().Add(-10*time.Hour), time.Now().Add(-8*time.Hour), nil)

	attended := time.Now().Add(-26 * time.Hour)
	seedParticipation(t, db, student.ID, finished.ID, domain.ParticipationStatusPresent, &attended)
	seedParticipation(t, db, student.ID, open.ID, domain.ParticipationStatusPending, nil)
	seedParticipation(t, db, student.ID, finishedAbsent.ID, domain.ParticipationStatusAbsent, nil)

	eligible, err := repo.FindEligibleByUser(ctx, student.ID)
	if err != nil {
		t.Fatalf("FindEligibleByUser failed: %v", err)
	}
	if len(eligible) != 1 {
		t.Fatalf("expected 1 eligible participation, got %d", len(eligible))
	}
	if eligible[0].EventID != finished.ID {
		t.Fatalf("expected event %s, got %s", finished.ID, eligible[0].EventID)
	}
	if eligible[0].Event.Name == "" {
		t.Fatal("expected the event to be preloaded")
	}
}

func TestHasAttendanceRecords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, domain.RoleTeacher)
	student := createTestUser(t, db, domain.RoleStudent)
	event := createTestEvent(t, db, owner.ID, domain.EventStatusClosed,
		time.Now().Add(-10*time.Hour), time.Now().Add(-2*time.Hour), nil)

	participation := seedParticipation(t, db, student.ID, event.ID, domain.ParticipationStatusPending, nil)

	has, err := repo.HasAttendanceRecords(ctx, event.ID)
	if err != nil {
		t.Fatalf("HasAttendanceRecords failed: %v", err)
	}
	if has {
		t.Fatal("pending participations must not count as attendance")
	}

	participation.Status = domain.ParticipationStatusAbsent
	if err := repo.Update(ctx, participation); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	has, err = repo.HasAttendanceRecords(ctx, event.ID)
	if err != nil {
		t.Fatalf("HasAttendanceRecords failed: %v", err)
	}
	if !has {
		t.Fatal("an ABSENT mark counts as a taken attendance list")
	}
}

func seedParticipation(t *testing.T, db *gorm.DB, userID, eventID uuid.UUID, status domain.ParticipationStatus, attendedAt *time.Time) *domain.Participation {
	participation := &domain.Participation{
		UserID:     userID,
		EventID:    eventID,
		Status:     status,
		AttendedAt: attendedAt,
	}
	if err := db.Create(participation).Error; err != nil {
		t.Fatalf("failed to create participation: %v", err)
	}
	return participation
}
