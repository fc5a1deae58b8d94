package services

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"task_manager_app_go/models"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoSnapshot is returned when no dashboard has been stored for a user yet
var ErrNoSnapshot = errors.New("no dashboard snapshot")

// SnapshotService stores the last dashboard payload per user
type SnapshotService struct {
	DB *gorm.DB
}

func NewSnapshotService(db *gorm.DB) *SnapshotService {
	return &SnapshotService{DB: db}
}

// SnapshotUserKey derives the storage key for an API user id.
// Raw API ids are not written to the local database.
func SnapshotUserKey(userID string) string {
	sum := blake2b.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

// Save stores payload as the latest dashboard of the user, replacing the previous one
func (s *SnapshotService) Save(userID string, payload []byte, fetchedAt time.Time) error {
	snapshot := &models.DashboardSnapshot{
		UserKey:   SnapshotUserKey(userID),
		Payload:   string(payload),
		FetchedAt: fetchedAt.UTC(),
	}

	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at", "updated_at"}),
	}).Create(snapshot).Error
	if err != nil {
		return fmt.Errorf("failed to save dashboard snapshot: %w", err)
	}
	return nil
}

// Latest returns the stored dashboard of the user
func (s *SnapshotService) Latest(userID string) (*models.DashboardSnapshot, error) {
	var snapshot models.DashboardSnapshot
	err := s.DB.Where("user_key = ?", SnapshotUserKey(userID)).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load dashboard snapshot: %w", err)
	}
	return &snapshot, nil
}

// CleanupOlderThan removes snapshots fetched more than maxAge ago
func (s *SnapshotService) CleanupOlderThan(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	result := s.DB.Where("fetched_at < ?", cutoff).Delete(&models.DashboardSnapshot{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cleanup dashboard snapshots: %w", result.Error)
	}
	return result.RowsAffected, nil
}
