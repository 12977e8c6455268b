package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devcardhq/devcard-companion/internal/storage/models"
	"github.com/devcardhq/devcard-companion/internal/storage/repository"
)

// BackupManager exports and imports the project collection as JSON files.
type BackupManager struct {
	collection repository.CollectionRepository
}

// NewBackupManager creates a backup manager over the given collection
// repository.
func NewBackupManager(collection repository.CollectionRepository) *BackupManager {
	return &BackupManager{collection: collection}
}

// BackupConfig holds configuration for backup operations.
type BackupConfig struct {
	// BackupDir is the directory where backups are stored.
	BackupDir string

	// BackupName is the backup file name without extension.
	// If empty, a timestamp-based name is generated.
	BackupName string

	// Password enables AES-256-GCM encryption of the backup when set.
	Password string

	// VerifyBackup re-reads the written file and checks its checksum.
	VerifyBackup bool
}

// DefaultBackupConfig returns a BackupConfig with sensible defaults.
func DefaultBackupConfig(dir string) *BackupConfig {
	return &BackupConfig{
		BackupDir:    dir,
		VerifyBackup: true,
	}
}

// Export writes the current project collection to a backup file and
// returns its path.
func (bm *BackupManager) Export(ctx context.Context, config *BackupConfig) (string, error) {
	if config == nil || config.BackupDir == "" {
		return "", fmt.Errorf("backup directory required")
	}

	if err := os.MkdirAll(config.BackupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	projects, err := bm.collection.Read(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read collection: %w", err)
	}

	payload, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal collection: %w", err)
	}

	checksum := sha256.Sum256(payload)

	if config.Password != "" {
		payload, err = encryptPayload(payload, config.Password)
		if err != nil {
			return "", fmt.Errorf("failed to encrypt backup: %w", err)
		}
	}

	name := config.BackupName
	if name == "" {
		name = fmt.Sprintf("devcard_backup_%s", time.Now().Format("20060102_150405"))
	}
	backupPath := filepath.Join(config.BackupDir, name+".json")

	if err := os.WriteFile(backupPath, payload, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	if config.VerifyBackup {
		if err := bm.verify(backupPath, config.Password, checksum[:]); err != nil {
			return "", fmt.Errorf("backup verification failed: %w", err)
		}
	}

	return backupPath, nil
}

// Import replaces the stored collection with the contents of a backup
// file. Password is required when the backup was encrypted.
func (bm *BackupManager) Import(ctx context.Context, backupPath, password string) (int, error) {
	payload, err := os.ReadFile(backupPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup file: %w", err)
	}

	if isEncryptedPayload(payload) {
		payload, err = decryptPayload(payload, password)
		if err != nil {
			return 0, fmt.Errorf("failed to decrypt backup: %w", err)
		}
	}

	var projects []models.DevCardProject
	if err := json.Unmarshal(payload, &projects); err != nil {
		return 0, fmt.Errorf("failed to parse backup: %w", err)
	}

	if err := bm.collection.Write(ctx, projects); err != nil {
		return 0, fmt.Errorf("failed to restore collection: %w", err)
	}

	return len(projects), nil
}

// verify re-reads a written backup and compares the plaintext checksum.
func (bm *BackupManager) verify(backupPath, password string, want []byte) error {
	payload, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to re-read backup: %w", err)
	}

	if isEncryptedPayload(payload) {
		payload, err = decryptPayload(payload, password)
		if err != nil {
			return fmt.Errorf("failed to decrypt backup for verification: %w", err)
		}
	}

	got := sha256.Sum256(payload)
	if hex.EncodeToString(got[:]) != hex.EncodeToString(want) {
		return fmt.Errorf("checksum mismatch")
	}
	return nil
}
