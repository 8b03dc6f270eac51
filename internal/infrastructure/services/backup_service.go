package services

import (
	"context"
	"fmt"
	"path/filepath"

	"staticip-agent/internal/domain/errors"
	"staticip-agent/internal/domain/interfaces"
	"staticip-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// backupTimestampFormat yields backup_YYYYMMDDHHMMSS suffixes, so backups
// sort chronologically by name and never collide across invocations.
const backupTimestampFormat = "20060102150405"

// FileBackupService writes timestamped copies of configuration files before
// they are overwritten. Backups are retained indefinitely for manual
// rollback; nothing ever deletes them.
type FileBackupService struct {
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock
	logger     *logrus.Logger
	backupDir  string
}

// NewFileBackupService creates a new FileBackupService
func NewFileBackupService(
	fs interfaces.FileSystem,
	clock interfaces.Clock,
	logger *logrus.Logger,
	backupDir string,
) interfaces.BackupService {
	return &FileBackupService{
		fileSystem: fs,
		clock:      clock,
		logger:     logger,
		backupDir:  backupDir,
	}
}

// Backup copies configPath into the backup directory under a timestamped
// name and returns the backup path. A missing source is expected on first
// run and returns ("", nil).
func (s *FileBackupService) Backup(ctx context.Context, configPath string) (string, error) {
	if !s.fileSystem.Exists(configPath) {
		s.logger.WithField("path", configPath).Debug("No existing config file to back up")
		return "", nil
	}

	content, err := s.fileSystem.ReadFile(configPath)
	if err != nil {
		return "", errors.NewSystemError("failed to read config file for backup", err)
	}

	if err := s.fileSystem.MkdirAll(s.backupDir, 0755); err != nil {
		return "", errors.NewSystemError("failed to create backup directory", err)
	}

	timestamp := s.clock.Now().Format(backupTimestampFormat)
	backupName := fmt.Sprintf("%s.backup_%s", filepath.Base(configPath), timestamp)
	backupPath := filepath.Join(s.backupDir, backupName)

	if err := s.fileSystem.WriteFile(backupPath, content, 0600); err != nil {
		return "", errors.NewSystemError("failed to write backup file", err)
	}

	metrics.RecordBackup()

	s.logger.WithFields(logrus.Fields{
		"source":      configPath,
		"backup_path": backupPath,
	}).Info("Configuration backup created")

	return backupPath, nil
}
