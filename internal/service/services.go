package service

import (
	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Tasks  *TaskService
	Report *ReportService
	Config *ConfigService
}

// NewServices creates a new Services instance with default paths
func NewServices() (*Services, error) {
	tasksPath, err := storage.GetTasksPath()
	if err != nil {
		return nil, err
	}

	overridesPath, err := storage.GetOverridesPath()
	if err != nil {
		return nil, err
	}

	progressPath, err := storage.GetProgressPath()
	if err != nil {
		return nil, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(tasksPath, overridesPath, progressPath, configPath, cfg), nil
}

// NewServicesWithPaths creates a new Services instance with custom
// paths (useful for testing)
func NewServicesWithPaths(tasksPath, overridesPath, progressPath, configPath string, cfg config.Config) *Services {
	taskService := NewTaskService(tasksPath, overridesPath, cfg)
	reportService := NewReportService(tasksPath, overridesPath, progressPath, cfg)
	configService := NewConfigService(configPath, cfg)

	return &Services{
		Tasks:  taskService,
		Report: reportService,
		Config: configService,
	}
}

// RunStartupBackup creates a rotating backup of the task store when the
// newest backup is older than the backup interval. Called once on
// startup; returns whether a backup was made.
func (s *Services) RunStartupBackup() (bool, error) {
	return storage.BackupIfDue(s.Tasks.tasksPath, s.Config.Get().MaxBackupsToKeep)
}

// CreateBackup makes a rotating backup of the task store immediately.
func (s *Services) CreateBackup() error {
	return storage.CreateBackup(s.Tasks.tasksPath, s.Config.Get().MaxBackupsToKeep)
}

// ListBackups returns the available task store backups, newest first.
func (s *Services) ListBackups() []storage.BackupInfo {
	return storage.ListBackups(s.Tasks.tasksPath, s.Config.Get().MaxBackupsToKeep)
}

// RestoreBackup replaces the task store with the numbered backup. The
// current store is backed up first.
func (s *Services) RestoreBackup(backupNum int) error {
	return storage.RestoreBackup(s.Tasks.tasksPath, backupNum, s.Config.Get().MaxBackupsToKeep)
}
