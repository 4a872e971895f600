package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	m "tracehook.dev/pkg/tracehook/internal/model"
	"gopkg.in/yaml.v3"
)

// ReportStore persists run reports.
type ReportStore interface {
	SaveReport(path m.Path, report m.RunReport) error
	LoadReport(path m.Path) (m.RunReport, error)
}

// YAMLReportStore stores a RunReport as a YAML document.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

var _ ReportStore = (*YAMLReportStore)(nil)

// SaveReport writes report to path, creating parent directories.
func (s *YAMLReportStore) SaveReport(path m.Path, report m.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// LoadReport reads a report written by SaveReport.
func (s *YAMLReportStore) LoadReport(path m.Path) (m.RunReport, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.RunReport{}, err
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return report, nil
}

// HookStore persists hook selections between sessions.
type HookStore interface {
	LoadHooks(path m.Path) ([]m.HookDescriptor, error)
	SaveHooks(path m.Path, hooks []m.HookDescriptor) error
}

const hookFileVersion = 1

type hookFile struct {
	Version int                `yaml:"version"`
	Hooks   []m.HookDescriptor `yaml:"hooks"`
}

// YAMLHookStore stores hook descriptors as a YAML document.
type YAMLHookStore struct{}

// NewYAMLHookStore constructs a YAMLHookStore.
func NewYAMLHookStore() *YAMLHookStore {
	return &YAMLHookStore{}
}

var _ HookStore = (*YAMLHookStore)(nil)

// LoadHooks reads the hook file. A missing file yields no hooks.
func (s *YAMLHookStore) LoadHooks(path m.Path) ([]m.HookDescriptor, error) {
	data, err := os.ReadFile(string(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var f hookFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode hooks %s: %w", path, err)
	}

	if f.Version != 0 && f.Version != hookFileVersion {
		return nil, fmt.Errorf("hooks %s: unsupported version %d", path, f.Version)
	}

	return f.Hooks, nil
}

// SaveHooks writes hooks in order, replacing the file atomically.
func (s *YAMLHookStore) SaveHooks(path m.Path, hooks []m.HookDescriptor) error {
	data, err := yaml.Marshal(hookFile{Version: hookFileVersion, Hooks: hooks})
	if err != nil {
		return fmt.Errorf("failed to encode hooks: %w", err)
	}

	dir := filepath.Dir(string(path))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".hooks-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp hooks file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write hooks: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close hooks: %w", err)
	}

	if err := os.Rename(tmp.Name(), string(path)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace hooks: %w", err)
	}

	return nil
}
