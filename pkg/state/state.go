// Package state provides persistent state management for the photobooth
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/types"
)

// BoothState is the persistent session ledger of a booth: how many
// sessions ran, how many failed, and what the last one produced.
type BoothState struct {
	BoothName       string              `json:"boothName"`
	Status          types.SessionStatus `json:"status"`
	SessionCount    int                 `json:"sessionCount"`
	FailureCount    int                 `json:"failureCount"`
	ProcessID       int                 `json:"processId"`
	LastSessionID   string              `json:"lastSessionId,omitempty"`
	LastSessionTime time.Time           `json:"lastSessionTime,omitempty"`
	LastMontagePath string              `json:"lastMontagePath,omitempty"`
	LastDuration    time.Duration       `json:"lastDuration,omitempty"`
	LastError       string              `json:"lastError,omitempty"`
}

// Manager handles the persistent state file of a single booth
type Manager struct {
	stateDir  string
	boothName string
	logger    logger.Logger
	mu        sync.RWMutex
	current   *BoothState
}

// NewManager creates a state manager rooted under the booth output
// directory.
func NewManager(outputDir, boothName string, log logger.Logger) *Manager {
	stateDir := filepath.Join(outputDir, ".photobooth", "state")

	// Ensure state directory exists
	if err := os.MkdirAll(stateDir, 0755); err != nil && log != nil {
		log.Error("Failed to create state directory", logger.WithField("error", err))
	}

	return &Manager{
		stateDir:  stateDir,
		boothName: boothName,
		logger:    log,
	}
}

// Read returns the current booth state, loading it from disk on first
// use. A missing state file yields a fresh idle state.
func (m *Manager) Read() (*BoothState, error) {
	m.mu.RLock()
	if m.current != nil {
		defer m.mu.RUnlock()
		return m.current, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.loadStateFile()
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
		state = &BoothState{
			BoothName: m.boothName,
			Status:    types.SessionStatusIdle,
		}
	}
	state.ProcessID = os.Getpid()

	m.current = state
	return state, nil
}

// SetStatus updates and persists the booth status.
func (m *Manager) SetStatus(status types.SessionStatus) error {
	if _, err := m.Read(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.Status = status
	return m.saveStateFile(m.current)
}

// RecordSession updates the ledger with the outcome of one session and
// persists it. A nil result with an error records a failed session.
func (m *Manager) RecordSession(result *types.SessionResult, sessionErr error) error {
	if _, err := m.Read(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.SessionCount++
	m.current.LastSessionTime = time.Now()
	m.current.LastError = ""

	if result != nil {
		m.current.LastSessionID = result.ID
		m.current.LastMontagePath = result.MontagePath
		m.current.LastDuration = result.Duration
		m.current.LastSessionTime = result.StartedAt
	}

	if sessionErr != nil {
		m.current.FailureCount++
		m.current.Status = types.SessionStatusFailed
		m.current.LastError = sessionErr.Error()
	} else {
		m.current.Status = types.SessionStatusSucceeded
	}

	return m.saveStateFile(m.current)
}

// Cleanup removes the persisted state file.
func (m *Manager) Cleanup() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	if err := os.Remove(m.statePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}

// statePath returns the state file path for this booth.
func (m *Manager) statePath() string {
	name := strings.ReplaceAll(m.boothName, string(filepath.Separator), "-")
	if name == "" {
		name = "photobooth"
	}
	return filepath.Join(m.stateDir, name+".state.json")
}

func (m *Manager) loadStateFile() (*BoothState, error) {
	data, err := os.ReadFile(m.statePath())
	if err != nil {
		return nil, err
	}

	var state BoothState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &state, nil
}

func (m *Manager) saveStateFile(state *BoothState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := m.statePath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return os.Rename(tmpPath, m.statePath())
}
