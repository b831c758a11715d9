// Package status provides operational status for the filtra gateway.
// Per docs/plan.md: "High-signal visibility without dashboards."
package status

import (
	"context"
	"sync"
)

// StatusResult represents the result of a status check.
type StatusResult struct {
	Ready            bool   `json:"ready"`
	Reason           string `json:"reason,omitempty"`
	GatewayReady     bool   `json:"gateway_ready"`
	StoreHealth      string `json:"store_health"`
	WorkspaceMessage string `json:"workspace_message"`
	ExerciseCount    int    `json:"exercise_count"`
	Version          string `json:"version"`
}

// StatusChecker provides status checking functionality.
type StatusChecker interface {
	GetStatus(ctx context.Context) (*StatusResult, error)
}

// ReadinessResult represents gateway readiness (matches gateway.ReadinessResult).
type ReadinessResult struct {
	Ready      bool
	Components map[string]ComponentStatus
}

// ComponentStatus represents the status of a component.
type ComponentStatus struct {
	Ready   bool
	Message string
}

// FuncStatusChecker implements StatusChecker using functions.
// This allows adapting any gateway implementation.
type FuncStatusChecker struct {
	getReadiness func(ctx context.Context) *ReadinessResult
	getVersion   func() string
}

// NewFuncStatusChecker creates a new functional status checker.
func NewFuncStatusChecker(
	getReadiness func(ctx context.Context) *ReadinessResult,
	getVersion func() string,
) *FuncStatusChecker {
	return &FuncStatusChecker{
		getReadiness: getReadiness,
		getVersion:   getVersion,
	}
}

// GetStatus implements StatusChecker.
func (c *FuncStatusChecker) GetStatus(ctx context.Context) (*StatusResult, error) {
	readiness := c.getReadiness(ctx)

	result := &StatusResult{
		Ready:        readiness.Ready,
		GatewayReady: readiness.Ready,
		Version:      c.getVersion(),
	}

	if storeStatus, ok := readiness.Components["store"]; ok {
		result.StoreHealth = storeStatus.Message
		if !storeStatus.Ready {
			result.Ready = false
			result.Reason = "attempt store not ready: " + storeStatus.Message
		}
	}

	if wsStatus, ok := readiness.Components["workspace"]; ok {
		result.WorkspaceMessage = wsStatus.Message
		if !wsStatus.Ready {
			result.Ready = false
			if result.Reason == "" {
				result.Reason = "workspace not ready: " + wsStatus.Message
			}
		}
	}

	return result, nil
}

// MockStatusChecker is a test implementation of StatusChecker.
type MockStatusChecker struct {
	mu               sync.RWMutex
	storeReady       bool
	storeMessage     string
	workspaceReady   bool
	workspaceMessage string
	exerciseCount    int
	version          string
}

// NewMockStatusChecker creates a new mock status checker.
func NewMockStatusChecker() *MockStatusChecker {
	return &MockStatusChecker{
		storeReady:       true,
		storeMessage:     "connected",
		workspaceReady:   true,
		workspaceMessage: "loaded",
		version:          "v0.1.0",
	}
}

// SetStoreStatus sets the attempt store status.
func (m *MockStatusChecker) SetStoreStatus(ready bool, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeReady = ready
	m.storeMessage = message
}

// SetWorkspaceStatus sets the workspace status.
func (m *MockStatusChecker) SetWorkspaceStatus(ready bool, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workspaceReady = ready
	m.workspaceMessage = message
}

// SetExerciseCount sets the reported exercise count.
func (m *MockStatusChecker) SetExerciseCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exerciseCount = n
}

// SetVersion sets the reported version.
func (m *MockStatusChecker) SetVersion(version string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version = version
}

// GetStatus implements StatusChecker.
func (m *MockStatusChecker) GetStatus(ctx context.Context) (*StatusResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := &StatusResult{
		Ready:            true,
		GatewayReady:     true,
		StoreHealth:      m.storeMessage,
		WorkspaceMessage: m.workspaceMessage,
		ExerciseCount:    m.exerciseCount,
		Version:          m.version,
	}

	if !m.storeReady {
		result.Ready = false
		result.Reason = "attempt store not ready: " + m.storeMessage
	}

	if !m.workspaceReady {
		result.Ready = false
		if result.Reason == "" {
			result.Reason = "workspace not ready: " + m.workspaceMessage
		}
	}

	if m.version == "" {
		result.Ready = false
		if result.Reason == "" {
			result.Reason = "no version information"
		}
	}

	return result, nil
}
