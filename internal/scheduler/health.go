package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// HealthStatus represents the health of a component.
type HealthStatus struct {
	Healthy     bool
	LastCheck   time.Time
	LastSuccess time.Time
	LastError   error
	Message     string
}

// Health tracks the health of the scheduler's components ("twitter", "post").
type Health struct {
	mu         sync.RWMutex
	components map[string]HealthStatus
	now        func() time.Time
}

// NewHealth creates a new health tracker.
func NewHealth() *Health {
	return &Health{
		components: make(map[string]HealthStatus),
		now:        time.Now,
	}
}

// SetHealthy marks a component as healthy.
func (h *Health) SetHealthy(component, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	status := h.components[component]
	status.Healthy = true
	status.LastCheck = now
	status.LastSuccess = now
	status.LastError = nil
	status.Message = message
	h.components[component] = status
}

// SetUnhealthy marks a component as unhealthy. LastSuccess is kept.
func (h *Health) SetUnhealthy(component string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := h.components[component]
	status.Healthy = false
	status.LastCheck = h.now()
	status.LastError = err
	status.Message = err.Error()
	h.components[component] = status
}

// GetStatus returns a copy of the status of a component, or nil if unknown.
func (h *Health) GetStatus(component string) *HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status, ok := h.components[component]
	if !ok {
		return nil
	}
	return &status
}

// GetAllStatuses returns copies of all component statuses.
func (h *Health) GetAllStatuses() map[string]HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make(map[string]HealthStatus, len(h.components))
	for name, status := range h.components {
		result[name] = status
	}
	return result
}

// IsOverallHealthy returns true if all components are healthy.
func (h *Health) IsOverallHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, status := range h.components {
		if !status.Healthy {
			return false
		}
	}
	return true
}

// Summary renders "name=ok|failing" pairs in name order, for log lines.
func (h *Health) Summary() string {
	statuses := h.GetAllStatuses()

	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		state := "ok"
		if !statuses[name].Healthy {
			state = "failing"
		}
		parts = append(parts, fmt.Sprintf("%s=%s", name, state))
	}
	return strings.Join(parts, " ")
}
