package componentregistry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/c360/plotcore/component"
	pkgerrors "github.com/c360/plotcore/errors"
)

// Manager tracks the lifecycle state of the ingestion components a host
// constructs from the registry's factories — a trimmed form of the teacher's
// service.ComponentManager (map of ManagedComponent, ordered start/stop),
// scoped to this module's two components instead of a config-driven flow
// graph.
type Manager struct {
	mu         sync.Mutex
	components map[string]*component.ManagedComponent
	startOrder []string
}

// NewManager creates an empty component manager.
func NewManager() *Manager {
	return &Manager{components: make(map[string]*component.ManagedComponent)}
}

// Add registers a constructed component under name, in component.StateCreated.
// It returns an error if a component with that name already exists or if comp
// doesn't implement component.LifecycleComponent.
func (m *Manager) Add(name string, comp component.Discoverable) error {
	if _, ok := component.AsLifecycleComponent(comp); !ok {
		return pkgerrors.WrapInvalid(fmt.Errorf("component %q does not implement LifecycleComponent", name), "Manager", "Add", "lifecycle capability check")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.components[name]; exists {
		return pkgerrors.WrapInvalid(fmt.Errorf("component %q already registered", name), "Manager", "Add", "duplicate name check")
	}
	m.components[name] = &component.ManagedComponent{Component: comp, State: component.StateCreated}
	return nil
}

// Initialize calls Initialize on the named component and records the
// resulting state.
func (m *Manager) Initialize(name string) error {
	mc, err := m.get(name)
	if err != nil {
		return err
	}
	lc, _ := component.AsLifecycleComponent(mc.Component)
	if err := lc.Initialize(); err != nil {
		m.setState(mc, component.StateFailed, err)
		return pkgerrors.WrapFatal(err, "Manager", "Initialize", fmt.Sprintf("initializing %q", name))
	}
	m.setState(mc, component.StateInitialized, nil)
	return nil
}

// Start creates a cancelable child context for the named component, starts
// it, and records it as started in start order (for reverse-order Stop).
func (m *Manager) Start(ctx context.Context, name string) error {
	mc, err := m.get(name)
	if err != nil {
		return err
	}
	lc, _ := component.AsLifecycleComponent(mc.Component)

	childCtx, cancel := context.WithCancel(ctx)
	if err := lc.Start(childCtx); err != nil {
		cancel()
		m.setState(mc, component.StateFailed, err)
		return pkgerrors.WrapFatal(err, "Manager", "Start", fmt.Sprintf("starting %q", name))
	}

	m.mu.Lock()
	mc.Context = childCtx
	mc.Cancel = cancel
	mc.StartOrder = len(m.startOrder)
	m.startOrder = append(m.startOrder, name)
	m.mu.Unlock()

	m.setState(mc, component.StateStarted, nil)
	return nil
}

// StopAll stops every started component in reverse start order, cancelling
// each one's child context first, and returns the first error encountered
// (continuing to stop the rest regardless).
func (m *Manager) StopAll(timeout time.Duration) error {
	m.mu.Lock()
	order := make([]string, len(m.startOrder))
	copy(order, m.startOrder)
	m.mu.Unlock()

	var firstErr error
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		mc, err := m.get(name)
		if err != nil {
			continue
		}
		if mc.Cancel != nil {
			mc.Cancel()
		}
		lc, _ := component.AsLifecycleComponent(mc.Component)
		if err := lc.Stop(timeout); err != nil {
			m.setState(mc, component.StateFailed, err)
			if firstErr == nil {
				firstErr = pkgerrors.WrapTransient(err, "Manager", "StopAll", fmt.Sprintf("stopping %q", name))
			}
			continue
		}
		m.setState(mc, component.StateStopped, nil)
	}
	return firstErr
}

// State reports the current lifecycle state of the named component.
func (m *Manager) State(name string) (component.State, error) {
	mc, err := m.get(name)
	if err != nil {
		return component.StateFailed, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return mc.State, nil
}

func (m *Manager) get(name string) (*component.ManagedComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc, ok := m.components[name]
	if !ok {
		return nil, pkgerrors.WrapInvalid(fmt.Errorf("no such component %q", name), "Manager", "get", "name lookup")
	}
	return mc, nil
}

func (m *Manager) setState(mc *component.ManagedComponent, state component.State, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc.State = state
	mc.LastError = err
}
