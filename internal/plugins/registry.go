// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package plugins

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds framework plugins by name.
// The global registry is filled from init functions and only read afterwards.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]FrameworkPlugin
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]FrameworkPlugin)}
}

// Register adds a plugin. Names must be unique and non-empty.
func (r *Registry) Register(plugin FrameworkPlugin) error {
	if plugin == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q is already registered", name)
	}
	r.plugins[name] = plugin
	return nil
}

// MustRegister adds a plugin, panicking on error. Intended for init functions.
func (r *Registry) MustRegister(plugin FrameworkPlugin) {
	if err := r.Register(plugin); err != nil {
		panic(fmt.Sprintf("failed to register plugin: %v", err))
	}
}

// Get returns a plugin by name, or nil if not found.
func (r *Registry) Get(name string) FrameworkPlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.plugins[name]
}

// Detect returns the first plugin, by name order, that recognises the project.
// Plugins whose detection fails are skipped.
func (r *Registry) Detect(projectRoot string) (FrameworkPlugin, error) {
	for _, name := range r.List() {
		plugin := r.Get(name)
		detected, err := plugin.Detect(projectRoot)
		if err != nil {
			continue
		}
		if detected {
			return plugin, nil
		}
	}
	return nil, fmt.Errorf("no framework detected in project %s", projectRoot)
}

// List returns the registered plugin names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustRegister adds a plugin to the global registry, panicking on error.
func MustRegister(plugin FrameworkPlugin) {
	globalRegistry.MustRegister(plugin)
}

// Get returns a plugin by name from the global registry.
func Get(name string) FrameworkPlugin {
	return globalRegistry.Get(name)
}

// Detect auto-detects the framework using the global registry.
func Detect(projectRoot string) (FrameworkPlugin, error) {
	return globalRegistry.Detect(projectRoot)
}

// List returns all registered plugin names from the global registry.
func List() []string {
	return globalRegistry.List()
}
