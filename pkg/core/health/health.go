// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     health
// Description: Health checks for the console environment and canvas viewer
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Status is the outcome of one check or of a whole report
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// rank orders statuses for aggregation; unknown counts as degraded
func (s Status) rank() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusUnhealthy:
		return 2
	default:
		return 1
	}
}

// CheckResult is what a check reports. The registry fills in Name,
// Duration and Timestamp.
type CheckResult struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Checker is one named check
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// CheckFunc adapts a function to Checker under a name
type CheckFunc struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker names fn as a Checker
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return CheckFunc{name: name, fn: fn}
}

func (c CheckFunc) Name() string                          { return c.name }
func (c CheckFunc) Check(ctx context.Context) CheckResult { return c.fn(ctx) }

// Report is the result of running every registered check
type Report struct {
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Uptime    time.Duration `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

func (r *Report) String() string {
	return fmt.Sprintf("%s: %s, %d checks", r.Name, r.Status, len(r.Checks))
}

// Registry holds checks by name. It is safe for concurrent use and serves
// its report over HTTP.
type Registry struct {
	name    string
	version string
	started time.Time

	mu       sync.RWMutex
	checkers map[string]Checker
}

func NewRegistry(name, version string) *Registry {
	return &Registry{
		name:     name,
		version:  version,
		started:  time.Now(),
		checkers: map[string]Checker{},
	}
}

// Register adds checker, replacing any check with the same name
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	r.checkers[checker.Name()] = checker
	r.mu.Unlock()
}

func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

func (r *Registry) snapshot() []Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Checker, 0, len(r.checkers))
	for _, c := range r.checkers {
		out = append(out, c)
	}
	return out
}

// Check runs every check concurrently and sorts the results by name. The
// report takes the worst status of its checks.
func (r *Registry) Check(ctx context.Context) *Report {
	checkers := r.snapshot()
	results := make([]CheckResult, len(checkers))

	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = run(ctx, c)
		}()
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	status := StatusHealthy
	for _, res := range results {
		if res.Status.rank() > status.rank() {
			status = res.Status
		}
	}
	if status == StatusUnknown {
		status = StatusDegraded
	}

	return &Report{
		Name:      r.name,
		Version:   r.version,
		Status:    status,
		Uptime:    time.Since(r.started),
		Timestamp: time.Now(),
		Checks:    results,
	}
}

func run(ctx context.Context, c Checker) CheckResult {
	start := time.Now()
	res := c.Check(ctx)
	res.Duration = time.Since(start)
	res.Timestamp = time.Now()
	if res.Name == "" {
		res.Name = c.Name()
	}
	if res.Status == "" {
		res.Status = StatusUnknown
	}
	return res
}

// CheckWithTimeout runs Check under a fresh deadline
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// ServeHTTP writes the report as JSON, with status 503 when unhealthy
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	report := r.Check(req.Context())

	w.Header().Set("Content-Type", "application/json")
	if report.Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(report)
}
