package health

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
)

func detailed(name, key string, value interface{}) CheckResult {
	return CheckResult{Name: name, Details: map[string]interface{}{key: value}}
}

func (c CheckResult) with(status Status, message string) CheckResult {
	c.Status = status
	c.Message = message
	return c
}

// WritableDirCheck creates dir if needed and writes a probe file into it
func WritableDirCheck(name, dir string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		res := detailed(name, "path", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res.with(StatusUnhealthy, err.Error())
		}
		probe, err := os.CreateTemp(dir, ".health-*")
		if err != nil {
			return res.with(StatusUnhealthy, err.Error())
		}
		probe.Close()
		_ = os.Remove(probe.Name())
		return res.with(StatusHealthy, "writable")
	})
}

// ListenCheck binds a TCP listener on address and releases it. A busy
// address is degraded, not unhealthy: another viewer may own it.
func ListenCheck(name, address string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		res := detailed(name, "address", address)
		ln, err := net.Listen("tcp", address)
		if err != nil {
			return res.with(StatusDegraded, err.Error())
		}
		res.Details["bound"] = ln.Addr().String()
		ln.Close()
		return res.with(StatusHealthy, "address available")
	})
}

// FileCheck stats path. With optional set a missing file is healthy, for
// files created on first use.
func FileCheck(name, path string, optional bool) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		res := detailed(name, "path", filepath.Clean(path))
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			return res.with(StatusUnhealthy, "is a directory")
		case err == nil:
			res.Details["size"] = info.Size()
			return res.with(StatusHealthy, fmt.Sprintf("%d bytes", info.Size()))
		case os.IsNotExist(err) && optional:
			return res.with(StatusHealthy, "not created yet")
		default:
			return res.with(StatusUnhealthy, err.Error())
		}
	})
}
