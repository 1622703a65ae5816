package server

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Health(c.Request().Context()))
}

// Health returns a map of health status information. Host statistics are
// best effort and simply omitted when they cannot be read.
func (s *Server) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := map[string]string{
		"status":            "up",
		"provider":          s.cfg.LLM.Provider,
		"model":             s.cfg.LLM.Model,
		"prompts":           strconv.Itoa(s.registry.Len()),
		"uptime_sec":        strconv.Itoa(int(time.Since(s.startedAt).Seconds())),
		"goroutines":        strconv.Itoa(runtime.NumGoroutine()),
		"websocket_clients": strconv.Itoa(s.hub.Count()),
		"rate_limited_ips":  strconv.Itoa(s.limiter.Tracked()),
	}

	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfoWithContext(ctx); err == nil {
			stats["process_rss_bytes"] = strconv.FormatUint(mi.RSS, 10)
		}
	} else {
		log.Debug().Err(err).Msg("process stats unavailable")
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats["host_memory_used_percent"] = strconv.FormatFloat(vm.UsedPercent, 'f', 1, 64)
		if vm.UsedPercent > 90 {
			stats["message"] = "The host is running low on memory."
		}
	}

	return stats
}
