package controllers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Heartbeat reports that the process is alive along with a short system
// summary.
func Heartbeat(ctx *fiber.Ctx) error {
	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStatus, _ := mem.VirtualMemory()
	diskStat, _ := disk.Usage("/")

	cpuName := ""
	if len(cpuStat) > 0 {
		cpuName = cpuStat[0].Family
	}

	response := map[string]interface{}{
		"processor": cpuName,
		"hostname":  hostStat.Hostname,
		"platform":  hostStat.Platform,
		"ram":       fmt.Sprintf("%dGB", vmStatus.Total/1024/1024/1024),
		"disk":      fmt.Sprintf("%dGB", diskStat.Total/1024/1024/1024),
	}

	return ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Request OK",
		"status":  http.StatusOK,
		"data":    response,
	})
}
