package report

import (
	"context"
	"runtime"
	"sort"
	"time"

	goversion "github.com/hashicorp/go-version"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// Build snapshots items into a job report
func Build(action, jobID string, paths []string, items []*models.FileItem, start, end time.Time) *models.JobReport {
	report := &models.JobReport{
		Action:    action,
		JobID:     jobID,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Paths:     paths,
		Items:     []*models.ItemReport{},
		ByStatus:  make(map[models.FileStatus]int),
	}

	seen := make(map[string]bool)
	var versions []string
	for _, item := range items {
		report.AddItem(item)
		if v := item.Assembly.RuntimeVersion; !seen[v] {
			seen[v] = true
			versions = append(versions, v)
		}
	}
	report.RuntimeVersions = SortRuntimeVersions(versions)

	return report
}

// SortRuntimeVersions orders runtime version strings oldest first. Strings
// that do not parse as versions go last in lexical order.
func SortRuntimeVersions(versions []string) []string {
	var parsed goversion.Collection
	byVersion := make(map[*goversion.Version]string)
	var other []string

	for _, raw := range versions {
		v, err := goversion.NewVersion(raw)
		if err != nil {
			other = append(other, raw)
			continue
		}
		parsed = append(parsed, v)
		byVersion[v] = raw
	}

	sort.Sort(parsed)
	sort.Strings(other)

	sorted := make([]string, 0, len(versions))
	for _, v := range parsed {
		sorted = append(sorted, byVersion[v])
	}
	return append(sorted, other...)
}

// CollectHost describes the current machine. Lookup failures leave the
// corresponding fields at their runtime defaults.
func CollectHost(ctx context.Context, workers int, elevated bool) *models.HostInfo {
	info := &models.HostInfo{
		Platform:   runtime.GOOS,
		KernelArch: runtime.GOARCH,
		Elevated:   elevated,
		Workers:    workers,
	}

	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return info
	}
	info.Hostname = hi.Hostname
	if hi.Platform != "" {
		info.Platform = hi.Platform
		if hi.PlatformVersion != "" {
			info.Platform += " " + hi.PlatformVersion
		}
	}
	if hi.KernelArch != "" {
		info.KernelArch = hi.KernelArch
	}
	return info
}
