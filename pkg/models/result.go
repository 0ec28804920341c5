package models

import "time"

// JobReport contains the outcome of one ngenctl run
type JobReport struct {
	// Summary
	Action     string        `json:"action" yaml:"action"`
	JobID      string        `json:"job_id,omitempty" yaml:"job_id,omitempty"`
	StartTime  time.Time     `json:"start_time" yaml:"start_time"`
	EndTime    time.Time     `json:"end_time" yaml:"end_time"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	Paths      []string      `json:"paths" yaml:"paths"`
	TotalItems int           `json:"total_items" yaml:"total_items"`
	Stopped    bool          `json:"stopped" yaml:"stopped"`

	// Items in list order
	Items []*ItemReport `json:"items" yaml:"items"`

	// Counts by status
	ByStatus map[FileStatus]int `json:"by_status" yaml:"by_status"`

	// Runtime versions seen, oldest first
	RuntimeVersions []string `json:"runtime_versions" yaml:"runtime_versions"`

	// Errors reported during the run
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Host
	Host *HostInfo `json:"host,omitempty" yaml:"host,omitempty"`

	// Report path
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// ItemReport is a point-in-time copy of a FileItem
type ItemReport struct {
	Assembly `yaml:",inline"`
	Status   FileStatus `json:"status" yaml:"status"`
}

// HostInfo describes the machine the job ran on
type HostInfo struct {
	Hostname   string `json:"hostname" yaml:"hostname"`
	Platform   string `json:"platform" yaml:"platform"`
	KernelArch string `json:"kernel_arch" yaml:"kernel_arch"`
	Elevated   bool   `json:"elevated" yaml:"elevated"`
	Workers    int    `json:"workers" yaml:"workers"`
}

// AddItem appends a snapshot of the item to the report
func (r *JobReport) AddItem(item *FileItem) {
	status := item.Status()
	r.Items = append(r.Items, &ItemReport{
		Assembly: *item.Assembly,
		Status:   status,
	})
	r.TotalItems++

	if r.ByStatus == nil {
		r.ByStatus = make(map[FileStatus]int)
	}
	r.ByStatus[status]++
}

// AddError records an error message
func (r *JobReport) AddError(err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err.Error())
}
