// Package beasiswa defines core types shared across subsystems.
package beasiswa

import "time"

// Category identifies which of the four scholarship groups a record belongs to.
// The values are the exact strings the remote API stores in the kategori column.
type Category string

// Scholarship categories, scraped in this order.
const (
	CategoryDomestik        Category = "SD-SMP-SMA Domestik"
	CategoryInternasional   Category = "SMP-SMA Internasional/Pertukaran"
	CategoryPTDalamNegeri   Category = "Perguruan Tinggi Dalam Negeri"
	CategoryPTLuarNegeri    Category = "Perguruan Tinggi Luar Negeri"
)

// Categories returns all categories in their fixed scrape order.
func Categories() []Category {
	return []Category{
		CategoryDomestik,
		CategoryInternasional,
		CategoryPTDalamNegeri,
		CategoryPTLuarNegeri,
	}
}

// UpdatedAtLayout is the timestamp format the remote API expects in tanggal_update.
const UpdatedAtLayout = "2006-01-02 15:04:05"

// Scholarship is the canonical record published to the remote API.
// JSON field names follow the remote storage contract; required fields are never
// empty because fetchers substitute fallback values for missing data.
type Scholarship struct {
	Name             string   `json:"nama_beasiswa"`
	Category         Category `json:"kategori"`
	SourceURL        string   `json:"website_sumber"`
	Description      string   `json:"deskripsi"`
	Requirements     string   `json:"persyaratan"`
	Deadline         string   `json:"deadline"`
	RegistrationLink string   `json:"link_pendaftaran"`
	UpdatedAt        string   `json:"tanggal_update"`
}

// LogLevel classifies scheduler log entries.
type LogLevel string

// Log levels persisted with each entry.
const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelSuccess LogLevel = "SUCCESS"
	LogLevelError   LogLevel = "ERROR"
)

// LogEntry is one line of the per-run log sequence. Entries are immutable once
// appended and flushed to the remote log store when a run completes.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Level     LogLevel  `json:"level"`
}

// Status is a read-only snapshot of the scheduler's run state.
//
// IsRunning and IsEnabled are always set and cleared together: both mean
// "scheduler armed". They stay separate keys because external consumers of
// /status and /health read both.
type Status struct {
	IsRunning  bool       `json:"isRunning"`
	IsEnabled  bool       `json:"isEnabled"`
	LastUpdate *time.Time `json:"lastUpdate"`
	NextUpdate *time.Time `json:"nextUpdate"`
	IsUpdating bool       `json:"isUpdating"`
}

// RunSummary captures the outcome of one pipeline run for notification.
type RunSummary struct {
	Succeeded    bool
	FinishedAt   time.Time
	TotalRecords string // record count, or "N/A" when unavailable
	Duration     time.Duration
	Attempts     int
	ErrorMessage string
}
