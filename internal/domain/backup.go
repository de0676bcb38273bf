package domain

// Backup file naming conventions.
const (
	BackupJSONFilename = "tracker-backup.json"
	BackupCSVFilename  = "tracker.csv"
)

// CSVHeader is the header row of the CSV export.
var CSVHeader = []string{"DateTime", "Parts", "Line", "Reason", "Sequence", "Shift", "Notes", "Comments"}

// BackupDocument is the full logical state written by the JSON export.
type BackupDocument struct {
	Options BackupOptions `json:"options"`
	Items   []Entry       `json:"items"`
}

// BackupOptions holds the option groups of a backup.
type BackupOptions struct {
	Line  []string `json:"line"`
	Shift []string `json:"shift"`
}
