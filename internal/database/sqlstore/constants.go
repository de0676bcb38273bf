package sqlstore

// Error Messages - Repository Operations
const (
	ErrMsgFailedToInsertEntry     = "failed to insert entry"
	ErrMsgFailedToDeleteEntry     = "failed to delete entry"
	ErrMsgFailedToQueryEntries    = "failed to query entries"
	ErrMsgFailedToScanEntry       = "failed to scan entry"
	ErrMsgFailedToClearEntries    = "failed to clear entries"
	ErrMsgFailedToCountEntries    = "failed to count entries"
	ErrMsgFailedToResetSequence   = "failed to reset id sequence"
	ErrMsgFailedToListOptions     = "failed to list options"
	ErrMsgFailedToCountOptions    = "failed to count options"
	ErrMsgFailedToInsertOption    = "failed to insert option"
	ErrMsgFailedToDeleteOption    = "failed to delete option"
	ErrMsgFailedToClearOptions    = "failed to clear option group"
	ErrMsgFailedToGetRowsAffected = "failed to get rows affected"
)

// likeEscape is the escape character used in LIKE patterns.
const likeEscape = `\`
