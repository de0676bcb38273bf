package entry

// Error messages
const (
	ErrMsgInvalidSequence   = "sequence must be a whole number between -2147483648 and 2147483647"
	ErrMsgMissingField      = "entry %d is missing required field %q"
	ErrMsgInsertEntryFailed = "failed to insert entry"
	ErrMsgDeleteEntryFailed = "failed to delete entry %d"
	ErrMsgQueryFailed       = "failed to query entries"
	ErrMsgReplaceFailed     = "failed to replace entries"
)

// Log messages
const (
	LogMsgEntryAdded     = "Scrap entry recorded"
	LogMsgEntryDeleted   = "Scrap entry deleted"
	LogMsgEntriesReplace = "Replacing all scrap entries"
	LogMsgInvalidEntry   = "Rejected invalid scrap entry"
)
