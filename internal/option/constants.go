package option

// Error messages
const (
	ErrMsgListFailed    = "failed to list %s options"
	ErrMsgSeedFailed    = "failed to seed %s defaults"
	ErrMsgAddFailed     = "failed to add %s option"
	ErrMsgRemoveFailed  = "failed to remove %s option"
	ErrMsgReplaceFailed = "failed to replace %s options"
)

// Log messages
const (
	LogMsgDefaultsSeeded     = "Seeded default options"
	LogMsgOptionAdded        = "Option added"
	LogMsgOptionRemoved      = "Option removed"
	LogMsgIgnoredAdd         = "Ignored option add"
	LogMsgRefusedLastRemoval = "Refused to remove last option in group"
	LogMsgGroupReplaced      = "Option group replaced"
)
