package domain

// OptionGroup names one of the editable dropdown enumerations.
type OptionGroup string

const (
	OptionGroupLine  OptionGroup = "line"
	OptionGroupShift OptionGroup = "shift"
)

// OptionGroups lists every valid group in display order.
var OptionGroups = []OptionGroup{OptionGroupLine, OptionGroupShift}

// Valid reports whether g is one of the fixed groups.
func (g OptionGroup) Valid() bool {
	return g == OptionGroupLine || g == OptionGroupShift
}

// Option is one allowed value within a group.
type Option struct {
	Group OptionGroup
	Value string
}

// DefaultLines seeds the line group the first time it is empty.
var DefaultLines = []string{"TRIM 1", "TRIM 2", "TRIM 3", "CHASSIS 1", "CHASSIS 2", "FINAL 1"}

// DefaultShifts seeds the shift group the first time it is empty.
var DefaultShifts = []string{"BLUE", "RED"}
