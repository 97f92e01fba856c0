package defs

// RuleGroup is a folder of rules, kept for organization in the editor.
// Deactivated groups are skipped wholesale when rules run.
type RuleGroup struct {
	// Name is the user-defined name of the group.
	Name string

	// Active groups are processed; deactivated groups are skipped.
	Active bool

	// Rules in this group, in definition order.
	Rules []Rule
}
