// condition.go implements the nested #if/#ifdef/#elif/#else/#endif state
// machine. Each open conditional pushes a BranchState; entering an elif or
// else transitions the top of the stack between Active, Search, and
// Ignore.
package cpp

// BranchState is the processing state of the innermost open conditional
// block.
type BranchState int

const (
	// BranchActive means lines in this branch are processed normally.
	BranchActive BranchState = iota
	// BranchSearch means this branch's condition was false but a later
	// #elif/#else in the same group may still become active.
	BranchSearch
	// BranchIgnore means this branch (or an enclosing one) is permanently
	// skipped for the rest of the conditional group.
	BranchIgnore
)

// ConditionManager tracks nested conditional-compilation state.
type ConditionManager struct {
	branchState      BranchState
	branchStateStack []BranchState
}

// NewConditionManager returns a manager in the initial active state with no
// open conditionals.
func NewConditionManager() *ConditionManager {
	return &ConditionManager{branchState: BranchActive}
}

// Reset clears all open conditionals back to the initial active state.
func (cm *ConditionManager) Reset() {
	cm.branchState = BranchActive
	cm.branchStateStack = nil
}

// Depth reports how many conditional blocks are currently open.
func (cm *ConditionManager) Depth() int {
	return len(cm.branchStateStack)
}

// BranchActive reports whether code in the current branch should be
// processed (expanded, emitted, and have nested directives interpreted).
func (cm *ConditionManager) BranchActive() bool {
	return cm.branchState == BranchActive
}

// BranchSearchActive reports whether the current branch is Active or
// Search, i.e. not Ignore. An #elif expression is only evaluated in these
// states.
func (cm *ConditionManager) BranchSearchActive() bool {
	return cm.branchState == BranchActive || cm.branchState == BranchSearch
}

// EnterIf opens a new conditional block. If the enclosing branch is not
// active, the new block is forced Ignore regardless of isTrue so that a
// skipped outer branch never re-activates through a nested condition.
func (cm *ConditionManager) EnterIf(isTrue bool) {
	cm.branchStateStack = append(cm.branchStateStack, cm.branchState)
	if cm.branchState != BranchActive {
		cm.branchState = BranchIgnore
		return
	}
	if isTrue {
		cm.branchState = BranchActive
	} else {
		cm.branchState = BranchSearch
	}
}

// EnterElif transitions the current (innermost) branch on an #elif line. If
// the branch is still Search and isTrue, it becomes Active; if still
// Search and not true, it stays Search (a later elif/else in the group may
// still match). If the branch is Active (a prior branch in this group
// already ran), it becomes Ignore — only one branch per group ever
// executes. An Ignore branch stays Ignore.
func (cm *ConditionManager) EnterElif(isTrue bool) {
	switch cm.branchState {
	case BranchSearch:
		if isTrue {
			cm.branchState = BranchActive
		}
	case BranchActive:
		cm.branchState = BranchIgnore
	}
}

// EnterElse transitions the current branch on an #else line: Search becomes
// Active (no prior branch in the group matched), Active becomes Ignore
// (one already ran), Ignore stays Ignore.
func (cm *ConditionManager) EnterElse() {
	switch cm.branchState {
	case BranchSearch:
		cm.branchState = BranchActive
	case BranchActive:
		cm.branchState = BranchIgnore
	}
}

// ExitIf closes the innermost conditional block, restoring the branch state
// that was active before it opened. It reports false (and logs nothing
// itself — the caller decides severity) if there is no open block to close.
func (cm *ConditionManager) ExitIf() bool {
	if len(cm.branchStateStack) == 0 {
		return false
	}
	n := len(cm.branchStateStack) - 1
	cm.branchState = cm.branchStateStack[n]
	cm.branchStateStack = cm.branchStateStack[:n]
	return true
}
