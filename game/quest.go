package game

import "strings"

// QuestObjective is one condition a quest requires; Target may be a
// concrete entity key or one of the wildcard sentinels below.
type QuestObjective struct {
	Type     string // e.g. "kill", "mine", "craft"
	Target   string
	Required int
}

const (
	TargetAny         = "any"
	TargetPirateAny   = "pirate_any"
	TargetBeltAny     = "belt_any"
	TargetUniqueItems = "unique_items"
)

// QuestDefinition is a lookup-table entry (pure data, no server dependency).
type QuestDefinition struct {
	ID             string
	LevelRequired  int
	Repeatable     bool
	Prerequisites  []string
	Objectives     []QuestObjective
	Rewards        map[string]int // item_key -> qty, plus "omen" and "xp" pseudo-keys
}

// Progress tracks one player's advancement through one active quest's objectives.
type Progress struct {
	QuestID string
	Current map[int]int // objective index -> current count
}

// QuestTracker is per-player quest state.
type QuestTracker struct {
	Active       map[string]*Progress
	Completed    map[string]struct{}
	CraftedTypes map[string]struct{}
}

// NewQuestTracker returns an empty tracker.
func NewQuestTracker() *QuestTracker {
	return &QuestTracker{
		Active:       make(map[string]*Progress),
		Completed:    make(map[string]struct{}),
		CraftedTypes: make(map[string]struct{}),
	}
}

// CanAccept validates the accept predicates: not already
// active, quest exists (caller passes the definition), level met,
// non-repeatable-not-completed, and every prerequisite completed.
func (t *QuestTracker) CanAccept(def QuestDefinition, level int) error {
	if _, active := t.Active[def.ID]; active {
		return errAlreadyActive
	}
	if level < def.LevelRequired {
		return errLevelTooLow
	}
	if _, done := t.Completed[def.ID]; done && !def.Repeatable {
		return errAlreadyCompleted
	}
	for _, prereq := range def.Prerequisites {
		if _, ok := t.Completed[prereq]; !ok {
			return errPrereqMissing
		}
	}
	return nil
}

// Accept enrolls the quest, assuming CanAccept already passed.
func (t *QuestTracker) Accept(def QuestDefinition) {
	t.Active[def.ID] = &Progress{QuestID: def.ID, Current: make(map[int]int)}
}

// Abandon removes an active quest without completing it.
func (t *QuestTracker) Abandon(questID string) {
	delete(t.Active, questID)
}

// WorldEvent is one fact the tracker matches active objectives against.
type WorldEvent struct {
	Type   string
	Target string
	Amount int
}

func objectiveMatches(obj QuestObjective, ev WorldEvent, craftedCount int) bool {
	if obj.Type != ev.Type {
		return false
	}
	switch obj.Target {
	case ev.Target:
		return true
	case TargetAny:
		return true
	case TargetPirateAny:
		return strings.HasPrefix(ev.Target, "pirate")
	case TargetBeltAny:
		return strings.HasPrefix(ev.Target, "belt_")
	case TargetUniqueItems:
		return true
	}
	return false
}

// CompletionResult reports a quest finishing as a result of an event.
type CompletionResult struct {
	QuestID string
	Rewards map[string]int
}

// OnEvent visits every active quest's objectives against ev, advancing
// matching objectives (clamped to Required) and completing quests
// whose objectives are all saturated. defs must contain every quest in
// t.Active, keyed by id.
func (t *QuestTracker) OnEvent(ev WorldEvent, defs map[string]QuestDefinition) []CompletionResult {
	if ev.Type == "craft" {
		t.CraftedTypes[ev.Target] = struct{}{}
	}
	var completions []CompletionResult
	for questID, prog := range t.Active {
		def, ok := defs[questID]
		if !ok {
			continue
		}
		for i, obj := range def.Objectives {
			if obj.Target == TargetUniqueItems {
				current := len(t.CraftedTypes)
				if current > obj.Required {
					current = obj.Required
				}
				prog.Current[i] = current
				continue
			}
			if !objectiveMatches(obj, ev, 0) {
				continue
			}
			next := prog.Current[i] + ev.Amount
			if next > obj.Required {
				next = obj.Required
			}
			prog.Current[i] = next
		}
		if questSaturated(def, prog) {
			delete(t.Active, questID)
			t.Completed[questID] = struct{}{}
			completions = append(completions, CompletionResult{QuestID: questID, Rewards: def.Rewards})
		}
	}
	return completions
}

func questSaturated(def QuestDefinition, prog *Progress) bool {
	for i, obj := range def.Objectives {
		if prog.Current[i] < obj.Required {
			return false
		}
	}
	return true
}

type questError string

func (e questError) Error() string { return string(e) }

const (
	errAlreadyActive    = questError("quest already active")
	errLevelTooLow      = questError("level requirement not met")
	errAlreadyCompleted = questError("quest already completed")
	errPrereqMissing    = questError("prerequisite not completed")
)
