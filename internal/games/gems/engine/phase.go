package engine

// Phase gates player input.
type Phase uint8

const (
	// PhaseMove accepts swap intents.
	PhaseMove Phase = iota
	// PhaseWait rejects swap intents while the pipeline runs.
	PhaseWait
)

func (p Phase) String() string {
	switch p {
	case PhaseMove:
		return "Move"
	case PhaseWait:
		return "Wait"
	default:
		return "Unknown"
	}
}

// Stage is the next step the resolution pipeline will execute.
type Stage uint8

const (
	StageIdle Stage = iota
	StageDestroyMatches
	StageDestroyBlasts
	StageDestroyBombs
	StageCompact
	StageSpawnSpecials
	StageCompactAgain
	StageGravity
	StageRefill
	StageSweep
	StageRecheck
)

var stageNames = [...]string{
	StageIdle:           "Idle",
	StageDestroyMatches: "DestroyMatches",
	StageDestroyBlasts:  "DestroyBlasts",
	StageDestroyBombs:   "DestroyBombs",
	StageCompact:        "Compact",
	StageSpawnSpecials:  "SpawnSpecials",
	StageCompactAgain:   "CompactAgain",
	StageGravity:        "Gravity",
	StageRefill:         "Refill",
	StageSweep:          "Sweep",
	StageRecheck:        "Recheck",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "Unknown"
}
