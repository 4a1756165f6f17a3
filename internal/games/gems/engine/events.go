package engine

// Event is a notification emitted by the engine to presentation and score
// observers. Events are delivered synchronously, in emission order.
type Event interface {
	engineEvent()
}

// Cause tells why a tile left the board.
type Cause uint8

const (
	CauseMatch    Cause = iota // ordinary run
	CauseBlast                 // caught in a detonation
	CauseBomb                  // the bomb itself detonated
	CauseReplaced              // overwritten by a spawned bomb
	CauseReshuffle
)

func (c Cause) String() string {
	switch c {
	case CauseMatch:
		return "match"
	case CauseBlast:
		return "blast"
	case CauseBomb:
		return "bomb"
	case CauseReplaced:
		return "replaced"
	case CauseReshuffle:
		return "reshuffle"
	default:
		return "unknown"
	}
}

// TileSpawned is emitted when a tile is placed by the initial fill, a refill
// or a bomb spawn.
type TileSpawned struct {
	Tile TileInfo
}

func (TileSpawned) engineEvent() {}

// TileDestroyed is emitted when a tile is cleared from its cell.
type TileDestroyed struct {
	Tile  TileInfo
	Cause Cause
}

func (TileDestroyed) engineEvent() {}

// TileMoved is emitted for every tile shifted by gravity or by a swap.
type TileMoved struct {
	Tile TileInfo
	From Position
	To   Position
}

func (TileMoved) engineEvent() {}

// ScoreChanged carries the cumulative score after a destroy-and-score step.
type ScoreChanged struct {
	Score int
	Delta int
}

func (ScoreChanged) engineEvent() {}

// PhaseChanged is emitted on every Move/Wait transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

func (PhaseChanged) engineEvent() {}

// SwapReverted is emitted when a swap produced no match and was undone.
type SwapReverted struct {
	A Position
	B Position
}

func (SwapReverted) engineEvent() {}

// RefillFallback is emitted when the anti-repeat search found no candidate
// and a uniform random gem was placed instead.
type RefillFallback struct {
	Pos Position
	Gem GemType
}

func (RefillFallback) engineEvent() {}

// MisplacedTiles is emitted when the consistency sweep reclaims live tiles
// that no cell references.
type MisplacedTiles struct {
	Count int
}

func (MisplacedTiles) engineEvent() {}

// BoardReshuffled is emitted after a board with no available move was re-rolled.
type BoardReshuffled struct{}

func (BoardReshuffled) engineEvent() {}

// Sink receives engine events.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit implements Sink.
func (f SinkFunc) Emit(e Event) {
	f(e)
}

// Recorder is a Sink that keeps every event it receives.
type Recorder struct {
	Events []Event
}

// Emit implements Sink.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

type nopSink struct{}

func (nopSink) Emit(Event) {}

// multiSink fans one event out to several sinks in order.
type multiSink []Sink

func (m multiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}
