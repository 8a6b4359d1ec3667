package parsort

import (
	"time"

	"go.uber.org/zap"
)

// Stage names a phase of a sort.
type Stage string

const (
	StageSegmentSort Stage = "segment-sort"
	StageMerge       Stage = "merge"
	StageVerify      Stage = "verify"
)

// Observer receives timing diagnostics. It is never consulted for
// correctness and may be called from the goroutine running Sort only.
type Observer interface {
	// StageDone reports the duration of one stage.
	StageDone(stage Stage, elapsed time.Duration)
	// LevelDone reports one merge pass and the number of runs it left.
	LevelDone(level, runs int, elapsed time.Duration)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) StageDone(Stage, time.Duration)     {}
func (NopObserver) LevelDone(int, int, time.Duration) {}

type zapObserver struct {
	logger *zap.Logger
}

// NewZapObserver returns an Observer that logs timings to logger at debug
// level. A nil logger discards them.
func NewZapObserver(logger *zap.Logger) Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapObserver{logger: logger.Named("parsort")}
}

func (o *zapObserver) StageDone(stage Stage, elapsed time.Duration) {
	o.logger.Debug("stage done",
		zap.String("stage", string(stage)),
		zap.Duration("elapsed", elapsed))
}

func (o *zapObserver) LevelDone(level, runs int, elapsed time.Duration) {
	o.logger.Debug("merge level done",
		zap.Int("level", level),
		zap.Int("runs", runs),
		zap.Duration("elapsed", elapsed))
}
