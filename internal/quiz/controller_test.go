package quiz

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/levelup/internal/catalog"
)

func newTestController() *Controller {
	return NewController(catalog.Default())
}

func TestNewController_InitialState(t *testing.T) {
	c := newTestController()
	if c.UnlockedLevel() != 1 {
		t.Errorf("UnlockedLevel = %d, want 1", c.UnlockedLevel())
	}
	if c.ExperiencePoints() != 0 {
		t.Errorf("ExperiencePoints = %d, want 0", c.ExperiencePoints())
	}
	if c.CompletionRatio() != 0 {
		t.Errorf("CompletionRatio = %f, want 0", c.CompletionRatio())
	}
	if _, ok := c.CurrentQuestion(); ok {
		t.Error("expected no current question")
	}
}

func TestStartLevel_UnlockedLevelsReturnFirstQuestion(t *testing.T) {
	c := newTestController()
	// Unlock everything by completing level 1 three times.
	for range 3 {
		completeLevel(t, c, 1)
	}

	for _, l := range c.Catalog().Levels() {
		if l.Number > c.UnlockedLevel() {
			continue
		}
		q, err := c.StartLevel(l.Number)
		if err != nil {
			t.Fatalf("StartLevel(%d): %v", l.Number, err)
		}
		if q.Prompt != l.Questions[0].Prompt {
			t.Errorf("StartLevel(%d) = %q, want %q", l.Number, q.Prompt, l.Questions[0].Prompt)
		}
	}
}

func TestStartLevel_LockedLevelsLeaveStateUnchanged(t *testing.T) {
	c := newTestController()
	before := c.Snapshot()

	for _, level := range []int{2, 3} {
		_, err := c.StartLevel(level)
		var locked *LevelLockedError
		if !errors.As(err, &locked) {
			t.Fatalf("StartLevel(%d) err = %v, want *LevelLockedError", level, err)
		}
		if locked.Level != level || locked.Unlocked != 1 {
			t.Errorf("LevelLockedError = %+v", locked)
		}
	}

	assertStateEqual(t, before, c.Snapshot())
}

func TestStartLevel_NotFound(t *testing.T) {
	c := newTestController()
	before := c.Snapshot()

	for _, level := range []int{0, -1, 4, 100} {
		_, err := c.StartLevel(level)
		if !IsLevelNotFound(err) {
			t.Errorf("StartLevel(%d) err = %v, want LevelNotFoundError", level, err)
		}
		if IsLevelLocked(err) {
			t.Errorf("StartLevel(%d) should not report locked", level)
		}
	}

	assertStateEqual(t, before, c.Snapshot())
}

func TestStartLevel_ReplacesPriorAttempt(t *testing.T) {
	c := newTestController()
	completeLevel(t, c, 1)

	if _, err := c.StartLevel(1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SubmitAnswer("HyperText Markup Language"); err != nil {
		t.Fatal(err)
	}

	q, err := c.StartLevel(2)
	if err != nil {
		t.Fatal(err)
	}
	if q.Prompt != "What is React Native?" {
		t.Errorf("first question = %q", q.Prompt)
	}
	a := c.Attempt()
	if a.LevelNumber != 2 || a.CurrentIndex != 0 {
		t.Errorf("attempt = level %d index %d, want level 2 index 0", a.LevelNumber, a.CurrentIndex)
	}
}

func TestSubmitAnswer_CorrectAddsFiftyXP(t *testing.T) {
	c := newTestController()
	if _, err := c.StartLevel(1); err != nil {
		t.Fatal(err)
	}
	before := c.ExperiencePoints()
	if _, err := c.SubmitAnswer("HyperText Markup Language"); err != nil {
		t.Fatal(err)
	}
	if got := c.ExperiencePoints() - before; got != XPPerCorrectAnswer {
		t.Errorf("XP delta = %d, want %d", got, XPPerCorrectAnswer)
	}
}

func TestSubmitAnswer_IncorrectIsNoOp(t *testing.T) {
	c := newTestController()
	if _, err := c.StartLevel(1); err != nil {
		t.Fatal(err)
	}
	before := c.Snapshot()

	for i := range 5 {
		res, err := c.SubmitAnswer("wrong")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if res.Outcome != OutcomeIncorrect {
			t.Errorf("submit %d outcome = %v, want incorrect", i, res.Outcome)
		}
		if res.Next != nil || res.CompletedLevel != 0 {
			t.Errorf("incorrect result carries data: %+v", res)
		}
	}

	assertStateEqual(t, before, c.Snapshot())
	q, _ := c.CurrentQuestion()
	if q.Prompt != "What does HTML stand for?" {
		t.Errorf("current question = %q", q.Prompt)
	}
	if c.ExperiencePoints() != 0 {
		t.Errorf("ExperiencePoints = %d, want 0", c.ExperiencePoints())
	}
}

func TestSubmitAnswer_NoNormalization(t *testing.T) {
	c := newTestController()
	if _, err := c.StartLevel(1); err != nil {
		t.Fatal(err)
	}
	for _, opt := range []string{"hypertext markup language", " HyperText Markup Language", "HyperText Markup Language "} {
		res, err := c.SubmitAnswer(opt)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != OutcomeIncorrect {
			t.Errorf("SubmitAnswer(%q) = %v, want incorrect", opt, res.Outcome)
		}
	}
}

func TestSubmitAnswer_NoActiveAttempt(t *testing.T) {
	c := newTestController()
	_, err := c.SubmitAnswer("anything")
	if !errors.Is(err, ErrNoActiveAttempt) {
		t.Fatalf("err = %v, want ErrNoActiveAttempt", err)
	}
	if c.ExperiencePoints() != 0 || c.UnlockedLevel() != 1 {
		t.Error("state mutated by rejected submission")
	}
}

func TestSubmitAnswer_AfterCompletionHasNoAttempt(t *testing.T) {
	c := newTestController()
	completeLevel(t, c, 1)
	if _, err := c.SubmitAnswer("<img>"); !errors.Is(err, ErrNoActiveAttempt) {
		t.Errorf("err = %v, want ErrNoActiveAttempt", err)
	}
}

func TestLevelCompletion_Effects(t *testing.T) {
	c := newTestController()
	beforeUnlocked := c.UnlockedLevel()
	beforeRatio := c.CompletionRatio()

	completeLevel(t, c, 1)

	if c.UnlockedLevel() != beforeUnlocked+1 {
		t.Errorf("UnlockedLevel = %d, want %d", c.UnlockedLevel(), beforeUnlocked+1)
	}
	if got, want := c.CompletionRatio()-beforeRatio, 1.0/3.0; got != want {
		t.Errorf("ratio delta = %v, want %v", got, want)
	}
	if c.Attempt() != nil {
		t.Error("attempt not cleared")
	}
}

func TestScenario_CompleteLevelOne(t *testing.T) {
	c := newTestController()

	q, err := c.StartLevel(1)
	if err != nil {
		t.Fatalf("StartLevel(1): %v", err)
	}
	if q.Prompt != "What does HTML stand for?" {
		t.Fatalf("first question = %q", q.Prompt)
	}

	res, err := c.SubmitAnswer("HyperText Markup Language")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeContinue {
		t.Fatalf("outcome = %v, want continue", res.Outcome)
	}
	if res.Next == nil || res.Next.Prompt != "Which tag is used for images in HTML?" {
		t.Fatalf("next question = %+v", res.Next)
	}
	if c.ExperiencePoints() != 50 {
		t.Errorf("ExperiencePoints = %d, want 50", c.ExperiencePoints())
	}

	res, err = c.SubmitAnswer("<img>")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeLevelComplete || res.CompletedLevel != 1 {
		t.Fatalf("result = %+v, want LevelComplete(1)", res)
	}
	if c.UnlockedLevel() != 2 {
		t.Errorf("UnlockedLevel = %d, want 2", c.UnlockedLevel())
	}
	if c.CompletionRatio() != 1.0/3.0 {
		t.Errorf("CompletionRatio = %v, want 1/3", c.CompletionRatio())
	}
	if c.ExperiencePoints() != 100 {
		t.Errorf("ExperiencePoints = %d, want 100", c.ExperiencePoints())
	}
}

func TestScenario_LockedLevelThree(t *testing.T) {
	c := newTestController()
	_, err := c.StartLevel(3)
	if !IsLevelLocked(err) {
		t.Fatalf("err = %v, want LevelLockedError", err)
	}
	if c.UnlockedLevel() != 1 {
		t.Errorf("UnlockedLevel = %d, want 1", c.UnlockedLevel())
	}
}

func TestReplay_StillAdvancesFrontier(t *testing.T) {
	c := newTestController()
	completeLevel(t, c, 1)
	completeLevel(t, c, 1)

	if c.UnlockedLevel() != 3 {
		t.Errorf("UnlockedLevel = %d, want 3 after replaying level 1", c.UnlockedLevel())
	}
}

func TestCompletionRatio_AllLevelsIsExactlyOne(t *testing.T) {
	c := newTestController()
	for level := 1; level <= 3; level++ {
		completeLevel(t, c, level)
	}
	if c.CompletionRatio() != 1.0 {
		t.Errorf("CompletionRatio = %v, want 1", c.CompletionRatio())
	}
	if c.ExperiencePoints() != 300 {
		t.Errorf("ExperiencePoints = %d, want 300", c.ExperiencePoints())
	}
	if c.UnlockedLevel() != 4 {
		t.Errorf("UnlockedLevel = %d, want 4", c.UnlockedLevel())
	}
}

func TestCompletionRatio_CappedOnReplays(t *testing.T) {
	c := newTestController()
	for range 5 {
		completeLevel(t, c, 1)
	}
	if c.CompletionRatio() != 1.0 {
		t.Errorf("CompletionRatio = %v, want capped at 1", c.CompletionRatio())
	}
}

func TestAbandon(t *testing.T) {
	c := newTestController()
	if _, err := c.StartLevel(1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SubmitAnswer("HyperText Markup Language"); err != nil {
		t.Fatal(err)
	}
	c.Abandon()

	if _, ok := c.CurrentQuestion(); ok {
		t.Error("expected no current question after abandon")
	}
	if c.ExperiencePoints() != 50 {
		t.Errorf("ExperiencePoints = %d, want 50 (XP is kept)", c.ExperiencePoints())
	}
	if c.UnlockedLevel() != 1 {
		t.Errorf("UnlockedLevel = %d, want 1", c.UnlockedLevel())
	}

	// Abandon without an attempt is a no-op.
	c.Abandon()
}

func TestIsUnlocked(t *testing.T) {
	c := newTestController()
	tests := []struct {
		level int
		want  bool
	}{
		{1, true},
		{2, false},
		{0, false},
		{4, false},
	}
	for _, tt := range tests {
		if got := c.IsUnlocked(tt.level); got != tt.want {
			t.Errorf("IsUnlocked(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	c := newTestController()
	if _, err := c.StartLevel(1); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	snap.Attempt.CurrentIndex = 1
	snap.Attempt.Questions[0].Prompt = "mutated"
	snap.ExperiencePoints = 999

	q, _ := c.CurrentQuestion()
	if q.Prompt != "What does HTML stand for?" {
		t.Errorf("controller state changed through snapshot: %q", q.Prompt)
	}
	if c.ExperiencePoints() != 0 {
		t.Error("controller XP changed through snapshot")
	}
}

// completeLevel answers every question of level correctly.
func completeLevel(t *testing.T, c *Controller, level int) {
	t.Helper()
	q, err := c.StartLevel(level)
	if err != nil {
		t.Fatalf("StartLevel(%d): %v", level, err)
	}
	for {
		res, err := c.SubmitAnswer(q.Correct)
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		switch res.Outcome {
		case OutcomeContinue:
			q = *res.Next
		case OutcomeLevelComplete:
			if res.CompletedLevel != level {
				t.Fatalf("CompletedLevel = %d, want %d", res.CompletedLevel, level)
			}
			return
		default:
			t.Fatalf("unexpected outcome %v", res.Outcome)
		}
	}
}

func assertStateEqual(t *testing.T, want, got State) {
	t.Helper()
	if want.UnlockedLevel != got.UnlockedLevel ||
		want.ExperiencePoints != got.ExperiencePoints ||
		want.CompletedLevels != got.CompletedLevels {
		t.Fatalf("state changed: before %+v, after %+v", want, got)
	}
	if (want.Attempt == nil) != (got.Attempt == nil) {
		t.Fatalf("attempt presence changed: before %v, after %v", want.Attempt != nil, got.Attempt != nil)
	}
	if want.Attempt != nil {
		if want.Attempt.LevelNumber != got.Attempt.LevelNumber || want.Attempt.CurrentIndex != got.Attempt.CurrentIndex {
			t.Fatalf("attempt changed: before %+v, after %+v", want.Attempt, got.Attempt)
		}
	}
}

func TestTransitionLogsUseLevelNumberField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewController(catalog.Default(), WithLogger(zap.New(core)))

	if _, err := c.StartLevel(1); err != nil {
		t.Fatal(err)
	}
	_, _ = c.StartLevel(3)
	c.Abandon()

	entries := logs.All()
	if len(entries) == 0 {
		t.Fatal("expected debug entries")
	}
	for _, e := range entries {
		fields := e.ContextMap()
		if _, clash := fields["level"]; clash {
			t.Errorf("%q logs a field named level, which collides with the severity key", e.Message)
		}
	}
	started := logs.FilterMessage("level started").All()
	if len(started) != 1 || started[0].ContextMap()["level_number"] != int64(1) {
		t.Errorf("level started entries = %v", started)
	}
}
