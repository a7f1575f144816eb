package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestIndexOf(t *testing.T) {
	t.Parallel()

	options := []string{"liquid", "django", "inline"}
	if got := IndexOf(options, "django"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := IndexOf(options, "jinja"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	t.Parallel()

	if err := translateSurveyErr(fmt.Errorf("ask: %w", terminal.InterruptErr)); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}
