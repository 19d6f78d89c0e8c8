package flashcards

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestFlipAndNavigate(t *testing.T) {
	state := session.New(i18n.MustNew("en"))
	state.Flashcards = []study.Flashcard{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}
	s := New(state)

	if v := s.View(80, 20); !strings.Contains(v, "Q1") {
		t.Errorf("expected first question, got %q", v)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if v := s.View(80, 20); !strings.Contains(v, "A1") {
		t.Errorf("expected first answer after flip, got %q", v)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.index != 1 || s.flipped {
		t.Errorf("expected second card question side, got index=%d flipped=%v", s.index, s.flipped)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.index != 1 {
		t.Errorf("expected index to stop at last card, got %d", s.index)
	}
}

func TestGenerateKey(t *testing.T) {
	s := New(session.New(i18n.MustNew("en")))

	_, cmd := s.Update(key('g'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(screen.ActionMsg)
	if !ok || msg.Action != study.ActionFlashcards {
		t.Errorf("expected flashcards action, got %#v", msg)
	}
}

func TestEmptyDeck(t *testing.T) {
	state := session.New(i18n.MustNew("en"))
	state.Flashcards = []study.Flashcard{}
	s := New(state)

	want := state.Catalog().T(i18n.EmptyFlashcards)
	if v := s.View(80, 20); !strings.Contains(v, want) {
		t.Errorf("expected %q in empty view", want)
	}
}
