package tui

import (
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/huddle/internal/bus"
	"github.com/matheus3301/huddle/internal/chat"
	"github.com/matheus3301/huddle/internal/persist"
	"github.com/matheus3301/huddle/internal/tui/model"
	"github.com/matheus3301/huddle/internal/upload"
	"go.uber.org/zap"
)

func testApp(t *testing.T) *App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := persist.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	b := bus.New()
	store := chat.New(db, b, zap.NewNop(), "You")
	store.Hydrate()
	return New(store, b, upload.NewPlaceholder(), zap.NewNop(), "test")
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestComposerKeystrokesReachInput(t *testing.T) {
	a := testApp(t)
	a.coord.Select("c1")
	a.app.SetFocus(a.composer.InputField)

	// Every bound rune must pass through to the input untouched.
	for _, r := range "erfpxabuongdiA/1234" {
		ev := keyRune(r)
		if got := a.handleKey(ev); got != ev {
			t.Errorf("rune %q intercepted while typing a message", r)
		}
	}
}

func TestComposeKeyFocusesInput(t *testing.T) {
	a := testApp(t)
	a.coord.Select("c1")

	a.handleKey(keyRune('i'))
	if a.app.GetFocus() != a.composer.InputField {
		t.Errorf("focus = %T after compose key, want the composer input", a.app.GetFocus())
	}
}

func TestThreadFocusDrivesMessageActions(t *testing.T) {
	a := testApp(t)
	a.coord.Select("c1")
	a.refresh()
	a.app.SetFocus(a.thread.List)

	if !a.threadFocused() {
		t.Fatal("thread focus not detected")
	}

	a.handleKey(keyRune('r'))
	if mode, _ := a.coord.ComposeState(); mode != model.ComposeReply {
		t.Errorf("compose mode = %v after reply key, want reply", mode)
	}
	if a.app.GetFocus() != a.composer.InputField {
		t.Error("reply should move focus to the composer input")
	}
}

func TestDeleteKeyOnThreadDoesNotPromptContactDelete(t *testing.T) {
	a := testApp(t)
	a.coord.Select("c1")
	a.refresh()
	a.app.SetFocus(a.thread.List)

	a.handleKey(keyRune('x'))
	if _, _, pending := a.coord.ConfirmPending(); pending {
		t.Error("message delete key opened the contact confirm dialog")
	}
	if _, ok := a.store.Contact("c1"); !ok {
		t.Error("contact removed by a message-level key")
	}
}

func TestAttachKeySurfacesUploadNotice(t *testing.T) {
	a := testApp(t)
	a.coord.Select("c1")

	a.handleKey(keyRune('A'))
	if a.coord.Flash.Get() == "" {
		t.Error("failed upload should surface a notice")
	}
}
