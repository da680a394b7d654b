package app

import (
	"testing"

	"github.com/adriangreen/todo-tui/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyEnter     = Key{Code: KeyEnter}
	keyEsc       = Key{Code: KeyEsc}
	keyBackspace = Key{Code: KeyBackspace}
	keyDown      = Key{Code: KeyDown}
	keyUp        = Key{Code: KeyUp}
)

// newTestController builds a controller over a store holding the given
// descriptions; the last one ends up at position 0.
func newTestController(descriptions ...string) *Controller {
	store := tasks.NewStore(tasks.NewSequentialIDs(1), nil)
	for _, d := range descriptions {
		store.Add(d)
	}
	return NewController(store, DefaultKeyMap(), nil)
}

func typeText(c *Controller, text string) {
	for _, r := range text {
		if r == ' ' {
			c.Handle(Key{Code: KeySpace})
			continue
		}
		c.Handle(Runes(string(r)))
	}
}

func TestStartsBrowsingWithoutSelection(t *testing.T) {
	c := newTestController("a", "b")

	assert.IsType(t, Browsing{}, c.Mode())
	_, ok := c.Highlighted()
	assert.False(t, ok)
}

func TestQuitThenCancelKeepsSelection(t *testing.T) {
	c := newTestController("a", "b", "c")
	c.Handle(keyDown)
	c.Handle(keyDown)
	before, _ := c.Highlighted()

	assert.Equal(t, Continue, c.Handle(Runes("q")))
	assert.IsType(t, ConfirmingExit{}, c.Mode())

	assert.Equal(t, Continue, c.Handle(keyEsc))
	assert.IsType(t, Browsing{}, c.Mode())
	after, ok := c.Highlighted()
	assert.True(t, ok)
	assert.Equal(t, before, after)
}

func TestConfirmExitTerminates(t *testing.T) {
	for _, confirm := range []Key{Runes("y"), Runes("q")} {
		c := newTestController()
		c.Handle(Key{Code: KeyCtrlC})
		require.IsType(t, ConfirmingExit{}, c.Mode())

		assert.Equal(t, Terminate, c.Handle(confirm))
	}
}

func TestConfirmingExitIgnoresOtherKeys(t *testing.T) {
	c := newTestController("a")
	c.Handle(Runes("q"))

	for _, k := range []Key{Runes("x"), keyEnter, keyDown, keyBackspace} {
		assert.Equal(t, Continue, c.Handle(k))
		assert.IsType(t, ConfirmingExit{}, c.Mode())
	}
	assert.Equal(t, 1, c.Store().Len())
}

func TestComposeNewTask(t *testing.T) {
	c := newTestController("buy milk")

	c.Handle(Runes("i"))
	require.Equal(t, Composing{}, c.Mode())

	typeText(c, "walk dog")
	assert.Equal(t, Composing{Buffer: "walk dog"}, c.Mode())

	c.Handle(keyEnter)
	assert.IsType(t, Browsing{}, c.Mode())
	first, _ := c.Store().At(0)
	assert.Equal(t, "walk dog", first.Description)
	sel, ok := c.Highlighted()
	assert.True(t, ok)
	assert.Equal(t, 0, sel)
	assert.Equal(t, "Task added", c.Status())
}

func TestComposeBlankBufferIsNoop(t *testing.T) {
	c := newTestController("a")
	c.Handle(Runes("i"))
	typeText(c, "   ")

	c.Handle(keyEnter)

	assert.Equal(t, Composing{Buffer: "   "}, c.Mode())
	assert.Equal(t, 1, c.Store().Len())
}

func TestComposeTypingCommandKeys(t *testing.T) {
	c := newTestController()
	c.Handle(Runes("i"))

	// Browsing bindings are plain characters while composing
	typeText(c, "qdxejk")

	assert.Equal(t, Composing{Buffer: "qdxejk"}, c.Mode())
}

func TestComposeBackspace(t *testing.T) {
	c := newTestController()
	c.Handle(Runes("i"))

	c.Handle(keyBackspace)
	assert.Equal(t, Composing{}, c.Mode(), "backspace on empty buffer is a no-op")

	typeText(c, "héé")
	c.Handle(keyBackspace)
	assert.Equal(t, Composing{Buffer: "hé"}, c.Mode())
}

func TestComposeCancelDiscards(t *testing.T) {
	c := newTestController("a")
	c.Handle(Runes("i"))
	typeText(c, "never mind")

	c.Handle(keyEsc)

	assert.IsType(t, Browsing{}, c.Mode())
	assert.Equal(t, 1, c.Store().Len())
}

func TestEditReplacesWithNewIdentifier(t *testing.T) {
	c := newTestController("a", "b")
	c.Handle(keyDown) // highlight position 0 ("b")
	original, _ := c.Store().At(0)

	c.Handle(Runes("e"))
	require.Equal(t, Composing{Buffer: "b", Index: 0, Editing: true}, c.Mode())
	for range "b" {
		c.Handle(keyBackspace)
	}
	typeText(c, "X")
	c.Handle(keyEnter)

	assert.IsType(t, Browsing{}, c.Mode())
	var matches []tasks.Task
	for _, task := range c.Store().All() {
		if task.Description == "X" {
			matches = append(matches, task)
		}
	}
	require.Len(t, matches, 1)
	first, _ := c.Store().At(0)
	assert.Equal(t, "X", first.Description)
	assert.NotEqual(t, original.ID, first.ID)
	assert.Equal(t, 2, c.Store().Len())
	_, stillThere := c.Store().Get(original.ID)
	assert.False(t, stillThere)
}

func TestEditMovesTaskToFront(t *testing.T) {
	c := newTestController("a", "b", "c") // order: c, b, a
	c.Handle(keyDown)
	c.Handle(keyDown)
	c.Handle(keyDown) // highlight "a"

	c.Handle(Runes("e"))
	typeText(c, "!")
	c.Handle(keyEnter)

	var got []string
	for _, task := range c.Store().All() {
		got = append(got, task.Description)
	}
	assert.Equal(t, []string{"a!", "c", "b"}, got)
	sel, _ := c.Highlighted()
	assert.Equal(t, 0, sel)
}

func TestBrowsingActionsWithoutSelectionAreNoops(t *testing.T) {
	c := newTestController("a", "b")

	c.Handle(Runes("x"))
	c.Handle(keyEnter)
	c.Handle(Runes("e"))

	assert.IsType(t, Browsing{}, c.Mode())
	assert.Equal(t, 2, c.Store().Len())
	for _, task := range c.Store().All() {
		assert.False(t, task.Completed)
	}
}

func TestToggleHighlighted(t *testing.T) {
	c := newTestController("buy milk", "walk dog")
	c.Handle(keyDown)
	c.Handle(keyDown) // "buy milk"

	c.Handle(keyEnter)

	milk, _ := c.Store().At(1)
	dog, _ := c.Store().At(0)
	assert.True(t, milk.Completed)
	assert.False(t, dog.Completed)
	assert.Equal(t, "Marked complete", c.Status())

	c.Handle(keyEnter)
	milk, _ = c.Store().At(1)
	assert.False(t, milk.Completed)
	assert.Equal(t, "Marked pending", c.Status())
}

func TestDeleteReclampsSelection(t *testing.T) {
	c := newTestController("a", "b", "c")
	c.Handle(keyDown)
	c.Handle(keyDown)
	c.Handle(keyDown)
	sel, _ := c.Highlighted()
	require.Equal(t, 2, sel)

	c.Handle(Runes("d"))

	sel, ok := c.Highlighted()
	assert.True(t, ok)
	assert.Equal(t, 1, sel)
	assert.Equal(t, 2, c.Store().Len())

	c.Handle(Runes("x"))
	c.Handle(Runes("x"))
	_, ok = c.Highlighted()
	assert.False(t, ok)

	// Deleting on an empty list stays a no-op
	c.Handle(Runes("x"))
	assert.Equal(t, 0, c.Store().Len())
}

func TestMoveOnEmptyStore(t *testing.T) {
	c := newTestController()

	c.Handle(keyDown)
	c.Handle(keyUp)

	_, ok := c.Highlighted()
	assert.False(t, ok)
}

func TestUnmatchedKeysAreIgnored(t *testing.T) {
	c := newTestController("a")
	other := Key{Code: KeyOther, Text: "f5"}

	assert.Equal(t, Continue, c.Handle(other))
	assert.Equal(t, Continue, c.Handle(Runes("z")))
	assert.IsType(t, Browsing{}, c.Mode())

	c.Handle(Runes("i"))
	c.Handle(other)
	c.Handle(keyUp)
	assert.Equal(t, Composing{}, c.Mode())
}

func TestCustomKeyMap(t *testing.T) {
	store := tasks.NewStore(tasks.NewSequentialIDs(1), nil)
	c := NewController(store, NewKeyMap(map[string]string{"new": "a", "quit": "Q"}), nil)

	c.Handle(Runes("i"))
	assert.IsType(t, Browsing{}, c.Mode(), "default key no longer bound")

	c.Handle(Runes("a"))
	assert.IsType(t, Composing{}, c.Mode())
	c.Handle(keyEsc)

	c.Handle(Runes("Q"))
	assert.IsType(t, ConfirmingExit{}, c.Mode())
}

func TestModeNames(t *testing.T) {
	assert.Equal(t, "Browsing", Browsing{}.Name())
	assert.Equal(t, "Composing", Composing{}.Name())
	assert.Equal(t, "Editing", Composing{Editing: true}.Name())
	assert.Equal(t, "Exiting", ConfirmingExit{}.Name())
}
