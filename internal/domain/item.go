package domain

import "strings"

// Item is a single todo entry. ID is the identity key for a collection and is
// immutable once created; Text and IsCompleted are freely mutable.
type Item struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// NewItem constructs an item with the given identity and text. Text is kept
// verbatim, empty included: the store must tolerate an empty entry rather than
// reject it.
func NewItem(id, text string) (Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, ErrInvalidID
	}
	return Item{ID: id, Text: text}, nil
}

// Rename replaces the item text.
func (i *Item) Rename(text string) {
	i.Text = text
}

// SetCompleted sets the completion flag.
func (i *Item) SetCompleted(done bool) {
	i.IsCompleted = done
}

// Toggle flips the completion flag.
func (i *Item) Toggle() {
	i.IsCompleted = !i.IsCompleted
}
