package balance

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// Direction classifies a category as income or outcome. On the wire it is the
// boolean "isIncome".
type Direction int

const (
	Outcome Direction = iota
	Income
)

// DirectionOf converts the wire boolean into a Direction.
func DirectionOf(isIncome bool) Direction {
	if isIncome {
		return Income
	}
	return Outcome
}

// IsIncome returns the wire form of the direction.
func (d Direction) IsIncome() bool { return d == Income }

func (d Direction) String() string {
	if d == Income {
		return "income"
	}
	return "outcome"
}

// Category labels a transaction. A transaction embeds a value copy of its
// category, so renaming a category elsewhere does not rewrite history.
type Category struct {
	ID        int
	Name      string
	Emoji     string
	Direction Direction
}

// NewCategory builds a category, rejecting an emoji that is not exactly one
// display character.
func NewCategory(id int, name, emoji string, direction Direction) (Category, error) {
	if err := validateEmoji(emoji); err != nil {
		return Category{}, err
	}
	return Category{ID: id, Name: name, Emoji: emoji, Direction: direction}, nil
}

// validateEmoji requires exactly one grapheme cluster. Multi-codepoint emoji
// such as flags or ZWJ sequences count as one; an empty string or two
// characters do not.
func validateEmoji(emoji string) error {
	if uniseg.GraphemeClusterCount(emoji) != 1 {
		return fmt.Errorf("%w: %q is not a single display character", ErrInvalidEmoji, emoji)
	}
	return nil
}

// Tree returns the category as an interchange tree.
func (c Category) Tree() *Object {
	return NewObject().
		Set("id", Int(c.ID)).
		Set("name", Text(c.Name)).
		Set("emoji", Text(c.Emoji)).
		Set("isIncome", Bool(c.Direction.IsIncome()))
}

// DecodeCategoryTree decodes a category from an interchange tree, reporting
// the offending field path on failure.
func DecodeCategoryTree(v Value) (Category, error) {
	return decodeCategory(v, "")
}

func decodeCategory(v Value, path string) (Category, error) {
	obj, ok := v.(*Object)
	if !ok {
		return Category{}, &FieldError{Path: path, Err: fmt.Errorf("expected an object, got %T", v)}
	}
	id, err := obj.intAt(path, "id")
	if err != nil {
		return Category{}, err
	}
	name, err := obj.textAt(path, "name")
	if err != nil {
		return Category{}, err
	}
	emoji, err := obj.textAt(path, "emoji")
	if err != nil {
		return Category{}, err
	}
	if err := validateEmoji(emoji); err != nil {
		return Category{}, &FieldError{Path: joinPath(path, "emoji"), Err: err}
	}
	isIncome, err := obj.boolAt(path, "isIncome")
	if err != nil {
		return Category{}, err
	}
	return Category{ID: id, Name: name, Emoji: emoji, Direction: DirectionOf(isIncome)}, nil
}
