package annex

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Category is the classification derived from the checkbox group in
// columns 4 through 9.
type Category int

const (
	NoCategory Category = iota
	NoDifference
	MoreExacting
	DifferentInCharacter
	LessProtective
	SignificantDifference
	NotApplicable
	MultipleCategories
)

// NumCategories is the size of the checkbox group.
const NumCategories = 6

// Categories lists the selectable categories in column order.
var Categories = [NumCategories]Category{
	NoDifference,
	MoreExacting,
	DifferentInCharacter,
	LessProtective,
	SignificantDifference,
	NotApplicable,
}

// FirstCategoryColumn is the column of the first checkbox.
const FirstCategoryColumn = 4

// MultipleLabel is written in place of a category when a row has more
// than one checkbox selected.
const MultipleLabel = "error-multi checkbox"

var shortLabels = map[Category]string{
	NoDifference:          "No Difference",
	MoreExacting:          "More Exacting",
	DifferentInCharacter:  "Different in character",
	LessProtective:        "Less protective or partially",
	SignificantDifference: "Significant Difference",
	NotApplicable:         "Not Applicable",
}

var longLabels = map[Category]string{
	NoDifference:          "No difference",
	MoreExacting:          "More exacting or exceeds",
	DifferentInCharacter:  "Different in character or other means of compliance",
	LessProtective:        "Less protective or partially implemented or not implemented",
	SignificantDifference: "Significant difference",
	NotApplicable:         "Not applicable",
}

var ErrUnknownCategory = errors.New("unknown difference category")

var fold = cases.Fold()

var labelIndex = func() map[string]Category {
	m := make(map[string]Category)
	for _, c := range Categories {
		m[labelKey(shortLabels[c])] = c
		m[labelKey(longLabels[c])] = c
	}
	return m
}()

func labelKey(s string) string {
	return fold.String(strings.Join(strings.Fields(s), " "))
}

func (c Category) String() string {
	switch c {
	case NoCategory:
		return ""
	case MultipleCategories:
		return MultipleLabel
	}
	if l, ok := shortLabels[c]; ok {
		return l
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Long returns the long form of the label.
func (c Category) Long() string {
	if l, ok := longLabels[c]; ok {
		return l
	}
	return c.String()
}

// Column returns the 1-based table column holding the category's
// checkbox, or zero for the empty and sentinel values.
func (c Category) Column() int {
	if c < NoDifference || c > NotApplicable {
		return 0
	}
	return FirstCategoryColumn + int(c-NoDifference)
}

// Selectable reports whether c corresponds to a single checkbox.
func (c Category) Selectable() bool {
	return c.Column() != 0
}

func CategoryForColumn(col int) (Category, bool) {
	idx := col - FirstCategoryColumn
	if idx < 0 || idx >= len(Categories) {
		return NoCategory, false
	}
	return Categories[idx], true
}

// ParseCategory accepts the short or long label of a category in any
// case. The empty string parses as NoCategory.
func ParseCategory(s string) (Category, error) {
	key := labelKey(s)
	if key == "" {
		return NoCategory, nil
	}
	if c, ok := labelIndex[key]; ok {
		return c, nil
	}
	return NoCategory, fmt.Errorf("%w: %q", ErrUnknownCategory, strings.TrimSpace(s))
}

// CategoryFromSelection derives the category from the checkbox states of
// columns 4 through 9, in order.
func CategoryFromSelection(selected [NumCategories]bool) Category {
	res := NoCategory
	for i, sel := range selected {
		if !sel {
			continue
		}
		if res != NoCategory {
			return MultipleCategories
		}
		res = Categories[i]
	}
	return res
}

// Selection is the inverse of CategoryFromSelection for selectable
// categories and NoCategory.
func (c Category) Selection() [NumCategories]bool {
	var sel [NumCategories]bool
	if c.Selectable() {
		sel[c.Column()-FirstCategoryColumn] = true
	}
	return sel
}
