package annex

import (
	"errors"
	"testing"
)

func TestCategoryFromSelection(t *testing.T) {
	cases := []struct {
		sel [NumCategories]bool
		cat Category
	}{
		{[NumCategories]bool{}, NoCategory},
		{[NumCategories]bool{true, false, false, false, false, false}, NoDifference},
		{[NumCategories]bool{false, false, false, true, false, false}, LessProtective},
		{[NumCategories]bool{false, false, false, false, false, true}, NotApplicable},
		{[NumCategories]bool{false, true, false, false, true, false}, MultipleCategories},
		{[NumCategories]bool{true, true, true, true, true, true}, MultipleCategories},
	}
	for _, tc := range cases {
		if got := CategoryFromSelection(tc.sel); got != tc.cat {
			t.Errorf("CategoryFromSelection(%v) = %v, expected %v", tc.sel, got, tc.cat)
		}
	}
}

func TestCategoryColumns(t *testing.T) {
	for i, c := range Categories {
		col := FirstCategoryColumn + i
		if c.Column() != col {
			t.Errorf("%v: column %d, expected %d", c, c.Column(), col)
		}
		if back, ok := CategoryForColumn(col); !ok || back != c {
			t.Errorf("CategoryForColumn(%d) = %v, %v", col, back, ok)
		}
		if got := CategoryFromSelection(c.Selection()); got != c {
			t.Errorf("selection of %v gives %v", c, got)
		}
	}
	for _, col := range []int{1, 3, 10, 11} {
		if _, ok := CategoryForColumn(col); ok {
			t.Errorf("column %d should not be a category", col)
		}
	}
	if NoCategory.Selection() != [NumCategories]bool{} || MultipleCategories.Selection() != [NumCategories]bool{} {
		t.Error("non-selectable category selects a checkbox")
	}
	if NoCategory.Column() != 0 || MultipleCategories.Column() != 0 {
		t.Error("non-selectable category has a column")
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in  string
		cat Category
	}{
		{"", NoCategory},
		{"   ", NoCategory},
		{"No Difference", NoDifference},
		{"no difference", NoDifference},
		{"MORE EXACTING", MoreExacting},
		{"More exacting or exceeds", MoreExacting},
		{"Different in character", DifferentInCharacter},
		{"different in  character or other\tmeans of compliance", DifferentInCharacter},
		{"Less protective or partially", LessProtective},
		{"Less protective or partially implemented or not implemented", LessProtective},
		{"Significant Difference", SignificantDifference},
		{" Not Applicable ", NotApplicable},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", tc.in, err)
			continue
		}
		if got != tc.cat {
			t.Errorf("ParseCategory(%q) = %v, expected %v", tc.in, got, tc.cat)
		}
	}

	for _, in := range []string{"Maybe", MultipleLabel, "No", "Not"} {
		if _, err := ParseCategory(in); !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("ParseCategory(%q) = %v, expected ErrUnknownCategory", in, err)
		}
	}
}

func TestCategoryLabels(t *testing.T) {
	for _, c := range Categories {
		for _, l := range []string{c.String(), c.Long()} {
			if got, err := ParseCategory(l); err != nil || got != c {
				t.Errorf("label %q parses as %v, %v", l, got, err)
			}
		}
	}
	if NoCategory.String() != "" || MultipleCategories.String() != MultipleLabel {
		t.Error("unexpected labels for empty and sentinel values")
	}
}
