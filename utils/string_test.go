package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type trimChild struct {
	Name string
	Tags []string
}

type trimParent struct {
	Title    string
	Count    int
	Child    trimChild
	Children []trimChild
	Ref      *trimChild
	Extra    map[string]any
	hidden   string
}

func TestTrimAllStringFields_WalksNestedValues(t *testing.T) {
	in := trimParent{
		Title:    "  farm  ",
		Count:    3,
		Child:    trimChild{Name: " wheat ", Tags: []string{" rabi "}},
		Children: []trimChild{{Name: "\trice\n"}},
		Ref:      &trimChild{Name: " maize "},
		Extra:    map[string]any{"note": "  organic "},
		hidden:   " x ",
	}

	out := TrimAllStringFields(in)

	assert.Equal(t, "farm", out.Title)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "wheat", out.Child.Name)
	assert.Equal(t, []string{"rabi"}, out.Child.Tags)
	assert.Equal(t, "rice", out.Children[0].Name)
	assert.Equal(t, "maize", out.Ref.Name)
	assert.Equal(t, "organic", out.Extra["note"])
	assert.Equal(t, " x ", out.hidden)

	// the input is not modified
	assert.Equal(t, "  farm  ", in.Title)
	assert.Equal(t, " maize ", in.Ref.Name)
}

func TestTrimAllStringFields_KeepsTimeValues(t *testing.T) {
	type stamped struct {
		Note string
		At   time.Time
	}
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	out := TrimAllStringFields(stamped{Note: " ok ", At: at})
	assert.Equal(t, "ok", out.Note)
	assert.True(t, at.Equal(out.At))
}

func TestTrimAllStringFields_KeepsNamedStringTypes(t *testing.T) {
	type purpose string
	type crop struct{ Purpose purpose }

	out := TrimAllStringFields(crop{Purpose: " both "})
	assert.Equal(t, purpose("both"), out.Purpose)
}
