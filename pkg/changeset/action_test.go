package changeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Action
	}{
		{"empty line deletes", "", Delete()},
		{"single space is empty ignore", " ", Ignore("")},
		{"spaces only ignore", "   ", Ignore("")},
		{"tab only ignores", "\t", Ignore("")},
		{"plain path moves", "x/a.txt", Move("x/a.txt")},
		{"trailing space is kept", "x/a.txt ", Move("x/a.txt ")},
		{"leading space ignores", " keep me ", Ignore("keep me")},
		{"leading tab ignores", "\tnote", Ignore("note")},
		{"unicode space ignores", "\u00a0note", Ignore("note")},
		{"single space comment", " a.txt", Ignore("a.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.line))
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "x/a.txt", Move("x/a.txt").String())
	assert.Equal(t, "", Delete().String())
	assert.Equal(t, " note", Ignore("note").String())
	assert.Equal(t, " ", Ignore("").String())
}

func TestActionRoundTrip(t *testing.T) {
	actions := []Action{
		Move("a.txt"),
		Move("dir/sub/b c.txt"),
		Move("trailing "),
		Delete(),
		Ignore("a comment"),
		Ignore(""),
	}

	for _, a := range actions {
		t.Run(a.Kind().String()+":"+a.String(), func(t *testing.T) {
			assert.Equal(t, a, Parse(a.String()))
		})
	}
}

func TestEmptyIgnoreIsNotDelete(t *testing.T) {
	parsed := Parse(Ignore("").String())
	assert.True(t, parsed.IsIgnore())
	assert.False(t, parsed.IsDelete())
}

func TestActionAccessors(t *testing.T) {
	m := Move("dst")
	assert.True(t, m.IsMove())
	assert.Equal(t, KindMove, m.Kind())
	assert.Equal(t, "dst", m.Target())
	assert.Equal(t, "", m.Comment())

	i := Ignore("why")
	assert.True(t, i.IsIgnore())
	assert.Equal(t, "why", i.Comment())
	assert.Equal(t, "", i.Target())

	d := Delete()
	assert.True(t, d.IsDelete())
	assert.Equal(t, "", d.Target())
	assert.Equal(t, "", d.Comment())

	assert.Equal(t, "move", KindMove.String())
	assert.Equal(t, "delete", KindDelete.String())
	assert.Equal(t, "ignore", KindIgnore.String())
}
