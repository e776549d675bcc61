package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)

	u.Error("** class name missing **")
	u.Info("hint")
	u.Printf("%d\n", 3)

	assert.Equal(t, "** class name missing **\nhint\n3\n", buf.String())
	assert.Equal(t, "(hbnb) ", u.PromptString("(hbnb) "))
}

func TestColoredOutput(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, true)

	u.Error("oops")
	assert.Equal(t, string(ColorLightRed)+"oops"+string(ColorDefault)+"\n", buf.String())
	assert.Equal(t, string(ColorLightBlue)+"(hbnb)"+string(ColorDefault)+" ", u.PromptString("(hbnb) "))
}
