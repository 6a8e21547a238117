package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MahmoudHassan77/toolzy-sub001/editor"
)

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := editor.Load([]byte("definitely not a pdf"), nil)
	assert.ErrorIs(t, err, editor.ErrBadDocument)
}

func TestLoadRejectsEmpty(t *testing.T) {
	_, err := editor.Load(nil, nil)
	assert.ErrorIs(t, err, editor.ErrBadDocument)
}
