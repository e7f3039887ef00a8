package collage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("parse: %w", ErrInvalidInput)))
	assert.Equal(t, 3, ExitCode(fmt.Errorf("%w: a.jpg: %w", ErrDecode, errors.New("eof"))))
	assert.Equal(t, 4, ExitCode(ErrFontLoad))
	assert.Equal(t, 5, ExitCode(fmt.Errorf("save: %w", ErrEncode)))
}
