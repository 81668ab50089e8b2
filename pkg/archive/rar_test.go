package archive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_NotAnArchive(t *testing.T) {
	_, err := Extract([]byte("this is not a rar file"))
	require.Error(t, err)
}

func TestExtract_Empty(t *testing.T) {
	_, err := Extract(nil)
	require.Error(t, err)
}
