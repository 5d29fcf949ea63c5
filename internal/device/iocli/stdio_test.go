package iocli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf)

	out.Println("hello", 42)
	out.Printf("%s=%d\n", "k", 7)
	n, err := out.Write([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, "hello 42\nk=7\nraw", buf.String())
}
