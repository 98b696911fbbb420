package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"sort", "convert", "coverage", "config"})

	assert.NotNil(t, root.PersistentFlags().Lookup("references"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, err := newLogger(verbose)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

func TestLineError(t *testing.T) {
	err := &LineError{Line: 7, Err: assert.AnError}
	assert.Equal(t, "line 7: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)
}
