package marlinpost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gucio321/marlinpost/pkg/gcb"
	"github.com/gucio321/marlinpost/pkg/machine"
)

func TestConfigFromMachine(t *testing.T) {
	t.Run("default preset matches defaults", func(t *testing.T) {
		m, err := machine.Get(machine.DefaultID)
		require.NoError(t, err)

		assert.Equal(t, DefaultConfig(), ConfigFromMachine(m))
	})

	t.Run("overrides", func(t *testing.T) {
		c := ConfigFromMachine(&machine.Machine{
			ID:               "x",
			Name:             "X",
			Units:            "Imperial",
			CornerMax:        []float64{1, 2, 3},
			ToolChange:       "M0\n",
			SuppressCommands: []string{},
		})

		assert.Equal(t, "X", c.MachineName)
		assert.Equal(t, gcb.G20, c.Units)
		assert.Equal(t, Corner{1, 2, 3}, c.CornerMax)
		assert.Equal(t, Corner{}, c.CornerMin)
		assert.Equal(t, DefaultPreamble, c.Preamble, "empty preamble keeps the default")
		assert.Equal(t, "M0\n", c.ToolChange)
		assert.Empty(t, c.SuppressCommands)
		assert.Equal(t, []gcb.GCode{gcb.G0, gcb.G00}, c.RapidMoves)
	})
}

func TestUnitsWord(t *testing.T) {
	assert.Equal(t, gcb.G21, UnitsWord("Metric"))
	assert.Equal(t, gcb.G20, UnitsWord("Imperial"))
	assert.Equal(t, gcb.G20, UnitsWord(""))
}
