package toolpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{"objects": [
  {"type": "group", "name": "Job", "label": "My job", "group": [
    {"name": "Machine", "units": "Metric"},
    {"type": "stock", "name": "Stock"},
    {"label": "Profile", "commands": [
      "(Profile)",
      "G0 X0 Y0 Z5",
      {"name": "G1", "params": {"X": 10, "F": 2.5}},
      "g81 x1 y2 Z-3 r1"
    ]}
  ]}
]}`

func TestDecode(t *testing.T) {
	// --- Act ---
	objects, err := Decode([]byte(testDocument))

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, objects, 1)

	job, ok := objects[0].(*Group)
	require.True(t, ok, "expected a group, got %T", objects[0])
	assert.Equal(t, "Job", job.Name())
	assert.Equal(t, "My job", job.Label())
	require.Len(t, job.Children(), 3)

	m, ok := job.Children()[0].(*Machine)
	require.True(t, ok)
	assert.Equal(t, MachineName, m.Name())
	assert.Equal(t, UnitsMetric, m.Units())

	assert.Equal(t, KindStock, job.Children()[1].Kind())

	path, ok := job.Children()[2].(*Path)
	require.True(t, ok)
	assert.Equal(t, "Profile", path.Label())

	expected := []Command{
		NewCommand("(Profile)", nil),
		NewCommand("G0", map[string]float64{"X": 0, "Y": 0, "Z": 5}),
		NewCommand("G1", map[string]float64{"X": 10, "F": 2.5}),
		NewCommand("G81", map[string]float64{"X": 1, "Y": 2, "Z": -3, "R": 1}),
	}
	if diff := cmp.Diff(expected, path.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, path.Commands[0].IsComment())
	assert.False(t, path.Commands[1].IsComment())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown type", `{"objects": [{"type": "drill"}]}`},
		{"cannot guess", `{"objects": [{"label": "empty"}]}`},
		{"bad member", `{"objects": [{"type": "group", "group": [{"label": "x"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))

			assert.ErrorIs(t, err, ErrUnknownObjectType)
		})
	}

	_, err := Decode([]byte(`{"objects": [{"commands": ["G1 Xoops"]}]}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	job := NewGroup("Job", "Job",
		NewMachine("Imperial"),
		NewPath("p", "Pocket",
			NewCommand("G0", map[string]float64{"Z": 5}),
			NewCommand("(note)", nil),
		),
	)

	data, err := Encode(job)
	require.NoError(t, err)

	objects, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, objects, 1)

	got := objects[0].(*Group)
	require.Len(t, got.Children(), 2)
	assert.Equal(t, "Imperial", got.Children()[0].(*Machine).Units())

	path := got.Children()[1].(*Path)
	assert.Equal(t, "Pocket", path.Label())
	if diff := cmp.Diff(job.Children()[1].(*Path).Commands, path.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(file, []byte(testDocument), 0o600))

	objects, err := DecodeFile(file)
	require.NoError(t, err)
	assert.Len(t, objects, 1)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsPathish(t *testing.T) {
	assert.True(t, IsPathish(NewPath("p", "p")))
	assert.True(t, IsPathish(NewGroup("g", "g")))
	assert.False(t, IsPathish(NewStock("s", "s")))
	assert.False(t, IsPathish(NewMachine(UnitsMetric)))
}

func TestKind_String(t *testing.T) {
	for k, name := range map[Kind]string{KindPath: "path", KindGroup: "group", KindMachine: "machine", KindStock: "stock"} {
		assert.Equal(t, name, k.String())
		assert.Equal(t, k, KindEnum[name])
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text     string
		expected Command
	}{
		{"g1 x1 f2", NewCommand("G1", map[string]float64{"X": 1, "F": 2})},
		{"N110 G0 Z5", NewCommand("G0", map[string]float64{"Z": 5})},
		{"G0 X1 z5 Z-3", NewCommand("G0", map[string]float64{"X": 1, ClearanceZ: 5, "Z": -3})},
		{"message", NewCommand("message", nil)},
		{"MESSAGE", NewCommand("message", nil)},
		{"(keep  spacing)", NewCommand("(keep  spacing)", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseCommand(tt.text)

			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ParseCommand(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}
