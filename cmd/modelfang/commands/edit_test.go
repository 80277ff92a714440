package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/modelfang/cmd/modelfang/commands"
	"github.com/Sumatoshi-tech/modelfang/pkg/model"
	"github.com/Sumatoshi-tech/modelfang/pkg/modeljson"
)

func init() {
	color.NoColor = true
}

func writeModel(t *testing.T, path string, m *model.Model) {
	t.Helper()
	require.NoError(t, modeljson.Save(path, modeljson.CodecForPath(path), m))
}

func baseModel() *model.Model {
	m := model.New("base")
	m.AddElement(&model.Element{ID: "Vehicle", Name: "Vehicle", Kind: model.KindPackage})
	m.AddElement(&model.Element{ID: "Vehicle::Old", Name: "Old", Kind: model.KindPartDef, ParentID: "Vehicle"})

	return m
}

func engineFragment() *model.Model {
	m := model.New("fragment")
	m.AddElement(&model.Element{ID: "Engine", Name: "Engine", Kind: model.KindPartDef})

	return m
}

func TestEditCommandAppliesPlan(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	fragPath := filepath.Join(dir, "engine.json")
	planPath := filepath.Join(dir, "plan.yaml")
	outPath := filepath.Join(dir, "patched.json")

	writeModel(t, modelPath, baseModel())
	writeModel(t, fragPath, engineFragment())
	require.NoError(t, os.WriteFile(planPath, []byte(`
deletes:
  - Vehicle::Old
merges:
  - fragment: engine.json
    scope: Vehicle
`), 0o600))

	var out bytes.Buffer

	cmd := commands.NewEditCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{modelPath, "--plan", planPath, "--out", outPath, "--no-color"})

	require.NoError(t, cmd.Execute())

	patched, err := modeljson.LoadAuto(outPath)
	require.NoError(t, err)
	assert.True(t, patched.Has("Vehicle::Engine"))
	assert.False(t, patched.Has("Vehicle::Old"))

	assert.Contains(t, out.String(), "deleted:  1")
	assert.Contains(t, out.String(), "added:    1")

	original, err := modeljson.LoadAuto(modelPath)
	require.NoError(t, err)
	assert.True(t, original.Has("Vehicle::Old"), "--out must leave the input file untouched")
}

func TestEditCommandShowDiff(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	fragPath := filepath.Join(dir, "engine.json")
	planPath := filepath.Join(dir, "plan.yaml")

	writeModel(t, modelPath, baseModel())
	writeModel(t, fragPath, engineFragment())
	require.NoError(t, os.WriteFile(planPath, []byte(`
merges:
  - fragment: engine.json
    scope: Vehicle
`), 0o600))

	var out bytes.Buffer

	cmd := commands.NewEditCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{modelPath, "--plan", planPath, "--show-diff", "--no-color"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "+ ", "diff output should mark added lines")
	assert.Contains(t, out.String(), "Vehicle::Engine")
}

func TestEditCommandSuggestsScopesOnTypo(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	fragPath := filepath.Join(dir, "engine.json")
	planPath := filepath.Join(dir, "plan.yaml")

	writeModel(t, modelPath, baseModel())
	writeModel(t, fragPath, engineFragment())
	require.NoError(t, os.WriteFile(planPath, []byte(`
merges:
  - fragment: engine.json
    scope: Vehicel
`), 0o600))

	var out bytes.Buffer

	cmd := commands.NewEditCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{modelPath, "--plan", planPath, "--no-color"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "Did you mean")
	assert.Contains(t, out.String(), "Vehicle")
}

func TestEditCommandReplaceGuard(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	fragPath := filepath.Join(dir, "engine.json")
	planPath := filepath.Join(dir, "plan.yaml")

	base := baseModel()
	base.AddElement(&model.Element{ID: "Vehicle::A", Kind: model.KindPartDef, ParentID: "Vehicle"})
	base.AddElement(&model.Element{ID: "Vehicle::B", Kind: model.KindPartDef, ParentID: "Vehicle"})
	base.AddElement(&model.Element{ID: "Vehicle::C", Kind: model.KindPartDef, ParentID: "Vehicle"})

	writeModel(t, modelPath, base)
	writeModel(t, fragPath, engineFragment())
	require.NoError(t, os.WriteFile(planPath, []byte(`
merges:
  - fragment: engine.json
    scope: Vehicle
    replace_scope: true
`), 0o600))

	cmd := commands.NewEditCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{modelPath, "--plan", planPath, "--no-color"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "looks destructive")

	// force overrides the guard.
	forced := commands.NewEditCommand()
	forced.SetOut(&bytes.Buffer{})
	forced.SetArgs([]string{modelPath, "--plan", planPath, "--force", "--no-color"})

	require.NoError(t, forced.Execute())

	patched, err := modeljson.LoadAuto(modelPath)
	require.NoError(t, err)
	assert.True(t, patched.Has("Vehicle::Engine"))
	assert.False(t, patched.Has("Vehicle::A"))
}

func TestScopesCommandListsAndFinds(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")

	m := baseModel()
	m.AddElement(&model.Element{ID: "Vehicle::Powertrain", Kind: model.KindPackage, ParentID: "Vehicle"})
	writeModel(t, modelPath, m)

	var out bytes.Buffer

	cmd := commands.NewScopesCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{modelPath, "--no-color"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Vehicle::Powertrain")
	assert.Contains(t, out.String(), "Package")

	out.Reset()

	find := commands.NewScopesCommand()
	find.SetOut(&out)
	find.SetArgs([]string{modelPath, "--find", "Vehicle::Powertrian", "--no-color"})

	require.NoError(t, find.Execute())
	assert.Contains(t, out.String(), "Vehicle::Powertrain")
}

func TestValidateCommandAcceptsValidModel(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	writeModel(t, modelPath, baseModel())

	var out bytes.Buffer

	cmd := commands.NewValidateCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{modelPath, "--no-color"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Model is valid")
}
