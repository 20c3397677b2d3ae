package rebrand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/rebrand/internal/config"
	"github.com/wizzomafizzo/rebrand/internal/pkgpath"
)

func TestNewPlan_DerivesSubstitutionsInOrder(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan(config.DefaultConfig().Old, "MyApp-Name", "com.example.app")
	require.NoError(t, err)

	assert.Equal(t, "MyApp Name", plan.DisplayName)
	assert.Equal(t, "myapp_name", plan.ResourcePrefix)
	assert.Equal(t, "com.jetbrains.kmpapp", plan.OldPackage.String())
	assert.Equal(t, "com.example.app", plan.NewPackage.String())
	assert.Equal(t, []Substitution{
		{Label: "package name", Old: "com.jetbrains.kmpapp", New: "com.example.app"},
		{Label: "app name", Old: "KMP App", New: "MyApp Name"},
		{Label: "project name", Old: "KMP-App-Template", New: "MyApp-Name"},
		{Label: "Compose resources package prefix", Old: "kmp_app_template", New: "myapp_name"},
	}, plan.Substitutions)
}

func TestNewPlan_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		project   string
		packageID string
		wantErr   error
	}{
		{name: "package with space", project: "App", packageID: "not valid", wantErr: pkgpath.ErrInvalidPackage},
		{name: "single segment package", project: "App", packageID: "app", wantErr: pkgpath.ErrInvalidPackage},
		{name: "empty project", project: "  ", packageID: "com.example.app", wantErr: ErrEmptyProjectName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plan, err := NewPlan(config.DefaultConfig().Old, tt.project, tt.packageID)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, plan)
		})
	}
}

func TestNewPlan_RejectsInvalidTemplatePackage(t *testing.T) {
	t.Parallel()

	old := config.DefaultConfig().Old
	old.Package = "template"

	_, err := NewPlan(old, "App", "com.example.app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid template package")
}

func TestDerivedNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input          string
		displayName    string
		resourcePrefix string
	}{
		{"MyApp-Name", "MyApp Name", "myapp_name"},
		{"PistachioTemplate", "PistachioTemplate", "pistachiotemplate"},
		{"my_cool-app", "my cool app", "my_cool_app"},
		{"Two Words", "Two Words", "two_words"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.displayName, DisplayName(tt.input))
			assert.Equal(t, tt.resourcePrefix, ResourcePrefix(tt.input))
		})
	}
}

func TestPlanSummary(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan(config.DefaultConfig().Old, "X-Y", "a.b")
	require.NoError(t, err)
	assert.Equal(t,
		`"com.jetbrains.kmpapp" -> "a.b", "KMP App" -> "X Y", "KMP-App-Template" -> "X-Y", "kmp_app_template" -> "x_y"`,
		plan.Summary())
}
