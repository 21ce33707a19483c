package config

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/BurntSushi/toml"
	appErrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDictionary() *Dictionary {
	return NewDictionary(map[string]any{
		"zeta":  1,
		"alpha": map[string]any{"name": "x", "ports": []any{int64(80), int64(443)}},
		"mid":   "value",
	}, []string{"zeta", "alpha"})
}

func TestDictionary_Order(t *testing.T) {
	t.Parallel()

	dict := sampleDictionary()
	assert.Equal(t, 3, dict.Len())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, dict.Keys())

	var seen []string
	for key := range dict.All() {
		seen = append(seen, key)
	}
	assert.Equal(t, dict.Keys(), seen)
}

func TestDictionary_Frozen(t *testing.T) {
	t.Parallel()

	source := map[string]any{"app": map[string]any{"name": "x"}}
	dict := NewDictionary(source, []string{"app"})
	source["app"].(map[string]any)["name"] = "mutated-source"

	value, ok := dict.Get("app")
	require.True(t, ok)
	value.(map[string]any)["name"] = "mutated-get"

	copied := dict.Map()
	copied["app"].(map[string]any)["name"] = "mutated-map"

	keys := dict.Keys()
	keys[0] = "mutated-keys"

	name, err := dict.Lookup("app", "name")
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	assert.Equal(t, []string{"app"}, dict.Keys())
}

func TestDictionary_LookupMissing(t *testing.T) {
	t.Parallel()

	_, err := sampleDictionary().Lookup("alpha", "missing", "deeper")

	var failure *appErrors.AddressLocateFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "missing", failure.Part)

	_, ok := sampleDictionary().Get("absent")
	assert.False(t, ok)
}

func TestDictionary_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(sampleDictionary())
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":{"name":"x","ports":[80,443]},"mid":"value"}`, string(data))

	empty, err := json.Marshal(NewDictionary(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestDictionary_Unmarshal(t *testing.T) {
	t.Parallel()

	type alpha struct {
		Name  string  `koanf:"name"`
		Ports []int64 `koanf:"ports"`
	}

	var got alpha
	require.NoError(t, sampleDictionary().Unmarshal(&got, "alpha"))
	assert.Equal(t, alpha{Name: "x", Ports: []int64{80, 443}}, got)

	var whole struct {
		Mid string `koanf:"mid"`
	}
	require.NoError(t, sampleDictionary().Unmarshal(&whole))
	assert.Equal(t, "value", whole.Mid)
}

func TestDictionary_UnmarshalDottedKeys(t *testing.T) {
	t.Parallel()

	var values map[string]any
	_, err := toml.Decode("\"a.b\" = 1\n[\"host.example\"]\nport = 8080\n", &values)
	require.NoError(t, err)
	dict := NewDictionary(values, nil)

	var whole map[string]any
	require.NoError(t, dict.Unmarshal(&whole))
	assert.Equal(t, int64(1), whole["a.b"])
	assert.NotContains(t, whole, "a")

	var host struct {
		Port int `koanf:"port"`
	}
	require.NoError(t, dict.Unmarshal(&host, "host.example"))
	assert.Equal(t, 8080, host.Port)
}

func TestEnablementTristate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input      string
		want       EnablementTristate
		wantBool   bool
		wantRetain bool
		wantErr    bool
	}{
		"disable":       {input: "disable", want: Disable, wantBool: false},
		"enable":        {input: "Enable", want: Enable, wantBool: true},
		"retain":        {input: " retain ", want: Retain, wantRetain: true},
		"invalid value": {input: "maybe", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseEnablementTristate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRetain, got.IsRetain())

			value, err := got.Bool()
			if tt.wantRetain {
				var failure *appErrors.OperationInvalidity
				require.True(t, errors.As(err, &failure))
				assert.Equal(t, "boolean translation", failure.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBool, value)
		})
	}
}

func TestEnablementTristate_FlagValue(t *testing.T) {
	t.Parallel()

	value := Retain
	require.NoError(t, value.Set("ENABLE"))
	assert.Equal(t, Enable, value)
	assert.Equal(t, "enable", value.String())
	assert.Equal(t, "enablement", value.Type())
	assert.Error(t, value.Set("sometimes"))
}
