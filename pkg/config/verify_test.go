package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]any
		errMsg string
	}{
		{name: "valid", raw: map[string]any{"feeds": []any{
			map[string]any{"name": "a", "url": "https://a.com", "owner_email": "o@a.com"},
		}}},
		{name: "empty list", raw: map[string]any{"feeds": []any{}}},
		{name: "feeds not a list", raw: map[string]any{"feeds": "nope"}, errMsg: "must be a list"},
		{name: "feed not an object", raw: map[string]any{"feeds": []any{"a"}}, errMsg: "feeds[0] must be an object"},
		{name: "empty name", raw: map[string]any{"feeds": []any{map[string]any{"name": "", "url": "https://a.com"}}},
			errMsg: "feeds[0].name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAgainstEmbeddedSchema(tt.raw)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateSchema_MatchesEmbedded(t *testing.T) {
	generated, err := json.Marshal(GenerateSchema())
	require.NoError(t, err)

	type defs struct {
		Defs map[string]schemaDef `json:"$defs"`
	}
	var gen, emb defs
	require.NoError(t, json.Unmarshal(generated, &gen))
	require.NoError(t, json.Unmarshal(embeddedSchema, &emb))

	for _, name := range []string{"Seeds", "SeedFeed"} {
		require.Contains(t, gen.Defs, name)
		assert.Equal(t, emb.Defs[name].Required, gen.Defs[name].Required, "required of %s, run go generate", name)
		assert.ElementsMatch(t, keys(emb.Defs[name].Properties), keys(gen.Defs[name].Properties), "properties of %s", name)
	}
}

func keys(m map[string]json.RawMessage) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	return res
}
