package projectconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDepths(t *testing.T) {
	tests := []struct {
		in      string
		want    Depths
		wantErr string
	}{
		{in: "4", want: Depths{4}},
		{in: "1-8", want: Depths{1, 2, 3, 4, 5, 6, 7, 8}},
		{in: " 2 - 3 ", want: Depths{2, 3}},
		{in: "1,3,5", want: Depths{1, 3, 5}},
		{in: "", wantErr: "empty"},
		{in: "0", wantErr: "positive"},
		{in: "4-2", wantErr: "is empty"},
		{in: "a-b", wantErr: "not an integer"},
		{in: "1,x", wantErr: "not an integer"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDepths(tc.in)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDepths_String(t *testing.T) {
	assert.Equal(t, "1-8", DepthRange(1, 8).String())
	assert.Equal(t, "3", Depths{3}.String())
	assert.Equal(t, "1,3,5", Depths{1, 3, 5}.String())
}

func TestDepths_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		Depths Depths `yaml:"depths"`
	}{DepthRange(1, 8)})
	require.NoError(t, err)
	assert.Equal(t, "depths: 1-8\n", string(out))

	out, err = yaml.Marshal(struct {
		Depths Depths `yaml:"depths"`
	}{Depths{2, 5}})
	require.NoError(t, err)
	assert.Equal(t, "depths:\n    - 2\n    - 5\n", string(out))
}
