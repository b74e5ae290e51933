package kaggle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHandle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Handle
	}{
		{"erdemtaha/cancer-data", Handle{Owner: "erdemtaha", Slug: "cancer-data"}},
		{"fedesoriano/company-bankruptcy-prediction/versions/2", Handle{Owner: "fedesoriano", Slug: "company-bankruptcy-prediction", Version: 2}},
		{" /erdemtaha/cancer-data/ ", Handle{Owner: "erdemtaha", Slug: "cancer-data"}},
	}
	for _, tt := range tests {
		got, err := ParseHandle(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseHandle_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"cancer-data",
		"a/b/c",
		"a/b/releases/1",
		"a/b/versions/zero",
		"a/b/versions/0",
		"a/b/versions/-3",
		"/b",
	} {
		_, err := ParseHandle(in)
		assert.Error(t, err, in)
	}
}

func TestHandle_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "o/s", Handle{Owner: "o", Slug: "s"}.String())
	assert.Equal(t, "o/s/versions/4", Handle{Owner: "o", Slug: "s", Version: 4}.String())

	h, err := ParseHandle("o/s/versions/4")
	require.NoError(t, err)
	assert.Equal(t, "o/s/versions/4", h.String())
}
