package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpertiseUnmarshalLegacyString(t *testing.T) {
	var in Instructor
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"expertise":"Python, ML, Stats"}`), &in))
	assert.Equal(t, Expertise{"Python", "ML", "Stats"}, in.Expertise)
}

func TestExpertiseUnmarshalArray(t *testing.T) {
	var in Instructor
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"expertise":["Go","SQL"]}`), &in))
	assert.Equal(t, Expertise{"Go", "SQL"}, in.Expertise)
}

func TestExpertiseUnmarshalEmptyString(t *testing.T) {
	var in Instructor
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"expertise":" , "}`), &in))
	assert.Empty(t, in.Expertise)
	assert.NotNil(t, in.Expertise)
}
