package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"Raw", `{"approved": true, "feedback": "ok"}`},
		{"Fenced", "```json\n{\"approved\": true, \"feedback\": \"ok\"}\n```"},
		{"Bare fence", "```\n{\"approved\": true, \"feedback\": \"ok\"}\n```"},
		{"Surrounding prose", "Here is the vote:\n{\"approved\": true,\n \"feedback\": \"ok\"}\nThank you."},
		{"Raw newline in string", "{\"approved\": true, \"feedback\": \"line one\nok\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v verdictResponse
			require.Nil(t, parseJSON(tt.text, &v))
			require.NotNil(t, v.Approved)
			assert.True(t, *v.Approved)
			assert.Contains(t, v.Feedback, "ok")
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	var v verdictResponse

	assert.ErrorIs(t, parseJSON("  ", &v), ErrEmptyResponse)
	assert.ErrorIs(t, parseJSON("The board declines to vote.", &v), ErrInvalidResponse)
	assert.ErrorIs(t, parseJSON("{approved: yes}", &v), ErrInvalidResponse)
}

func TestParseDistrictID(t *testing.T) {
	id, err := parseDistrictID(" 1704560\n")
	require.Nil(t, err)
	assert.Equal(t, "1704560", id)

	id, err = parseDistrictID("NCES ID: 17-04560")
	require.Nil(t, err)
	assert.Equal(t, "1704560", id)

	_, err = parseDistrictID("unknown")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = parseDistrictID("12345678")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
