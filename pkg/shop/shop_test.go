package shop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want PhoneNumber
	}{
		{name: "string", in: `"555-0101"`, want: "555-0101"},
		{name: "bare number", in: `5550202`, want: "5550202"},
		{name: "large number", in: `15550199999`, want: "15550199999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PhoneNumber
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p)
		})
	}

	var p PhoneNumber
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &p))
}
