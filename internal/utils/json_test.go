package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingDoc struct {
	Item string `json:"item"`
	Cost int64  `json:"cost"`
}

func TestDecodeJSONStrict(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    listingDoc
		wantErr string
	}{
		{name: "valid", input: `{"item":"glow-bait","cost":40}`, want: listingDoc{Item: "glow-bait", Cost: 40}},
		{name: "surrounding whitespace", input: " \n{\"item\":\"net\"}\n ", want: listingDoc{Item: "net"}},
		{name: "unknown field", input: `{"item":"net","price":5}`, wantErr: "unknown field"},
		{name: "trailing document", input: `{"item":"net"}{"item":"rod"}`, wantErr: "trailing data"},
		{name: "wrong type", input: `{"cost":"free"}`, wantErr: "failed to unmarshal"},
		{name: "empty", input: ``, wantErr: "EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got listingDoc
			err := DecodeJSONStrict([]byte(tt.input), &got)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
