package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rplmatch/internal/model"
)

func TestDetectSelector(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		keywords Keywords
		want     model.FieldSelector
	}{
		{
			name:     "both keywords present",
			headers:  []string{"ID", "RPL Name", "Customer Name"},
			keywords: DefaultKeywords(),
			want:     model.FieldSelector{CustomerField: "Customer Name", ReferenceField: "RPL Name"},
		},
		{
			name:     "case insensitive",
			headers:  []string{"CUSTOMER", "rpl_entry"},
			keywords: DefaultKeywords(),
			want:     model.FieldSelector{CustomerField: "CUSTOMER", ReferenceField: "rpl_entry"},
		},
		{
			name:     "no keywords falls back to positions",
			headers:  []string{"a", "b", "c"},
			keywords: DefaultKeywords(),
			want:     model.FieldSelector{CustomerField: "a", ReferenceField: "b"},
		},
		{
			name:     "single column",
			headers:  []string{"names"},
			keywords: DefaultKeywords(),
			want:     model.FieldSelector{CustomerField: "names", ReferenceField: "names"},
		},
		{
			name:     "first containing header wins",
			headers:  []string{"customer id", "customer name", "rpl"},
			keywords: DefaultKeywords(),
			want:     model.FieldSelector{CustomerField: "customer id", ReferenceField: "rpl"},
		},
		{
			name:     "custom keywords",
			headers:  []string{"Client", "Sanctions List"},
			keywords: Keywords{Customer: "client", Reference: "sanction"},
			want:     model.FieldSelector{CustomerField: "Client", ReferenceField: "Sanctions List"},
		},
		{
			name:     "empty keywords use defaults",
			headers:  []string{"x", "rpl", "customer"},
			keywords: Keywords{},
			want:     model.FieldSelector{CustomerField: "customer", ReferenceField: "rpl"},
		},
		{
			name:     "unicode folding",
			headers:  []string{"Kunde", "Liste", "Straße"},
			keywords: Keywords{Customer: "KUNDE", Reference: "STRASSE"},
			want:     model.FieldSelector{CustomerField: "Kunde", ReferenceField: "Straße"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectSelector(tt.headers, tt.keywords)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectSelector_NoHeaders(t *testing.T) {
	_, err := DetectSelector(nil, DefaultKeywords())
	require.ErrorIs(t, err, ErrNoColumns)
}
