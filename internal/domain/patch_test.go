package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTodoPatchClassification(t *testing.T) {
	text := "buy milk"
	done := true

	tests := []struct {
		name string
		text *string
		done *bool
		want TodoPatch
	}{
		{"text only", &text, nil, TodoPatch{Kind: PatchTextOnly, Text: "buy milk"}},
		{"done only", nil, &done, TodoPatch{Kind: PatchDoneOnly, Done: true}},
		{"both", &text, &done, TodoPatch{Kind: PatchBoth, Text: "buy milk", Done: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := NewTodoPatch(tt.text, tt.done)
			require.NoError(t, err)
			require.Equal(t, tt.want, patch)
		})
	}
}

func TestNewTodoPatchRejectsEmpty(t *testing.T) {
	_, err := NewTodoPatch(nil, nil)
	require.ErrorIs(t, err, ErrEmptyPatch)
}
