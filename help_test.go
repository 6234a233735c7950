package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelp_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    Help
		wantErr string
	}{
		{give: "usage"},
		{give: "default"},
		{give: "config"},
		{give: "copy"},
		{give: "highlight"},
		{
			give:    "not-a-topic",
			wantErr: `unknown help topic "not-a-topic": valid values`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.give.String(), func(t *testing.T) {
			t.Parallel()

			err := tt.give.Write(io.Discard)
			if len(tt.wantErr) > 0 {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.False(t, tt.give.Known())
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.give.Known())
			}
		})
	}
}

func TestHelp_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want Help
	}{
		{give: "true", want: DefaultHelp},
		{give: "false", want: NoHelp},
		{give: " Config ", want: "config"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			var h Help
			assert.NoError(t, h.Set(tt.give))
			assert.Equal(t, tt.want, h)
			assert.Equal(t, tt.want, h.Get())
		})
	}
}

func TestUsageHelp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "usage: tutorialblocks [options] PATH ...\n", _usageHelp)
}
