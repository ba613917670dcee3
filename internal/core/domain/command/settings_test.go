package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
)

func TestSettingHandlers(t *testing.T) {
	tests := []struct {
		name        string
		newHandler  func(*domain.SessionStore, *MockTextSender) *Setting
		text        string
		wantMessage string
		wantErr     bool
		want        func(s domain.TransformSettings) bool
	}{
		{
			name: "realism set",
			newHandler: func(st *domain.SessionStore, ts *MockTextSender) *Setting {
				return NewRealism(st, ts, "/realism")
			},
			text:        "/realism 40",
			wantMessage: "realism set to 40",
			want:        func(s domain.TransformSettings) bool { return s.Realism == 40 },
		},
		{
			name: "realism out of range",
			newHandler: func(st *domain.SessionStore, ts *MockTextSender) *Setting {
				return NewRealism(st, ts, "/realism")
			},
			text:    "/realism 101",
			wantErr: true,
			want:    func(s domain.TransformSettings) bool { return s.Realism == 75 },
		},
		{
			name: "detail set",
			newHandler: func(st *domain.SessionStore, ts *MockTextSender) *Setting {
				return NewDetail(st, ts, "/detail")
			},
			text:        "/detail 0",
			wantMessage: "detail set to 0",
			want:        func(s domain.TransformSettings) bool { return s.Detail == 0 },
		},
		{
			name: "detail not a number",
			newHandler: func(st *domain.SessionStore, ts *MockTextSender) *Setting {
				return NewDetail(st, ts, "/detail")
			},
			text:    "/detail lots",
			wantErr: true,
			want:    func(s domain.TransformSettings) bool { return s.Detail == 80 },
		},
		{
			name: "quality is case insensitive",
			newHandler: func(st *domain.SessionStore, ts *MockTextSender) *Setting {
				return NewQuality(st, ts, "/quality")
			},
			text:        "/quality 8k+",
			wantMessage: "quality set to 8K+",
			want:        func(s domain.TransformSettings) bool { return s.Quality == domain.Quality8K },
		},
		{
			name: "quality unknown",
			newHandler: func(st *domain.SessionStore, ts *MockTextSender) *Setting {
				return NewQuality(st, ts, "/quality")
			},
			text:    "/quality 16x",
			wantErr: true,
			want:    func(s domain.TransformSettings) bool { return s.Quality == domain.Quality4x },
		},
		{
			name: "ratio set",
			newHandler: func(st *domain.SessionStore, ts *MockTextSender) *Setting {
				return NewAspectRatio(st, ts, "/ratio")
			},
			text:        "/ratio 4:3",
			wantMessage: "aspect ratio set to 4:3",
			want:        func(s domain.TransformSettings) bool { return s.AspectRatio == domain.Aspect4x3 },
		},
		{
			name: "ratio without argument shows current value",
			newHandler: func(st *domain.SessionStore, ts *MockTextSender) *Setting {
				return NewAspectRatio(st, ts, "/ratio")
			},
			text:        "/ratio",
			wantMessage: "current aspect ratio: Original\nusage: /ratio <Original|1:1|4:3|16:9>",
			want:        func(s domain.TransformSettings) bool { return s.AspectRatio == domain.AspectOriginal },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := domain.NewSessionStore()
			ts := &MockTextSender{}
			h := tc.newHandler(st, ts)

			err := h.Respond(t.Context(), time.Second, &domain.Message{ID: 1, ChatID: 7, Text: tc.text})
			require.NoError(t, err)

			if tc.wantErr {
				assert.Contains(t, ts.Message, "usage: "+h.usage)
			} else {
				assert.Equal(t, tc.wantMessage, ts.Message)
			}
			assert.True(t, tc.want(st.Get(7).Settings()))
		})
	}
}

func TestShowSettings(t *testing.T) {
	st := domain.NewSessionStore()
	ts := &MockTextSender{}
	h := NewShowSettings(st, ts, "/settings")

	err := h.Respond(t.Context(), time.Second, &domain.Message{ID: 1, ChatID: 7, Text: "/settings"})
	require.NoError(t, err)
	assert.Contains(t, ts.Message, domain.DefaultSettings().String())
	assert.Contains(t, ts.Message, "image: none")

	st.Get(7).Upload(domain.SourceImage{URL: "u"})
	_, _, _, err = st.Get(7).Begin()
	require.NoError(t, err)

	err = h.Respond(t.Context(), time.Second, &domain.Message{ID: 2, ChatID: 7, Text: "/settings"})
	require.NoError(t, err)
	assert.Contains(t, ts.Message, "image: uploaded")
	assert.Contains(t, ts.Message, "status: transforming")
}
