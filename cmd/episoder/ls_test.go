package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/episoder/internal/openlist"
	"github.com/vmunix/episoder/internal/session/mocks"
	"go.uber.org/mock/gomock"
)

func TestListAll_KeepsOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockLister(ctrl)

	paths := []string{"/a", "/b", "/c", "/d", "/e", "/f"}
	for _, p := range paths {
		lister.EXPECT().List(gomock.Any(), p).Return([]openlist.Object{{Name: strings.TrimPrefix(p, "/") + ".mkv"}}, nil)
	}

	results, err := listAll(context.Background(), lister, paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, p := range paths {
		assert.Equal(t, p, results[i].Path)
		assert.Equal(t, strings.TrimPrefix(p, "/")+".mkv", results[i].Entries[0].Name)
	}
}

func TestListAll_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockLister(ctrl)

	boom := errors.New("boom")
	lister.EXPECT().List(gomock.Any(), "/ok").Return(nil, nil).AnyTimes()
	lister.EXPECT().List(gomock.Any(), "/bad").Return(nil, boom)

	_, err := listAll(context.Background(), lister, []string{"/ok", "/bad"})
	assert.ErrorIs(t, err, boom)
}

func TestListAll_AgainstServer(t *testing.T) {
	fake := newFakeOpenList(t, showDir())
	a, _ := newTestApp(t, fake.Build().URL)
	require.NoError(t, a.connect(context.Background()))

	results, err := listAll(context.Background(), a.client, []string{"/tv/Show", "/tv/Empty"})
	require.NoError(t, err)
	assert.Len(t, results[0].Entries, 4)
	assert.Empty(t, results[1].Entries)
}

func TestPrintListing(t *testing.T) {
	var buf bytes.Buffer
	printListing(&buf, []openlist.Object{
		{Name: "Show 1x01.mkv", Size: 1536},
		{Name: "Extras", IsDir: true},
		{Name: "notes.txt", Size: 500},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "d "), "directories first: %q", lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "Extras/"))
	assert.Contains(t, lines[1], "1.5 KiB")
	assert.True(t, strings.HasSuffix(lines[1], "Show 1x01.mkv"))
	assert.Contains(t, lines[2], "500 B")
	assert.Equal(t, "1 dir(s), 2 file(s), 2.0 KiB", lines[3])
}

func TestPrintListing_Empty(t *testing.T) {
	var buf bytes.Buffer
	printListing(&buf, nil)
	assert.Equal(t, "  (empty)\n", buf.String())
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 500, "500 B"},
		{"exactly 1KiB", 1024, "1.0 KiB"},
		{"1.5KiB", 1536, "1.5 KiB"},
		{"exactly 1MiB", 1024 * 1024, "1.0 MiB"},
		{"1GiB", 1073741824, "1.0 GiB"},
		{"11GiB", 12000000000, "11 GiB"},
		{"negative", -100, "-100 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSize(tt.bytes))
		})
	}
}
