package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/fsel/internal/rank"
)

const firefoxEntry = `[Desktop Entry]
Type=Application
Name=Firefox
GenericName=Web Browser
Comment=Browse the web
Keywords=internet;www;browser;
Categories=Network;WebBrowser;
Exec=firefox %u
Terminal=false
Icon=firefox

[Desktop Action new-window]
Name=New Window
Exec=firefox --new-window
`

func TestParseApplication(t *testing.T) {
	app, err := Parse("firefox.desktop", firefoxEntry)
	require.NoError(t, err)

	assert.Equal(t, "firefox.desktop", app.ID)
	assert.Equal(t, "Firefox", app.Name)
	assert.Equal(t, "Web Browser", app.GenericName)
	assert.Equal(t, "Browse the web", app.Comment)
	assert.Equal(t, []string{"internet", "www", "browser"}, app.Keywords)
	assert.Equal(t, []string{"Network", "WebBrowser"}, app.Categories)
	assert.Equal(t, "firefox", app.Exec)
	assert.False(t, app.Terminal)
}

func TestParseIgnoresActionGroups(t *testing.T) {
	app, err := Parse("firefox.desktop", firefoxEntry)
	require.NoError(t, err)
	// The action's Exec must not clobber the main one.
	assert.Equal(t, "firefox", app.Exec)
}

func TestParseRejectsNonApplications(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"link type", "[Desktop Entry]\nType=Link\nName=x\nExec=x\n"},
		{"no display", "[Desktop Entry]\nType=Application\nName=x\nExec=x\nNoDisplay=true\n"},
		{"hidden", "[Desktop Entry]\nType=Application\nName=x\nExec=x\nHidden=true\n"},
		{"missing exec", "[Desktop Entry]\nType=Application\nName=x\n"},
		{"missing name", "[Desktop Entry]\nType=Application\nExec=x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x.desktop", tt.contents)
			assert.ErrorIs(t, err, ErrNotApplication)
		})
	}
}

func TestStripFieldCodes(t *testing.T) {
	assert.Equal(t, "vlc --started-from-file", stripFieldCodes("vlc --started-from-file %U"))
	assert.Equal(t, "sh -c \"echo 100%\"", stripFieldCodes("sh -c \"echo 100%%\""))
	assert.Equal(t, "gimp", stripFieldCodes("gimp %f %F %u"))
}

func TestShownOnDesktop(t *testing.T) {
	app := &App{OnlyShowIn: []string{"GNOME"}}
	assert.True(t, app.ShownOnDesktop([]string{"gnome"}))
	assert.False(t, app.ShownOnDesktop([]string{"KDE"}))

	app = &App{NotShowIn: []string{"KDE"}}
	assert.False(t, app.ShownOnDesktop([]string{"KDE"}))
	assert.True(t, app.ShownOnDesktop([]string{"GNOME"}))

	app = &App{}
	assert.True(t, app.ShownOnDesktop(nil))
}

func TestAppFieldClasses(t *testing.T) {
	app, err := Parse("firefox.desktop", firefoxEntry)
	require.NoError(t, err)

	fields := app.Fields()
	require.Len(t, fields, 5)
	assert.Equal(t, rank.FieldPrimary, fields[0].Class)
	assert.Equal(t, "Firefox", fields[0].Text)
	assert.Equal(t, "internet www browser", fields[2].Text)
	assert.Equal(t, rank.FieldTertiary, fields[4].Class)
}
