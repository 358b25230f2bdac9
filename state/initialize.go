package state

import (
	"errors"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"themecss/themable"
	"themecss/themes"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Log:   zap.NewNop(),
	}
}

// LoadThemes reads theme collection. Empty path means configured one. Once
// loaded collection is reused as long as path stays the same.
func (e *LocalEnv) LoadThemes(path string) (themes.Collection, error) {
	if path == "" && e.Cfg != nil {
		path = e.Cfg.Styles.ThemesPath
	}
	if path == "" {
		return nil, errors.New("no themes file specified")
	}
	if e.Themes != nil && e.themesPath == path {
		return e.Themes, nil
	}

	c, err := themes.Load(path)
	if err != nil {
		return nil, err
	}
	e.Themes, e.themesPath = c, path
	e.Rpt.Store("themes/"+filepath.Base(path), path)
	e.Log.Debug("Themes loaded", zap.String("path", path), zap.Int("count", len(c)))
	return c, nil
}

// SelectTheme returns theme by name from the collection given by path. Empty
// name means configured default theme, and no default means no theme at
// all, which is not an error.
func (e *LocalEnv) SelectTheme(path, name string) (themable.Theme, error) {
	if name == "" && e.Cfg != nil {
		name = e.Cfg.Styles.DefaultTheme
	}
	if name == "" {
		return nil, nil
	}
	c, err := e.LoadThemes(path)
	if err != nil {
		return nil, err
	}
	return c.Get(name)
}
