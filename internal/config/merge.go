package config

// Merge layers override on top of base. Non-empty override fields win; a
// non-empty source list replaces the base list rather than extending it.
// Source records the last layer that contributed a value.
func Merge(base, override *Settings) *Settings {
	merged := &Settings{}

	if base != nil {
		merged.Input = base.Input
		merged.Output = base.Output
		merged.Sources = append([]string(nil), base.Sources...)
		merged.Source = base.Source
	}

	if override.IsZero() {
		return merged
	}

	if override.Input != "" {
		merged.Input = override.Input
	}
	if override.Output != "" {
		merged.Output = override.Output
	}
	if len(override.Sources) > 0 {
		merged.Sources = append([]string(nil), override.Sources...)
	}
	merged.Source = override.Source

	return merged
}

// Load merges defaults, the user file, the project file in projectDir and,
// when explicit is non-empty, that file. A missing explicit file is an
// error; the user and project files are optional.
func Load(projectDir, explicit string) (*Settings, error) {
	settings := Defaults()

	user, err := LoadUserSettings()
	if err != nil {
		return nil, err
	}
	settings = Merge(settings, user)

	project, err := LoadProjectSettings(projectDir)
	if err != nil {
		return nil, err
	}
	settings = Merge(settings, project)

	if explicit != "" {
		file, err := LoadExplicitSettings(explicit)
		if err != nil {
			return nil, err
		}
		settings = Merge(settings, file)
	}

	return settings, nil
}
