package version

import "runtime/debug"

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/sightread/sightread/version.Version=$(git describe --dirty)"

var Version string

var Hash = func() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return VCSHash(info.Settings)
	}
	return ""
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

// VCSHash returns the short revision recorded in the build settings,
// suffixed with -dirty if the working tree was modified.
func VCSHash(settings []debug.BuildSetting) string {
	var hash, suffix string
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			hash = setting.Value[:min(len(setting.Value), 7)]
		case "vcs.modified":
			if setting.Value == "true" {
				suffix = "-dirty"
			}
		}
	}
	if hash == "" {
		return ""
	}
	return hash + suffix
}
