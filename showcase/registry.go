package main

// Demo is one runnable showcase entry.
type Demo struct {
	Name  string
	Title string
	Run   func() error
}

// demos is the registry of all showcase demos. Add new demos here to
// automatically update dispatch and the usage listing.
var demos = []Demo{
	{"counter", "A component owning a local orb", runCounterDemo},
	{"shared", "Two components observing one orb", runSharedDemo},
	{"provider", "An orb provided to descendants", runProviderDemo},
	{"devtools", "Inspecting orbs over HTTP", runDevtoolsDemo},
}

func findDemo(name string) (Demo, bool) {
	for _, demo := range demos {
		if demo.Name == name {
			return demo, true
		}
	}
	return Demo{}, false
}
