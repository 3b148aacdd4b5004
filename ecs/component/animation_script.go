package component

// AnimationScript names a tengo script that picks the clip to play from the
// entity's movement state.
type AnimationScript struct {
	Path string
	// Missing remembers clip names the script asked for that the controller did
	// not have, so each is reported once.
	Missing map[string]bool
}

var AnimationScriptComponent = NewComponent[AnimationScript]()
